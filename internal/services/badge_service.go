// Package services – BadgeService
//
// This file implements the counter/notification aggregator. Badge values are
// derived purely from persisted store reads and are never stored themselves.
// The aggregator re-derives on store change notifications (the push path) and
// on a fixed-interval poll (the fallback path), and raises a transient
// highlight pulse when a derived value changes from its previous value. The
// first computation after start establishes the baseline and never pulses.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/replate/replate-backend/internal/store"
)

// Badges is one aggregator snapshot.
type Badges struct {
	// UpcomingDeliveries is the base delivery count plus accepted requests.
	UpcomingDeliveries int `json:"upcoming_deliveries"`
	// HasActiveRequests is true while any catalog request remains unfulfilled.
	HasActiveRequests bool `json:"has_active_requests"`
	// Pulse is the transient highlight flag; it auto-clears after the
	// configured duration.
	Pulse bool `json:"pulse"`
}

// BadgeService derives the dashboard badges from the persisted store.
type BadgeService struct {
	// Store is the persisted key-value store the badges are derived from.
	Store store.Store
	// BaseDeliveries is the fixed delivery count shown before any accepts.
	BaseDeliveries int
	// TotalRequests is the catalog size the completed set is compared to.
	TotalRequests int
	// PollInterval is the fallback re-check cadence.
	PollInterval time.Duration
	// PulseDuration is how long the highlight stays raised after a change.
	PulseDuration time.Duration

	mu          sync.Mutex
	initialized bool
	upcoming    int
	hasActive   bool
	pulseUntil  time.Time

	// now is a seam for tests; defaults to time.Now.
	now func() time.Time
}

// NewBadgeService constructs a BadgeService with the documented defaults:
// two base deliveries, a one second poll, a three second pulse.
func NewBadgeService(st store.Store, totalRequests int) *BadgeService {
	return &BadgeService{
		Store:          st,
		BaseDeliveries: 2,
		TotalRequests:  totalRequests,
		PollInterval:   time.Second,
		PulseDuration:  3 * time.Second,
	}
}

func (s *BadgeService) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// refresh re-derives the badges from the store and raises the pulse when a
// value changed from the previous derivation. Store errors keep the previous
// values; the aggregator absorbs failures rather than propagating them.
func (s *BadgeService) refresh(ctx context.Context) {
	var accepted int
	if _, err := s.Store.Get(ctx, store.KeyAcceptedRequests, &accepted); err != nil {
		log.Warn().Err(err).Msg("badges: keeping previous values, store read failed")
		return
	}
	var completed []int
	if _, err := s.Store.Get(ctx, store.KeyCompletedRequests, &completed); err != nil {
		log.Warn().Err(err).Msg("badges: keeping previous values, store read failed")
		return
	}

	// A corrupt or hand-edited counter must never surface as a negative or
	// impossible badge.
	if accepted < 0 {
		accepted = 0
	}
	upcoming := s.BaseDeliveries + accepted
	hasActive := len(completed) < s.TotalRequests

	s.mu.Lock()
	defer s.mu.Unlock()
	changed := upcoming != s.upcoming || hasActive != s.hasActive
	if s.initialized && changed {
		s.pulseUntil = s.clock().Add(s.PulseDuration)
	}
	s.upcoming = upcoming
	s.hasActive = hasActive
	s.initialized = true
}

// Snapshot re-derives and returns the current badges. Calling it directly
// covers consumers between poll ticks, so a same-process mutation is visible
// immediately rather than lagging one interval.
func (s *BadgeService) Snapshot(ctx context.Context) Badges {
	s.refresh(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	return Badges{
		UpcomingDeliveries: s.upcoming,
		HasActiveRequests:  s.hasActive,
		Pulse:              s.clock().Before(s.pulseUntil),
	}
}

// Run keeps the badges fresh until ctx is cancelled: it establishes the
// baseline, then re-derives on every store change notification and on each
// poll tick. Intended to run on its own goroutine.
func (s *BadgeService) Run(ctx context.Context) {
	acceptedCh, unsubAccepted := s.Store.Subscribe(store.KeyAcceptedRequests)
	defer unsubAccepted()
	completedCh, unsubCompleted := s.Store.Subscribe(store.KeyCompletedRequests)
	defer unsubCompleted()

	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	// Baseline: never pulses.
	s.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-acceptedCh:
			s.refresh(ctx)
		case <-completedCh:
			s.refresh(ctx)
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}
