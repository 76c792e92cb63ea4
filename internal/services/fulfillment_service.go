// Package services – FulfillmentService
//
// This file implements the donor-side request lifecycle: a catalog request is
// loaded into an editable working copy, its requirement lines are toggled one
// by one, and once every line is satisfied the donor commits the acceptance.
// Accepting records the id in the persisted completed set, bumps the accepted
// counter, and hands the caller a delayed-navigation contract so the
// celebratory animation can play out before the dashboard redirect.
//
// Acceptance is idempotent on completed-set membership: re-accepting an
// already-completed id neither duplicates the id nor re-increments the
// counter, but it still returns the celebratory payload. That asymmetry is a
// deliberate, documented choice, not an accident of implementation.
package services

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/replate/replate-backend/internal/catalog"
	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/store"
)

// requestsAccepted counts distinct newly-completed fulfillment requests.
var requestsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "fulfillment_requests_accepted_total",
	Help: "Total number of fulfillment requests newly accepted.",
})

func init() {
	prometheus.MustRegister(requestsAccepted)
}

// RequestState is a fulfillment request's editable state plus its derived
// fulfillment flag. The flag is recomputed on every read; it is never stored.
type RequestState struct {
	Request        domain.Request
	FullyFulfilled bool
}

// AcceptResult describes the effects of a commit: whether this call actually
// completed the request or replayed a completed one, the resulting upcoming
// deliveries count, and the delayed-navigation contract for the caller.
type AcceptResult struct {
	RequestID          int
	AlreadyCompleted   bool
	UpcomingDeliveries int
	RedirectTo         string
	RedirectAfter      time.Duration
	Message            string
}

// FulfillmentService drives the donor request lifecycle. Working copies of
// requirement lines live in memory, the analogue of component-local editable
// state; only the completed set and the accepted counter are persisted.
type FulfillmentService struct {
	// Store is the persisted key-value store shared with the aggregator.
	Store store.Store

	// BaseDeliveries is the fixed number of deliveries shown before any
	// request is accepted.
	BaseDeliveries int
	// RedirectDelay is how long the caller should wait before navigating
	// back to the dashboard after an accept.
	RedirectDelay time.Duration

	mu   sync.Mutex
	open map[int]*domain.Request // editable working copies by request id
}

// NewFulfillmentService constructs a FulfillmentService with the catalog
// defaults: two base deliveries and a three second redirect delay.
func NewFulfillmentService(st store.Store) *FulfillmentService {
	return &FulfillmentService{
		Store:          st,
		BaseDeliveries: 2,
		RedirectDelay:  3 * time.Second,
		open:           make(map[int]*domain.Request),
	}
}

// completedIDs reads the persisted completed set; absent or malformed state
// reads as empty.
func (s *FulfillmentService) completedIDs(ctx context.Context) ([]int, error) {
	var ids []int
	if _, err := s.Store.Get(ctx, store.KeyCompletedRequests, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// List returns the active view: every catalog request whose id is not in the
// persisted completed set, in authoring order.
func (s *FulfillmentService) List(ctx context.Context) ([]domain.Request, error) {
	done, err := s.completedIDs(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Active(done), nil
}

// Get returns the editable state for a request, loading a fresh working copy
// from the catalog on first access. Completed ids yield ErrRequestCompleted
// and unknown ids ErrRequestNotFound; both are redirect cases for callers.
func (s *FulfillmentService) Get(ctx context.Context, id int) (*RequestState, error) {
	done, err := s.completedIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range done {
		if d == id {
			return nil, ErrRequestCompleted
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(id)
}

// stateLocked returns the working copy for id, cloning it from the catalog if
// this is the first access. Callers must hold s.mu.
func (s *FulfillmentService) stateLocked(id int) (*RequestState, error) {
	req, ok := s.open[id]
	if !ok {
		fresh, found := catalog.Lookup(id)
		if !found {
			return nil, ErrRequestNotFound
		}
		req = fresh
		s.open[id] = req
	}
	return &RequestState{Request: *req.Clone(), FullyFulfilled: req.FullyFulfilled()}, nil
}

// Toggle flips the fulfilled flag of exactly one requirement line and returns
// the updated state with the fulfillment flag re-derived.
func (s *FulfillmentService) Toggle(ctx context.Context, id, lineID int) (*RequestState, error) {
	done, err := s.completedIDs(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range done {
		if d == id {
			return nil, ErrRequestCompleted
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.stateLocked(id); err != nil {
		return nil, err
	}
	req := s.open[id]

	flipped := false
	for i := range req.Requirements {
		if req.Requirements[i].ID == lineID {
			req.Requirements[i].Fulfilled = !req.Requirements[i].Fulfilled
			flipped = true
			break
		}
	}
	if !flipped {
		return nil, ErrLineNotFound
	}

	return &RequestState{Request: *req.Clone(), FullyFulfilled: req.FullyFulfilled()}, nil
}

// Accept commits a fully fulfilled request. Effects, in order: the id is
// appended to the persisted completed set iff absent, then the accepted
// counter is incremented iff the id was newly completed. Replays return the
// celebratory payload with AlreadyCompleted set and touch neither value.
func (s *FulfillmentService) Accept(ctx context.Context, id int) (*AcceptResult, error) {
	tr := otel.Tracer("services/FulfillmentService")
	ctx, span := tr.Start(ctx, "Accept",
		trace.WithAttributes(attribute.Int("request.id", id)),
	)
	defer span.End()

	if _, ok := catalog.Lookup(id); !ok {
		return nil, ErrRequestNotFound
	}

	done, err := s.completedIDs(ctx)
	if err != nil {
		return nil, err
	}
	already := false
	for _, d := range done {
		if d == id {
			already = true
			break
		}
	}

	var accepted int
	if _, err := s.Store.Get(ctx, store.KeyAcceptedRequests, &accepted); err != nil {
		return nil, err
	}

	if !already {
		s.mu.Lock()
		st, err := s.stateLocked(id)
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
		if !st.FullyFulfilled {
			s.mu.Unlock()
			return nil, ErrNotFulfilled
		}
		// The working copy is terminal once committed.
		delete(s.open, id)
		s.mu.Unlock()

		if err := s.Store.Set(ctx, store.KeyCompletedRequests, append(done, id)); err != nil {
			return nil, err
		}
		accepted++
		if err := s.Store.Set(ctx, store.KeyAcceptedRequests, accepted); err != nil {
			return nil, err
		}

		requestsAccepted.Inc()
		log.Info().Int("request_id", id).Int("accepted_total", accepted).Msg("fulfillment request accepted")
	}

	return &AcceptResult{
		RequestID:          id,
		AlreadyCompleted:   already,
		UpcomingDeliveries: s.BaseDeliveries + accepted,
		RedirectTo:         "/dashboard",
		RedirectAfter:      s.RedirectDelay,
		Message:            "Delivery Added!",
	}, nil
}
