// Package services – ShelterService
//
// This file implements the shelter-side stock request workflow: authoring a
// request, listing with a status filter, and cancelling an active request.
// The whole list is persisted under one key and rewritten on every mutation;
// there is no partial update path, matching the store's whole-value contract.
package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/store"
)

// IDGenerator hands out unique shelter request ids. Millisecond timestamps
// are kept for their sortability, but a collision under rapid creation bumps
// the id past the last one issued, so two requests created within the same
// millisecond still get distinct, strictly increasing ids.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	// now is a seam for tests; defaults to wall-clock milliseconds.
	now func() int64
}

// Next returns the next unique id.
func (g *IDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if g.now != nil {
		now = g.now()
	}
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return now
}

// NewRequestInput is the payload for authoring a shelter request.
type NewRequestInput struct {
	Title   string
	Urgency string
	Items   []domain.RequestItem
	Notes   string
}

// ShelterService manages shelter-authored stock requests.
type ShelterService struct {
	// Store is the persisted key-value store holding the request list.
	Store store.Store
	// IDs generates unique request ids.
	IDs *IDGenerator

	// seedOnce guards the one-time installation of the sample requests that
	// an empty list starts out with.
	seedOnce sync.Once
}

// NewShelterService constructs a ShelterService.
func NewShelterService(st store.Store) *ShelterService {
	return &ShelterService{Store: st, IDs: &IDGenerator{}}
}

// sampleRequests returns the requests a fresh installation starts with, so
// the dashboard has content before the shelter authors anything.
func sampleRequests(now time.Time) []domain.ShelterRequest {
	weekAgo := now.Add(-7 * 24 * time.Hour)
	monthAgo := now.Add(-29 * 24 * time.Hour)
	return []domain.ShelterRequest{
		{
			ID:      1,
			Title:   "Emergency Food Supplies",
			Urgency: domain.UrgencyHigh,
			Status:  domain.StatusActive,
			Items: []domain.RequestItem{
				{Name: "Tomatoes", Category: "Produce", Quantity: "20", Unit: "lbs"},
			},
			Notes:     "We need fresh tomatoes for our soup kitchen that serves 100 people daily",
			CreatedAt: now.Add(-time.Hour),
		},
		{
			ID:      2,
			Title:   "Weekly Bread Pickup",
			Urgency: domain.UrgencyMedium,
			Status:  domain.StatusCompleted,
			Items: []domain.RequestItem{
				{Name: "Bread", Category: "Baked Goods", Quantity: "30", Unit: "loaves"},
				{Name: "Rolls", Category: "Baked Goods", Quantity: "40", Unit: "pieces"},
			},
			Notes:     "Regular weekly pickup for our breakfast program",
			CreatedAt: now.Add(-8 * 24 * time.Hour),
			UpdatedAt: &weekAgo,
		},
		{
			ID:      3,
			Title:   "Dairy Products",
			Urgency: domain.UrgencyLow,
			Status:  domain.StatusCompleted,
			Items: []domain.RequestItem{
				{Name: "Milk", Category: "Dairy", Quantity: "15", Unit: "gallons"},
				{Name: "Yogurt", Category: "Dairy", Quantity: "50", Unit: "cups"},
			},
			Notes:     "Monthly dairy products for our senior nutrition program",
			CreatedAt: now.Add(-30 * 24 * time.Hour),
			UpdatedAt: &monthAgo,
		},
	}
}

// load reads the persisted request list, installing the sample requests the
// first time an empty store is seen.
func (s *ShelterService) load(ctx context.Context) ([]domain.ShelterRequest, error) {
	var list []domain.ShelterRequest
	found, err := s.Store.Get(ctx, store.KeyShelterRequests, &list)
	if err != nil {
		return nil, err
	}
	if !found {
		var seedErr error
		s.seedOnce.Do(func() {
			list = sampleRequests(time.Now().UTC())
			seedErr = s.Store.Set(ctx, store.KeyShelterRequests, list)
		})
		if seedErr != nil {
			return nil, seedErr
		}
		if list == nil {
			// Seeding happened on another call but the write has not landed
			// from this reader's perspective; treat as empty.
			list = []domain.ShelterRequest{}
		}
	}
	return list, nil
}

// Create validates the input, assigns a unique id, and appends the new Active
// request to the persisted list.
func (s *ShelterService) Create(ctx context.Context, in NewRequestInput) (*domain.ShelterRequest, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if !domain.ValidUrgency(in.Urgency) {
		return nil, ErrInvalidUrgency
	}

	items := make([]domain.RequestItem, 0, len(in.Items))
	for _, it := range in.Items {
		if strings.TrimSpace(it.Name) == "" || strings.TrimSpace(it.Quantity) == "" {
			continue
		}
		items = append(items, it)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	req := domain.ShelterRequest{
		ID:        s.IDs.Next(),
		Title:     title,
		Urgency:   in.Urgency,
		Status:    domain.StatusActive,
		Items:     items,
		Notes:     strings.TrimSpace(in.Notes),
		CreatedAt: time.Now().UTC(),
	}

	// Newest first, matching how the authored list is browsed.
	list = append([]domain.ShelterRequest{req}, list...)
	if err := s.Store.Set(ctx, store.KeyShelterRequests, list); err != nil {
		return nil, err
	}

	log.Info().Int64("shelter_request_id", req.ID).Str("urgency", req.Urgency).Msg("shelter request created")
	return &req, nil
}

// List returns the persisted requests, optionally filtered by status. An
// empty or "All" filter returns everything. Filtering is case-insensitive,
// matching the original browsing surface.
func (s *ShelterService) List(ctx context.Context, status string) ([]domain.ShelterRequest, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" || strings.EqualFold(status, "all") {
		return list, nil
	}
	out := make([]domain.ShelterRequest, 0, len(list))
	for _, r := range list {
		if strings.EqualFold(r.Status, status) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Cancel moves an Active request to Cancelled and rewrites the whole list.
// Cancelling a request in any other state is rejected with ErrNotActive;
// terminal states have no way back.
func (s *ShelterService) Cancel(ctx context.Context, id int64) (*domain.ShelterRequest, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	for i := range list {
		if list[i].ID != id {
			continue
		}
		if list[i].Status != domain.StatusActive {
			return nil, ErrNotActive
		}
		now := time.Now().UTC()
		list[i].Status = domain.StatusCancelled
		list[i].UpdatedAt = &now
		if err := s.Store.Set(ctx, store.KeyShelterRequests, list); err != nil {
			return nil, err
		}
		out := list[i]
		log.Info().Int64("shelter_request_id", id).Msg("shelter request cancelled")
		return &out, nil
	}
	return nil, ErrShelterRequestNotFound
}
