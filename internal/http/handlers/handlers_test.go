package handlers

import (
	"context"

	"github.com/replate/replate-backend/internal/classify"
	"github.com/replate/replate-backend/internal/domain"
	"github.com/replate/replate-backend/internal/services"
)

// Stubs satisfying the service contracts handlers depend on. Each method
// delegates to an optional function field so individual tests override only
// what they exercise.

type stubFulfillSvc struct {
	list   func(ctx context.Context) ([]domain.Request, error)
	get    func(ctx context.Context, id int) (*services.RequestState, error)
	toggle func(ctx context.Context, id, lineID int) (*services.RequestState, error)
	accept func(ctx context.Context, id int) (*services.AcceptResult, error)
}

func (s stubFulfillSvc) List(ctx context.Context) ([]domain.Request, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s stubFulfillSvc) Get(ctx context.Context, id int) (*services.RequestState, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &services.RequestState{}, nil
}

func (s stubFulfillSvc) Toggle(ctx context.Context, id, lineID int) (*services.RequestState, error) {
	if s.toggle != nil {
		return s.toggle(ctx, id, lineID)
	}
	return &services.RequestState{}, nil
}

func (s stubFulfillSvc) Accept(ctx context.Context, id int) (*services.AcceptResult, error) {
	if s.accept != nil {
		return s.accept(ctx, id)
	}
	return &services.AcceptResult{}, nil
}

type stubShelterSvc struct {
	create func(ctx context.Context, in services.NewRequestInput) (*domain.ShelterRequest, error)
	list   func(ctx context.Context, status string) ([]domain.ShelterRequest, error)
	cancel func(ctx context.Context, id int64) (*domain.ShelterRequest, error)
}

func (s stubShelterSvc) Create(ctx context.Context, in services.NewRequestInput) (*domain.ShelterRequest, error) {
	if s.create != nil {
		return s.create(ctx, in)
	}
	return &domain.ShelterRequest{}, nil
}

func (s stubShelterSvc) List(ctx context.Context, status string) ([]domain.ShelterRequest, error) {
	if s.list != nil {
		return s.list(ctx, status)
	}
	return nil, nil
}

func (s stubShelterSvc) Cancel(ctx context.Context, id int64) (*domain.ShelterRequest, error) {
	if s.cancel != nil {
		return s.cancel(ctx, id)
	}
	return &domain.ShelterRequest{}, nil
}

type stubBadgeSvc struct {
	snapshot func(ctx context.Context) services.Badges
}

func (s stubBadgeSvc) Snapshot(ctx context.Context) services.Badges {
	if s.snapshot != nil {
		return s.snapshot(ctx)
	}
	return services.Badges{}
}

type stubInvSvc struct {
	list func(ctx context.Context) ([]domain.InventoryItem, error)
	add  func(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error)
	scan func(ctx context.Context, imageBase64 string) (*domain.InventoryItem, *classify.Result, error)
}

func (s stubInvSvc) List(ctx context.Context) ([]domain.InventoryItem, error) {
	if s.list != nil {
		return s.list(ctx)
	}
	return nil, nil
}

func (s stubInvSvc) Add(ctx context.Context, item domain.InventoryItem) (*domain.InventoryItem, error) {
	if s.add != nil {
		return s.add(ctx, item)
	}
	return &item, nil
}

func (s stubInvSvc) Scan(ctx context.Context, imageBase64 string) (*domain.InventoryItem, *classify.Result, error) {
	if s.scan != nil {
		return s.scan(ctx, imageBase64)
	}
	return &domain.InventoryItem{}, &classify.Result{}, nil
}

type stubSessSvc struct {
	login   func(ctx context.Context, username, password string) (*services.Session, error)
	logout  func(ctx context.Context) error
	current func(ctx context.Context) (*services.Session, error)
}

func (s stubSessSvc) LoginShelter(ctx context.Context, username, password string) (*services.Session, error) {
	if s.login != nil {
		return s.login(ctx, username, password)
	}
	return &services.Session{}, nil
}

func (s stubSessSvc) Logout(ctx context.Context) error {
	if s.logout != nil {
		return s.logout(ctx)
	}
	return nil
}

func (s stubSessSvc) Current(ctx context.Context) (*services.Session, error) {
	if s.current != nil {
		return s.current(ctx)
	}
	return &services.Session{}, nil
}

// newTestHandlers builds a Handlers with the given stubs, defaulting the rest.
func newTestHandlers(f FulfillmentService, sh ShelterService, b BadgeService, inv InventoryService, sess SessionService) *Handlers {
	if f == nil {
		f = stubFulfillSvc{}
	}
	if sh == nil {
		sh = stubShelterSvc{}
	}
	if b == nil {
		b = stubBadgeSvc{}
	}
	if inv == nil {
		inv = stubInvSvc{}
	}
	if sess == nil {
		sess = stubSessSvc{}
	}
	return New(f, sh, b, inv, sess)
}
