package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/replate/replate-backend/internal/store"
)

// failStore errors on every read; it stands in for a broken backing store.
type failStore struct{ store.Store }

func (failStore) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("store down")
}

func newBadgeFixture() (*BadgeService, *store.Memory, *time.Time) {
	mem := store.NewMemory()
	svc := NewBadgeService(mem, 5)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, mem, &now
}

func TestBadgeSnapshot_Defaults(t *testing.T) {
	svc, _, _ := newBadgeFixture()

	b := svc.Snapshot(context.Background())
	if b.UpcomingDeliveries != 2 {
		t.Fatalf("UpcomingDeliveries = %d, want base 2", b.UpcomingDeliveries)
	}
	if !b.HasActiveRequests {
		t.Fatalf("empty completed set must report active requests")
	}
	if b.Pulse {
		t.Fatalf("baseline snapshot must not pulse")
	}
}

func TestBadgePulse_OnChangeThenClears(t *testing.T) {
	svc, mem, now := newBadgeFixture()
	ctx := context.Background()

	// Baseline.
	svc.Snapshot(ctx)

	if err := mem.Set(ctx, store.KeyAcceptedRequests, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b := svc.Snapshot(ctx)
	if b.UpcomingDeliveries != 3 {
		t.Fatalf("UpcomingDeliveries = %d, want 3", b.UpcomingDeliveries)
	}
	if !b.Pulse {
		t.Fatalf("value change must raise the pulse")
	}

	// An unchanged re-derivation keeps the pulse while it lasts.
	*now = now.Add(time.Second)
	if b := svc.Snapshot(ctx); !b.Pulse {
		t.Fatalf("pulse cleared before its duration elapsed")
	}

	// The pulse auto-clears after its lifetime.
	*now = now.Add(3 * time.Second)
	if b := svc.Snapshot(ctx); b.Pulse {
		t.Fatalf("pulse still raised after its duration")
	}
}

func TestBadgeHasActive_AllCompleted(t *testing.T) {
	svc, mem, _ := newBadgeFixture()
	ctx := context.Background()

	if err := mem.Set(ctx, store.KeyCompletedRequests, []int{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if b := svc.Snapshot(ctx); b.HasActiveRequests {
		t.Fatalf("full completed set must clear the active flag")
	}
}

// A hand-edited or corrupt counter never surfaces as an impossible badge.
func TestBadgeClampsNegativeCounter(t *testing.T) {
	svc, mem, _ := newBadgeFixture()
	ctx := context.Background()

	if err := mem.Set(ctx, store.KeyAcceptedRequests, -7); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if b := svc.Snapshot(ctx); b.UpcomingDeliveries != 2 {
		t.Fatalf("UpcomingDeliveries = %d, want clamped base 2", b.UpcomingDeliveries)
	}
}

func TestBadgeMalformedStateReadsAsDefault(t *testing.T) {
	mem := store.NewMemory()
	mem.SeedRaw(store.KeyAcceptedRequests, []byte(`"three"`))
	svc := NewBadgeService(mem, 5)

	if b := svc.Snapshot(context.Background()); b.UpcomingDeliveries != 2 {
		t.Fatalf("UpcomingDeliveries = %d, want default 2", b.UpcomingDeliveries)
	}
}

// Store failures keep the previous derivation instead of zeroing the badges.
func TestBadgeKeepsValuesOnStoreError(t *testing.T) {
	svc, mem, _ := newBadgeFixture()
	ctx := context.Background()

	if err := mem.Set(ctx, store.KeyAcceptedRequests, 2); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if b := svc.Snapshot(ctx); b.UpcomingDeliveries != 4 {
		t.Fatalf("UpcomingDeliveries = %d, want 4", b.UpcomingDeliveries)
	}

	svc.Store = failStore{}
	if b := svc.Snapshot(ctx); b.UpcomingDeliveries != 4 || !b.HasActiveRequests {
		t.Fatalf("failed refresh dropped previous values: %+v", b)
	}
}

func TestBadgeRun_ReactsToStoreChanges(t *testing.T) {
	mem := store.NewMemory()
	svc := NewBadgeService(mem, 5)
	svc.PollInterval = time.Hour // push path only

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Run(ctx)
	}()

	if err := mem.Set(ctx, store.KeyAcceptedRequests, 3); err != nil {
		t.Fatalf("Set: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		// Read the derived value without triggering a refresh of our own.
		svc.mu.Lock()
		upcoming := svc.upcoming
		svc.mu.Unlock()
		if upcoming == 5 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("aggregator never observed the store change: upcoming=%d", upcoming)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Run did not stop on context cancellation")
	}
}
