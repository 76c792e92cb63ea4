package store

import (
	"context"
	"testing"
	"time"
)

func TestMemory_GetAbsent(t *testing.T) {
	m := NewMemory()

	var v int
	found, err := m.Get(context.Background(), "missing", &v)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatalf("absent key reported found")
	}
	if v != 0 {
		t.Fatalf("absent key mutated the target: %d", v)
	}
}

func TestMemory_SetGetRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, KeyAcceptedRequests, 3); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var v int
	found, err := m.Get(ctx, KeyAcceptedRequests, &v)
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if v != 3 {
		t.Fatalf("got %d, want 3", v)
	}
}

// A malformed persisted payload reads as absent so consumers fall back to
// their defaults instead of failing.
func TestMemory_MalformedReadsAsAbsent(t *testing.T) {
	m := NewMemory()
	m.SeedRaw(KeyCompletedRequests, []byte(`{not json`))

	var ids []int
	found, err := m.Get(context.Background(), KeyCompletedRequests, &ids)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Fatalf("malformed entry reported found")
	}
	if len(ids) != 0 {
		t.Fatalf("malformed entry produced values: %v", ids)
	}
}

func TestMemory_LastWriterWins(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	// Two writers each read the list, append, and write the whole value.
	// The second write replaces the first; nothing merges.
	if err := m.Set(ctx, KeyCompletedRequests, []int{1}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, KeyCompletedRequests, []int{2}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var ids []int
	if _, err := m.Get(ctx, KeyCompletedRequests, &ids); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Fatalf("got %v, want [2]", ids)
	}
}

func TestMemory_DeleteRemovesAndNotifies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, KeyUserType, "shelter"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	ch, unsub := m.Subscribe(KeyUserType)
	defer unsub()

	if err := m.Delete(ctx, KeyUserType); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var v string
	found, err := m.Get(ctx, KeyUserType, &v)
	if err != nil || found {
		t.Fatalf("deleted key still found=%v err=%v", found, err)
	}

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("no notification for delete")
	}

	// Deleting an absent key is a no-op.
	if err := m.Delete(ctx, "never-set"); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}

func TestMemory_SubscribeNotifiesOnSet(t *testing.T) {
	m := NewMemory()
	ch, unsub := m.Subscribe(KeyAcceptedRequests)
	defer unsub()

	if err := m.Set(context.Background(), KeyAcceptedRequests, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}

	select {
	case k := <-ch:
		if k != KeyAcceptedRequests {
			t.Fatalf("notified key %q, want %q", k, KeyAcceptedRequests)
		}
	case <-time.After(time.Second):
		t.Fatalf("no notification within 1s")
	}
}

func TestMemory_SubscribeOtherKeySilent(t *testing.T) {
	m := NewMemory()
	ch, unsub := m.Subscribe(KeyAcceptedRequests)
	defer unsub()

	if err := m.Set(context.Background(), KeyInventory, []string{"x"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	select {
	case <-ch:
		t.Fatalf("notified for an unrelated key")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemory_UnsubscribeClosesChannel(t *testing.T) {
	m := NewMemory()
	ch, unsub := m.Subscribe(KeyAcceptedRequests)
	unsub()

	select {
	case _, open := <-ch:
		if open {
			t.Fatalf("channel delivered after unsubscribe")
		}
	case <-time.After(time.Second):
		t.Fatalf("channel not closed after unsubscribe")
	}

	// A publish after unsubscribe must not panic.
	if err := m.Set(context.Background(), KeyAcceptedRequests, 1); err != nil {
		t.Fatalf("Set: %v", err)
	}
}

// A slow subscriber with a full buffer drops notifications rather than
// blocking writers.
func TestMemory_PublishNeverBlocks(t *testing.T) {
	m := NewMemory()
	_, unsub := m.Subscribe(KeyAcceptedRequests)
	defer unsub()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			_ = m.Set(context.Background(), KeyAcceptedRequests, i)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("writer blocked on a saturated subscriber")
	}
}
