// Package store provides the persisted key-value store the workflow state
// lives in: string keys mapped to JSON-encoded values, surviving restarts,
// shared by every consumer in the process.
//
// The contract mirrors a browser's persisted storage deliberately:
//
//   - Get decodes the stored JSON into the caller's value, or leaves it
//     untouched (the caller's default) when the key is absent. Malformed
//     persisted JSON is treated the same as an absent key rather than
//     surfacing a decode error; a corrupt entry must never take down a
//     consumer that only derives a badge count from it.
//   - Set encodes to JSON and rewrites the whole value under the key. There
//     is no transactionality and no merge: concurrent writers race and the
//     last Set wins, silently dropping the other writer's data. That
//     lost-update hazard is intentional and is covered by tests, not papered
//     over.
//   - Every successful Set synchronously notifies subscribers of the changed
//     key, so consumers can re-derive state without interval polling. The
//     polling path still exists in the aggregator as a fallback.
package store

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// Well-known keys. Values under these keys are shared by every consumer and
// are always rewritten whole.
const (
	// KeyCompletedRequests holds []int: ids of fulfilled donor requests.
	KeyCompletedRequests = "completedRequests"
	// KeyAcceptedRequests holds int: a monotonically incremented counter.
	KeyAcceptedRequests = "acceptedRequests"
	// KeyShelterRequests holds []domain.ShelterRequest.
	KeyShelterRequests = "shelterRequests"
	// KeyInventory holds []domain.InventoryItem.
	KeyInventory = "inventory"
	// KeyUserType holds the logged-in surface, e.g. "shelter".
	KeyUserType = "userType"
	// KeyShelterName holds the display name of the logged-in shelter.
	KeyShelterName = "shelterName"
	// KeyShelterEmployee holds domain.Employee.
	KeyShelterEmployee = "shelterEmployee"
)

// Store is the persisted key-value accessor injected into services. Both the
// durable SQLite implementation and the in-memory test fake satisfy it.
type Store interface {
	// Get decodes the value under key into the pointer `into`. It returns
	// found=false and leaves `into` untouched when the key is absent or the
	// stored payload cannot be decoded. A non-nil error means the backing
	// store itself failed (connectivity, I/O), never a decode problem.
	Get(ctx context.Context, key string, into any) (found bool, err error)

	// Set encodes value as JSON and rewrites it under key, then notifies
	// subscribers of the change. Last writer wins.
	Set(ctx context.Context, key string, value any) error

	// Delete removes the value under key and notifies subscribers. Deleting
	// an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Subscribe registers interest in changes to key. The returned channel
	// receives the key after each successful Set; slow consumers have
	// notifications dropped rather than blocking writers. The returned func
	// unsubscribes and closes the channel.
	Subscribe(key string) (<-chan string, func())
}

// storeWrites counts Set calls per key. Badge lag investigations start here.
var storeWrites = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "store_writes_total",
		Help: "Total number of key-value store writes, by key.",
	},
	[]string{"key"},
)

func init() {
	prometheus.MustRegister(storeWrites)
}
