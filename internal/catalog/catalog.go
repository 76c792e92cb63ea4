// Package catalog holds the static, read-only list of donor-facing
// fulfillment requests. The catalog is seeded at build time and is not
// user-editable on the donor flow; the active view is the catalog minus the
// ids already recorded as completed in the persisted store.
package catalog

import "github.com/replate/replate-backend/internal/domain"

// requests is the seeded catalog. Ids are stable and assigned at authoring
// time; lifecycle state lives in the store, never here.
var requests = []domain.Request{
	{ID: 1, Name: "The Osborn", Address: "27 W Hastings St, Vancouver, BC V6B 1G5", Requirements: []domain.Requirement{
		{ID: 1, Item: "Apples", Quantity: "3 lbs"},
		{ID: 2, Item: "Oranges", Quantity: "1 lb"},
	}},
	{ID: 2, Name: "Yukon Shelter", Address: "125 Main St, Vancouver, BC V6A 2S5", Requirements: []domain.Requirement{
		{ID: 1, Item: "Bread", Quantity: "4 loaves"},
		{ID: 2, Item: "Milk", Quantity: "2 gallons"},
	}},
	{ID: 3, Name: "AI Mitchell", Address: "356 E Hastings St, Vancouver, BC V6A 1P1", Requirements: []domain.Requirement{
		{ID: 1, Item: "Pasta", Quantity: "5 boxes"},
		{ID: 2, Item: "Canned Soup", Quantity: "10 cans"},
	}},
	{ID: 4, Name: "New Fountain Shelter", Address: "721 E Hastings St, Vancouver, BC V6A 1R3", Requirements: []domain.Requirement{
		{ID: 1, Item: "Rice", Quantity: "10 lbs"},
		{ID: 2, Item: "Beans", Quantity: "5 lbs"},
	}},
	{ID: 5, Name: "Hope Center", Address: "521 Powell St, Vancouver, BC V6A 1G8", Requirements: []domain.Requirement{
		{ID: 1, Item: "Vegetables", Quantity: "8 lbs"},
		{ID: 2, Item: "Fruits", Quantity: "6 lbs"},
	}},
}

// Total is the number of requests in the system. The aggregator compares the
// completed set against it to decide whether active work remains.
func Total() int { return len(requests) }

// All returns deep copies of every catalog request, in authoring order.
func All() []domain.Request {
	out := make([]domain.Request, 0, len(requests))
	for i := range requests {
		out = append(out, *requests[i].Clone())
	}
	return out
}

// Lookup returns a deep copy of the request with the given id, or false when
// the id is not in the catalog.
func Lookup(id int) (*domain.Request, bool) {
	for i := range requests {
		if requests[i].ID == id {
			return requests[i].Clone(), true
		}
	}
	return nil, false
}

// Active returns deep copies of the catalog entries whose ids are not in the
// completed set, preserving authoring order.
func Active(completed []int) []domain.Request {
	done := make(map[int]struct{}, len(completed))
	for _, id := range completed {
		done[id] = struct{}{}
	}
	out := make([]domain.Request, 0, len(requests))
	for i := range requests {
		if _, ok := done[requests[i].ID]; ok {
			continue
		}
		out = append(out, *requests[i].Clone())
	}
	return out
}
