// Package domain defines the core data types of the coordination service:
// donor-facing fulfillment requests with their requirement lines, the
// shelter-authored stock requests with their independent lifecycle, and the
// inventory items recorded from scanning. These types are plain values; the
// persisted representation is JSON under string keys (see the store package).
package domain

import "time"

// Requirement is one item+quantity entry within a fulfillment request,
// independently markable as satisfied. A Requirement is owned exclusively by
// its parent Request and is mutated only through the lifecycle engine's
// toggle operation.
type Requirement struct {
	ID        int    `json:"id"`
	Item      string `json:"item"`
	Quantity  string `json:"quantity"`
	Fulfilled bool   `json:"fulfilled"`
}

// Request is a donor-facing fulfillment request: one shelter's need, composed
// of requirement lines. Identity is the stable catalog id; requests are never
// created at runtime on the donor side.
type Request struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Requirements []Requirement `json:"requirements"`
}

// FullyFulfilled reports whether every requirement line is satisfied. It is a
// derived value: callers must re-read it after each toggle rather than cache
// it. A request with no lines is not considered fulfilled.
func (r *Request) FullyFulfilled() bool {
	if len(r.Requirements) == 0 {
		return false
	}
	for _, line := range r.Requirements {
		if !line.Fulfilled {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the request so callers can toggle requirement
// lines without mutating the shared catalog entry.
func (r *Request) Clone() *Request {
	out := *r
	out.Requirements = make([]Requirement, len(r.Requirements))
	copy(out.Requirements, r.Requirements)
	return &out
}

// Urgency levels accepted on shelter requests.
const (
	UrgencyLow    = "Low"
	UrgencyMedium = "Medium"
	UrgencyHigh   = "High"
)

// ValidUrgency reports whether u is one of the accepted urgency levels.
func ValidUrgency(u string) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

// ShelterRequest lifecycle states. Active is the only state the service
// transitions out of; Accepted and Completed are reachable through seed data
// only. No transition leaves a terminal state.
const (
	StatusActive    = "Active"
	StatusAccepted  = "Accepted"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// ValidStatus reports whether s is a known shelter-request status.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusAccepted, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// RequestItem is a single line of a shelter-authored stock request.
type RequestItem struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

// ShelterRequest is a shelter-authored ask for stock. Its lifecycle is
// independent from donor fulfillment requests.
//
// IDs are millisecond timestamps bumped monotonically on collision, so they
// stay unique under rapid creation while remaining sortable by creation time.
type ShelterRequest struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Urgency   string        `json:"urgency"`
	Status    string        `json:"status"`
	Items     []RequestItem `json:"items"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty"`
}

// Terminal reports whether the request has left the Active state for good.
func (s *ShelterRequest) Terminal() bool {
	return s.Status != StatusActive
}

// InventoryItem is one recorded stock entry on the donor side. Condition and
// FoodType come from the classification endpoint (or manual entry); the
// restriction tags are free-form dietary markers ("Vegan", "No Nuts", ...).
type InventoryItem struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	FoodType        string   `json:"food_type"`
	Condition       string   `json:"condition"`
	RestrictionTags []string `json:"restriction_tags"`
}

// Employee identifies the shelter staff member recorded by the demo login.
type Employee struct {
	Name string `json:"name"`
	Role string `json:"role"`
}
