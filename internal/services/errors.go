// Package services implements the business logic of the coordination
// workflow: the donor fulfillment lifecycle, shelter request authoring, the
// badge aggregator and inventory recording. This file centralizes the
// service-level error values so they can be consistently returned by service
// methods and mapped to HTTP results at the handler layer.
package services

import "errors"

var (
	// ErrRequestNotFound indicates the referenced fulfillment request id is
	// not in the catalog. Handlers fail open: they redirect the caller to the
	// request listing rather than rendering an error state.
	ErrRequestNotFound = errors.New("request not found")

	// ErrRequestCompleted indicates the referenced fulfillment request was
	// already accepted and is no longer part of the active view. Handlers
	// treat it like ErrRequestNotFound (redirect to the listing).
	ErrRequestCompleted = errors.New("request already completed")

	// ErrLineNotFound indicates a toggle referenced a requirement line id the
	// request does not have.
	ErrLineNotFound = errors.New("requirement line not found")

	// ErrNotFulfilled is returned when accept is attempted before every
	// requirement line is satisfied. The precondition failure is absorbed
	// locally (409 at the transport), never a server error.
	ErrNotFulfilled = errors.New("not all requirements fulfilled")

	// ErrShelterRequestNotFound indicates the referenced shelter request id
	// does not exist in the persisted list.
	ErrShelterRequestNotFound = errors.New("shelter request not found")

	// ErrNotActive is returned when cancel is attempted on a shelter request
	// that already left the Active state. Terminal states have no way back.
	ErrNotActive = errors.New("shelter request is not active")

	// ErrInvalidUrgency is returned when a shelter request is created with an
	// urgency outside Low/Medium/High.
	ErrInvalidUrgency = errors.New("urgency must be Low, Medium or High")

	// ErrEmptyTitle is returned when a shelter request is created without a
	// title.
	ErrEmptyTitle = errors.New("title is empty")

	// ErrNoItems is returned when a shelter request has no usable item line
	// (every line needs a name and a quantity).
	ErrNoItems = errors.New("at least one item with name and quantity is required")

	// ErrEmptyImage is returned when a scan is submitted without an image
	// payload.
	ErrEmptyImage = errors.New("image payload is empty")

	// ErrMissingCredentials is returned when the demo login is attempted
	// without both a username and a password.
	ErrMissingCredentials = errors.New("username and password are required")
)
