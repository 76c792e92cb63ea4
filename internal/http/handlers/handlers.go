// Handler wiring.
//
// Handlers groups the HTTP endpoints of the coordination API. It depends on
// abstract service interfaces (declared next to the handlers that consume
// them) to keep transport concerns separate from business logic.
package handlers

// Handlers groups HTTP endpoints for requests, shelter requests, badges,
// inventory and the demo session.
type Handlers struct {
	fulfillSvc FulfillmentService
	shelterSvc ShelterService
	badgeSvc   BadgeService
	invSvc     InventoryService
	sessSvc    SessionService
}

// New constructs a Handlers instance bound to the given services.
func New(fulfill FulfillmentService, shelter ShelterService, badge BadgeService, inv InventoryService, sess SessionService) *Handlers {
	return &Handlers{
		fulfillSvc: fulfill,
		shelterSvc: shelter,
		badgeSvc:   badge,
		invSvc:     inv,
		sessSvc:    sess,
	}
}
