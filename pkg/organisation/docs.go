package organisation

import "github.com/eventforge/eventforge/pkg/model"

// swagger:parameters findOrganisationById
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:parameters updateOrganisation
type _ struct {
	// Update organisation request body parameter
	// in: body
	// required: true
	Body UpdateOrganisationRequest
}

// swagger:response OrganisationsResponse
type _ struct {
	//in: body
	_ []model.Organisation
}
