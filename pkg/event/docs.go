package event

import "github.com/eventforge/eventforge/pkg/model"

// swagger:parameters findEventById findOrganisationEvents findMyEventById updateEvent deleteEvent
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:parameters findEvents
type _ struct {
	// Event type, one-time or recurring
	// in: query
	Type string `json:"type"`
	// Event state, active or expired
	// in: query
	State string `json:"state"`
	// Zero based page number
	// in: query
	Page int `json:"page"`
	// Page size between 1 and 100
	// in: query
	Size int `json:"size"`
	// Sort property, one of startsAt, endsAt, createdAt or name
	// in: query
	Sort string `json:"sort"`
	// Sort direction, asc or desc
	// in: query
	Direction string `json:"direction"`
}

// swagger:parameters findOrganisationEvents
type _ struct {
	// Event state, active, expired or upcoming
	// in: query
	State string `json:"state"`
	// Event type, one-time or recurring
	// in: query
	Type string `json:"type"`
}

// swagger:parameters createEvent updateEvent
type _ struct {
	// Event request body parameter
	// in: body
	// required: true
	Body EventRequest
}

// swagger:response EventsResponse
type _ struct {
	//in: body
	_ []model.Event
}

// swagger:response EventPage
type _ struct {
	//in: body
	_ model.Page[model.Event]
}
