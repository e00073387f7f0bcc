package event

import (
	"context"
	"net/http"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/internal/handler"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(eventService eventService) Handler {
	return Handler{eventService}
}

type Handler struct {
	eventService eventService
}

type eventService interface {
	FindUpcoming(ctx context.Context) ([]model.Event, error)
	FindById(ctx context.Context, id uint) (*model.Event, error)
	FindPage(ctx context.Context, eventType string, state string, pageable model.Pageable) (model.Page[model.Event], error)
	FindByOrganisationAndState(ctx context.Context, organisationId uint, state string) ([]model.Event, error)
	FindByOrganisationAndType(ctx context.Context, organisationId uint, eventType string) ([]model.Event, error)
	FindMine(ctx context.Context, user *model.User) ([]model.Event, error)
	FindMineById(ctx context.Context, user *model.User, id uint) (*model.Event, error)
	Create(ctx context.Context, user *model.User, request EventRequest) (*model.Event, error)
	Update(ctx context.Context, user *model.User, id uint, request EventRequest) (*model.Event, error)
	Delete(ctx context.Context, user *model.User, id uint) (string, error)
}

type findEventsRequest struct {
	Type  string `form:"type" binding:"omitempty,oneOf=one-time recurring"`
	State string `form:"state" binding:"omitempty,oneOf=active expired"`
	model.Pageable
}

// FindPage of events
func (h Handler) FindPage(c *gin.Context) {
	// swagger:route GET /events findEvents
	//
	// Find events
	//
	// Find a page of public events by type and state. Type defaults to one-time and state to active.
	//
	// responses:
	//   200: EventPage
	//   400: Error
	var request findEventsRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		_ = c.Error(errdef.NewBadRequest("error binding query: %v", err))
		return
	}

	page, err := h.eventService.FindPage(c.Request.Context(), request.Type, request.State, request.Pageable)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// FindUpcoming events
func (h Handler) FindUpcoming(c *gin.Context) {
	// swagger:route GET /events/upcoming findUpcomingEvents
	//
	// Find upcoming events
	//
	// Find the next three public events
	//
	// responses:
	//   200: EventsResponse
	events, err := h.eventService.FindUpcoming(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// FindById event
func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /events/{id} findEventById
	//
	// Find event
	//
	// Find a public event by its id
	//
	// responses:
	//   200: Event
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

type findOrganisationEventsRequest struct {
	Type  string `form:"type" binding:"omitempty,oneOf=one-time recurring"`
	State string `form:"state" binding:"omitempty,oneOf=active expired upcoming"`
}

// FindByOrganisation events
func (h Handler) FindByOrganisation(c *gin.Context) {
	// swagger:route GET /organisations/{id}/events findOrganisationEvents
	//
	// Find organisation events
	//
	// Find the events of an organisation either by state or by type. State takes precedence and defaults to active when neither is given.
	//
	// responses:
	//   200: EventsResponse
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request findOrganisationEventsRequest
	if err := c.ShouldBindQuery(&request); err != nil {
		_ = c.Error(errdef.NewBadRequest("error binding query: %v", err))
		return
	}

	var events []model.Event
	var err error
	if request.State == "" && request.Type != "" {
		events, err = h.eventService.FindByOrganisationAndType(c.Request.Context(), id, request.Type)
	} else {
		state := request.State
		if state == "" {
			state = StateActive
		}
		events, err = h.eventService.FindByOrganisationAndState(c.Request.Context(), id, state)
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// FindMine events
func (h Handler) FindMine(c *gin.Context) {
	// swagger:route GET /me/events findMyEvents
	//
	// Find my events
	//
	// Find the events of the organisation owned by the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: EventsResponse
	//   401: Error
	//   403: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	events, err := h.eventService.FindMine(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, events)
}

// FindMineById event
func (h Handler) FindMineById(c *gin.Context) {
	// swagger:route GET /me/events/{id} findMyEventById
	//
	// Find my event
	//
	// Find an event of the organisation owned by the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.FindMineById(c.Request.Context(), user, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Create event
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /me/events createEvent
	//
	// Create event
	//
	// Publish an event for the organisation owned by the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   201: Event
	//   400: Error
	//   401: Error
	//   403: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request EventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), user, request)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, event)
}

// Update event
func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /me/events/{id} updateEvent
	//
	// Update event
	//
	// Update an event of the organisation owned by the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Event
	//   400: Error
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request EventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), user, id, request)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, event)
}

// Delete event
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /me/events/{id} deleteEvent
	//
	// Delete event
	//
	// Delete an event of the organisation owned by the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   202: Message
	//   401: Error
	//   403: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := h.eventService.Delete(c.Request.Context(), user, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusAccepted, handler.Message{Message: msg})
}
