// Package event manages the events organisations publish and the public listings of them.
package event

import (
	"context"
	"time"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/message"
	"github.com/eventforge/eventforge/pkg/model"
)

const (
	TypeOneTime   = "one-time"
	TypeRecurring = "recurring"

	StateActive   = "active"
	StateExpired  = "expired"
	StateUpcoming = "upcoming"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(repository eventRepository) *Service {
	return &Service{
		repository: repository,
		now:        time.Now,
	}
}

type eventRepository interface {
	findAllExpiredEvents(ctx context.Context, organisationId uint, now time.Time) ([]model.Event, error)
	findAllActiveEvents(ctx context.Context, organisationId uint, now time.Time) ([]model.Event, error)
	findAllUpcomingEvents(ctx context.Context, organisationId uint, now time.Time) ([]model.Event, error)
	findThreeUpcomingEvents(ctx context.Context, now time.Time) ([]model.Event, error)
	findEventByIdWithCondition(ctx context.Context, eventId uint) (*model.Event, error)
	findAllOneTimeEventsByOrganisationId(ctx context.Context, organisationId uint) ([]model.Event, error)
	findAllRecurrenceEventsByOrganisationId(ctx context.Context, organisationId uint) ([]model.Event, error)
	findAllActiveOneTimeEvents(ctx context.Context, now time.Time, pageable model.Pageable) (model.Page[model.Event], error)
	findAllActiveRecurrenceEvents(ctx context.Context, now time.Time, pageable model.Pageable) (model.Page[model.Event], error)
	findAllExpiredOneTimeEvents(ctx context.Context, now time.Time, pageable model.Pageable) (model.Page[model.Event], error)
	findAllExpiredRecurrenceEvents(ctx context.Context, now time.Time, pageable model.Pageable) (model.Page[model.Event], error)
	findAllEventsForOrganisationByUserId(ctx context.Context, userId uint) ([]model.Event, error)
	findEventByIdAndUserId(ctx context.Context, userId uint, eventId uint) (*model.Event, error)
	isLegalOrganisation(ctx context.Context, organisationId uint) (bool, error)
	findOrganisationIdByUserId(ctx context.Context, userId uint) (uint, error)
	create(ctx context.Context, event *model.Event) error
	save(ctx context.Context, event *model.Event) error
	delete(ctx context.Context, id uint) error
}

type Service struct {
	repository eventRepository
	now        func() time.Time
}

// EventRequest holds the editable event details.
type EventRequest struct {
	Name              string    `json:"name" binding:"required"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	Categories        string    `json:"categories"`
	ImageURL          string    `json:"imageUrl"`
	IsOnline          bool      `json:"isOnline"`
	IsOneTime         bool      `json:"isOneTime"`
	Price             float64   `json:"price" binding:"gte=0"`
	MinAge            int       `json:"minAge" binding:"gte=0"`
	MaxAge            int       `json:"maxAge" binding:"gte=0"`
	StartsAt          time.Time `json:"startsAt" binding:"required"`
	EndsAt            time.Time `json:"endsAt" binding:"required"`
	RecurrenceDetails string    `json:"recurrenceDetails"`
}

func (r EventRequest) validate() error {
	if !r.EndsAt.After(r.StartsAt) {
		return errdef.NewBadRequest("%s", message.Get("event.invalidPeriod"))
	}
	return nil
}

func (r EventRequest) applyTo(event *model.Event) {
	event.Name = r.Name
	event.Description = r.Description
	event.Address = r.Address
	event.Categories = r.Categories
	event.ImageURL = r.ImageURL
	event.IsOnline = r.IsOnline
	event.IsOneTime = r.IsOneTime
	event.Price = r.Price
	event.MinAge = r.MinAge
	event.MaxAge = r.MaxAge
	event.StartsAt = r.StartsAt
	event.EndsAt = r.EndsAt
	event.RecurrenceDetails = r.RecurrenceDetails
}

// FindUpcoming returns the next three public events.
func (s Service) FindUpcoming(ctx context.Context) ([]model.Event, error) {
	return s.repository.findThreeUpcomingEvents(ctx, s.now())
}

// FindById returns the event if it is publicly visible.
func (s Service) FindById(ctx context.Context, id uint) (*model.Event, error) {
	return s.repository.findEventByIdWithCondition(ctx, id)
}

// FindPage returns a page of public events of given type and state. Unset type and state default to one-time and
// active.
func (s Service) FindPage(ctx context.Context, eventType string, state string, pageable model.Pageable) (model.Page[model.Event], error) {
	now := s.now()
	recurring := eventType == TypeRecurring

	switch {
	case state == StateExpired && recurring:
		return s.repository.findAllExpiredRecurrenceEvents(ctx, now, pageable)
	case state == StateExpired:
		return s.repository.findAllExpiredOneTimeEvents(ctx, now, pageable)
	case recurring:
		return s.repository.findAllActiveRecurrenceEvents(ctx, now, pageable)
	default:
		return s.repository.findAllActiveOneTimeEvents(ctx, now, pageable)
	}
}

// FindByOrganisationAndState returns the active, expired or upcoming events of a publicly visible organisation.
func (s Service) FindByOrganisationAndState(ctx context.Context, organisationId uint, state string) ([]model.Event, error) {
	if err := s.requireLegalOrganisation(ctx, organisationId); err != nil {
		return nil, err
	}

	now := s.now()
	switch state {
	case StateActive:
		return s.repository.findAllActiveEvents(ctx, organisationId, now)
	case StateExpired:
		return s.repository.findAllExpiredEvents(ctx, organisationId, now)
	case StateUpcoming:
		return s.repository.findAllUpcomingEvents(ctx, organisationId, now)
	default:
		return nil, errdef.NewBadRequest("unknown event state %q", state)
	}
}

// FindByOrganisationAndType returns the one-time or recurring events of a publicly visible organisation.
func (s Service) FindByOrganisationAndType(ctx context.Context, organisationId uint, eventType string) ([]model.Event, error) {
	if err := s.requireLegalOrganisation(ctx, organisationId); err != nil {
		return nil, err
	}

	switch eventType {
	case TypeOneTime:
		return s.repository.findAllOneTimeEventsByOrganisationId(ctx, organisationId)
	case TypeRecurring:
		return s.repository.findAllRecurrenceEventsByOrganisationId(ctx, organisationId)
	default:
		return nil, errdef.NewBadRequest("unknown event type %q", eventType)
	}
}

func (s Service) requireLegalOrganisation(ctx context.Context, organisationId uint) error {
	ok, err := s.repository.isLegalOrganisation(ctx, organisationId)
	if err != nil {
		return err
	}
	if !ok {
		return errdef.NewNotFound("%s", message.Get("organisation.notFound"))
	}
	return nil
}

// FindMine returns the events of the organisation owned by user.
func (s Service) FindMine(ctx context.Context, user *model.User) ([]model.Event, error) {
	return s.repository.findAllEventsForOrganisationByUserId(ctx, user.ID)
}

// FindMineById returns the event if it belongs to the organisation owned by user.
func (s Service) FindMineById(ctx context.Context, user *model.User, id uint) (*model.Event, error) {
	return s.repository.findEventByIdAndUserId(ctx, user.ID, id)
}

// Create publishes a new event for the organisation owned by user.
func (s Service) Create(ctx context.Context, user *model.User, request EventRequest) (*model.Event, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	organisationId, err := s.repository.findOrganisationIdByUserId(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	event := &model.Event{OrganisationID: organisationId}
	request.applyTo(event)

	if err := s.repository.create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update replaces the details of an event owned by user.
func (s Service) Update(ctx context.Context, user *model.User, id uint, request EventRequest) (*model.Event, error) {
	if err := request.validate(); err != nil {
		return nil, err
	}

	event, err := s.repository.findEventByIdAndUserId(ctx, user.ID, id)
	if err != nil {
		return nil, err
	}

	request.applyTo(event)

	if err := s.repository.save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Delete removes an event owned by user.
func (s Service) Delete(ctx context.Context, user *model.User, id uint) (string, error) {
	event, err := s.repository.findEventByIdAndUserId(ctx, user.ID, id)
	if err != nil {
		return "", err
	}

	if err := s.repository.delete(ctx, event.ID); err != nil {
		return "", err
	}
	return message.Get("event.deleted"), nil
}
