package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/message"
	"github.com/eventforge/eventforge/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

type scope = func(*gorm.DB) *gorm.DB

func withOwner(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN organisations ON organisations.id = events.organisation_id").
		Joins("JOIN users ON users.id = organisations.user_id")
}

// legal restricts events to those published by organisations whose user is neither locked nor waiting for approval.
func legal(db *gorm.DB) *gorm.DB {
	return withOwner(db).Where("users.is_non_locked = ? AND users.is_approved_by_admin = ?", true, true)
}

func ofOrganisation(organisationId uint) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("events.organisation_id = ?", organisationId)
	}
}

func oneTime(isOneTime bool) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("events.is_one_time = ?", isOneTime)
	}
}

func unexpired(now time.Time) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("events.ends_at >= ?", now)
	}
}

func expired(now time.Time) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("events.ends_at < ?", now)
	}
}

func (r repository) find(ctx context.Context, order string, scopes ...scope) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		WithContext(ctx).
		Scopes(scopes...).
		Order(order).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find events: %v", err)
	}
	return events, nil
}

func (r repository) findPage(ctx context.Context, pageable model.Pageable, scopes ...scope) (model.Page[model.Event], error) {
	pageable = pageable.Normalize()

	var total int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Event{}).
		Scopes(scopes...).
		Count(&total).Error
	if err != nil {
		return model.Page[model.Event]{}, fmt.Errorf("failed to count events: %v", err)
	}

	var events []model.Event
	err = r.db.
		WithContext(ctx).
		Preload("Organisation").
		Scopes(scopes...).
		Order(pageable.OrderBy()).
		Offset(pageable.Offset()).
		Limit(pageable.Size).
		Find(&events).Error
	if err != nil {
		return model.Page[model.Event]{}, fmt.Errorf("failed to find events: %v", err)
	}

	return model.NewPage(events, pageable, total), nil
}

func (r repository) first(ctx context.Context, id uint, scopes ...scope) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		WithContext(ctx).
		Preload("Organisation").
		Scopes(scopes...).
		Where("events.id = ?", id).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("%s", message.Get("event.notFound", id))
	}
	return event, err
}

func (r repository) findAllExpiredEvents(ctx context.Context, organisationId uint, now time.Time) ([]model.Event, error) {
	return r.find(ctx, "events.starts_at asc", ofOrganisation(organisationId), expired(now))
}

func (r repository) findAllActiveEvents(ctx context.Context, organisationId uint, now time.Time) ([]model.Event, error) {
	active := func(db *gorm.DB) *gorm.DB {
		return db.Where("events.starts_at < ? AND events.ends_at >= ?", now, now)
	}
	return r.find(ctx, "events.starts_at asc", ofOrganisation(organisationId), active)
}

func (r repository) findAllUpcomingEvents(ctx context.Context, organisationId uint, now time.Time) ([]model.Event, error) {
	upcoming := func(db *gorm.DB) *gorm.DB {
		return db.Where("events.starts_at > ?", now)
	}
	return r.find(ctx, "events.starts_at asc", ofOrganisation(organisationId), upcoming)
}

func (r repository) findThreeUpcomingEvents(ctx context.Context, now time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		WithContext(ctx).
		Preload("Organisation").
		Scopes(legal).
		Where("events.starts_at > ?", now).
		Order("events.starts_at asc").
		Limit(3).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming events: %v", err)
	}
	return events, nil
}

func (r repository) findEventByIdWithCondition(ctx context.Context, eventId uint) (*model.Event, error) {
	return r.first(ctx, eventId, legal)
}

func (r repository) findAllOneTimeEventsByOrganisationId(ctx context.Context, organisationId uint) ([]model.Event, error) {
	return r.find(ctx, "events.created_at asc", oneTime(true), legal, ofOrganisation(organisationId))
}

func (r repository) findAllRecurrenceEventsByOrganisationId(ctx context.Context, organisationId uint) ([]model.Event, error) {
	return r.find(ctx, "events.created_at asc", oneTime(false), legal, ofOrganisation(organisationId))
}

func (r repository) findAllActiveOneTimeEvents(ctx context.Context, now time.Time, pageable model.Pageable) (model.Page[model.Event], error) {
	return r.findPage(ctx, pageable, oneTime(true), legal, unexpired(now))
}

func (r repository) findAllActiveRecurrenceEvents(ctx context.Context, now time.Time, pageable model.Pageable) (model.Page[model.Event], error) {
	return r.findPage(ctx, pageable, oneTime(false), legal, unexpired(now))
}

func (r repository) findAllExpiredOneTimeEvents(ctx context.Context, now time.Time, pageable model.Pageable) (model.Page[model.Event], error) {
	return r.findPage(ctx, pageable, oneTime(true), legal, expired(now))
}

func (r repository) findAllExpiredRecurrenceEvents(ctx context.Context, now time.Time, pageable model.Pageable) (model.Page[model.Event], error) {
	return r.findPage(ctx, pageable, oneTime(false), legal, expired(now))
}

func (r repository) findAllEventsForOrganisationByUserId(ctx context.Context, userId uint) ([]model.Event, error) {
	owned := func(db *gorm.DB) *gorm.DB {
		return withOwner(db).Where("organisations.user_id = ? AND users.is_non_locked = ?", userId, true)
	}
	return r.find(ctx, "events.starts_at asc", owned)
}

func (r repository) findEventByIdAndUserId(ctx context.Context, userId uint, eventId uint) (*model.Event, error) {
	owned := func(db *gorm.DB) *gorm.DB {
		return withOwner(db).Where("organisations.user_id = ?", userId)
	}
	return r.first(ctx, eventId, owned)
}

// isLegalOrganisation reports whether the organisation exists and its content is publicly visible.
func (r repository) isLegalOrganisation(ctx context.Context, organisationId uint) (bool, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Organisation{}).
		Joins("JOIN users ON users.id = organisations.user_id").
		Where("organisations.id = ? AND users.is_non_locked = ? AND users.is_approved_by_admin = ?", organisationId, true, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up organisation %d: %v", organisationId, err)
	}
	return count > 0, nil
}

func (r repository) findOrganisationIdByUserId(ctx context.Context, userId uint) (uint, error) {
	var organisation model.Organisation
	err := r.db.
		WithContext(ctx).
		Select("id").
		Where("user_id = ?", userId).
		First(&organisation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errdef.NewNotFound("%s", message.Get("organisation.notFound"))
	}
	return organisation.ID, err
}

func (r repository) create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r repository) save(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(event).Error
}

func (r repository) delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Event{}, id).Error
}
