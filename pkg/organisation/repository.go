package organisation

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/message"
	"github.com/eventforge/eventforge/pkg/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db: db}
}

type repository struct {
	db *gorm.DB
}

// legal restricts the query to organisations whose user is neither locked nor waiting for approval.
func legal(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN users ON users.id = organisations.user_id").
		Where("users.is_non_locked = ? AND users.is_approved_by_admin = ?", true, true)
}

func (r repository) findById(ctx context.Context, id uint) (*model.Organisation, error) {
	var organisation *model.Organisation
	err := r.db.
		WithContext(ctx).
		Scopes(legal).
		Where("organisations.id = ?", id).
		First(&organisation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("%s", message.Get("organisation.notFound"))
	}
	return organisation, err
}

func (r repository) findAll(ctx context.Context) ([]model.Organisation, error) {
	var organisations []model.Organisation
	err := r.db.
		WithContext(ctx).
		Scopes(legal).
		Order("organisations.name").
		Find(&organisations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find organisations: %v", err)
	}
	return organisations, nil
}

func (r repository) findByUserId(ctx context.Context, userId uint) (*model.Organisation, error) {
	var organisation *model.Organisation
	err := r.db.
		WithContext(ctx).
		Where("user_id = ?", userId).
		First(&organisation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("%s", message.Get("organisation.notFound"))
	}
	return organisation, err
}

func (r repository) save(ctx context.Context, organisation *model.Organisation) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(organisation).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("%s", message.Get("user.organisationNameTaken", organisation.Name))
	}
	return err
}
