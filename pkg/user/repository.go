package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventforge/eventforge/internal/errdef"
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

func (r repository) save(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("user %q already exists", user.Email)
	}
	return err
}

// create inserts the user together with its organisation, if any.
func (r repository) create(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("user %q already exists", user.Email)
	}
	return err
}

// delete removes the user. Its organisation and verification token are removed by the database.
func (r repository) delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&model.User{}, id).Error
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %v", id, err)
	}
	return nil
}

func (r repository) existsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up user with email %q: %v", email, err)
	}
	return count > 0, nil
}

func (r repository) existsOrganisationByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Organisation{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up organisation with name %q: %v", name, err)
	}
	return count > 0, nil
}

func (r repository) findAll(ctx context.Context) ([]*model.User, error) {
	var users []*model.User

	err := r.db.
		WithContext(ctx).
		Preload("Organisation").
		Order("email").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find all users: %v", err)
	}

	return users, nil
}

func (r repository) findByEmail(ctx context.Context, email string) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		Preload("Organisation").
		Where("email = ?", email).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with email %q", email)
	}
	return u, err
}

func (r repository) findById(ctx context.Context, id uint) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		Preload("Organisation").
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find user with id %d", id)
	}
	return u, err
}

// findOrCreate returns the user with the email of given user, creating it from given user if it doesn't exist.
func (r repository) findOrCreate(ctx context.Context, user *model.User) (*model.User, error) {
	var u *model.User
	err := r.db.
		WithContext(ctx).
		Where(model.User{Email: user.Email}).
		Attrs(model.User{
			Password:          user.Password,
			FullName:          user.FullName,
			Role:              user.Role,
			IsEnabled:         user.IsEnabled,
			IsNonLocked:       true,
			IsApprovedByAdmin: user.IsApprovedByAdmin,
		}).
		FirstOrCreate(&u).Error
	return u, err
}
