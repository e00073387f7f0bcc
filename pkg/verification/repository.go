package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db: db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) save(ctx context.Context, token *model.VerificationToken) error {
	err := r.db.WithContext(ctx).Save(token).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("verification token already exists")
	}
	return err
}

func (r repository) findByToken(ctx context.Context, token string) (*model.VerificationToken, error) {
	var t *model.VerificationToken
	err := r.db.
		WithContext(ctx).
		Preload("User").
		Where("token = ?", token).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find verification token")
	}
	return t, err
}

func (r repository) findByUserId(ctx context.Context, userId uint) (*model.VerificationToken, error) {
	var t *model.VerificationToken
	err := r.db.
		WithContext(ctx).
		Where("user_id = ?", userId).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("failed to find verification token for user %d", userId)
	}
	return t, err
}

func (r repository) delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx).Delete(&model.VerificationToken{}, id)
	if db.Error != nil {
		return fmt.Errorf("failed to delete verification token with id %d: %v", id, db.Error)
	} else if db.RowsAffected < 1 {
		return errdef.NewNotFound("failed to find verification token with id %d", id)
	}
	return nil
}

func (r repository) deleteExpired(ctx context.Context, now time.Time) (int64, error) {
	db := r.db.
		WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.VerificationToken{})
	if db.Error != nil {
		return 0, fmt.Errorf("failed to delete expired verification tokens: %v", db.Error)
	}
	return db.RowsAffected, nil
}
