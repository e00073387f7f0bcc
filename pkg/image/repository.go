package image

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/message"
	"github.com/eventforge/eventforge/pkg/model"
	"gorm.io/gorm"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) existsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Image{}).
		Where("name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to look up image %q: %v", name, err)
	}
	return count > 0, nil
}

func (r repository) findByName(ctx context.Context, name string) (*model.Image, error) {
	var image *model.Image
	err := r.db.
		WithContext(ctx).
		Where("name = ?", name).
		First(&image).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("%s", message.Get("image.notFound", name))
	}
	return image, err
}

func (r repository) create(ctx context.Context, image *model.Image) error {
	err := r.db.WithContext(ctx).Create(image).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewConflict("%s", message.Get("image.exists"))
	}
	return err
}

func (r repository) delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Image{}, id).Error
}
