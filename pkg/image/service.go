// Package image stores uploaded pictures like organisation logos and event covers.
package image

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/message"
	"github.com/eventforge/eventforge/pkg/model"
)

const MaxSizeInMB = 10

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository imageRepository, store store, publicURL string) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
		store:      store,
		publicURL:  strings.TrimSuffix(publicURL, "/"),
	}
}

type imageRepository interface {
	existsByName(ctx context.Context, name string) (bool, error)
	findByName(ctx context.Context, name string) (*model.Image, error)
	create(ctx context.Context, image *model.Image) error
	delete(ctx context.Context, id uint) error
}

// store is implemented by the file system, S3 and MinIO backends.
type store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Write(ctx context.Context, key string, body io.Reader, contentType string) error
	Read(ctx context.Context, key string, dst io.Writer) error
	Delete(ctx context.Context, key string) error
}

type Service struct {
	logger     *slog.Logger
	repository imageRepository
	store      store
	publicURL  string
}

// Upload stores the image and records it under name for user. Names are unique across the records and the
// files already in the store.
func (s Service) Upload(ctx context.Context, user *model.User, name string, kind string, body io.Reader, size int64) (*model.Image, error) {
	if size > MaxSizeInMB<<20 {
		return nil, errdef.NewBadRequest("%s", message.Get("image.tooLarge", MaxSizeInMB))
	}

	exists, err := s.repository.existsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		exists, err = s.store.Exists(ctx, name)
		if err != nil {
			return nil, err
		}
	}
	if exists {
		return nil, errdef.NewConflict("%s", message.Get("image.exists"))
	}

	contentType, err := DetermineMediaType(GetFileExtension(name))
	if err != nil {
		return nil, err
	}

	err = s.store.Write(ctx, name, body, contentType)
	if errdef.IsConflict(err) {
		return nil, errdef.NewConflict("%s", message.Get("image.exists"))
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to store image", "name", name, "error", err)
		return nil, errdef.NewConflict("%s", message.Get("image.saveFailed"))
	}

	image := &model.Image{
		Name:        name,
		URL:         s.publicURL + "/" + name,
		ContentType: contentType,
		Kind:        kind,
		UserID:      user.ID,
	}
	if err := s.repository.create(ctx, image); err != nil {
		if err := s.store.Delete(ctx, name); err != nil {
			s.logger.ErrorContext(ctx, "Failed to remove orphaned image", "name", name, "error", err)
		}
		return nil, err
	}

	return image, nil
}

func (s Service) FindByName(ctx context.Context, name string) (*model.Image, error) {
	return s.repository.findByName(ctx, name)
}

// Download writes the content of the named image to dst.
func (s Service) Download(ctx context.Context, name string, dst io.Writer) error {
	return s.store.Read(ctx, name, dst)
}

// Delete removes the stored file and its record. Only the uploader or an administrator may delete an image.
func (s Service) Delete(ctx context.Context, user *model.User, name string) (string, error) {
	image, err := s.repository.findByName(ctx, name)
	if err != nil {
		return "", err
	}

	if !user.IsAdministrator() && image.UserID != user.ID {
		return "", errdef.NewForbidden("%s", message.Get("image.forbidden"))
	}

	err = s.store.Delete(ctx, name)
	if err != nil && !errdef.IsNotFound(err) {
		return "", err
	}

	if err := s.repository.delete(ctx, image.ID); err != nil {
		return "", err
	}
	return message.Get("image.deleted"), nil
}

// GetFileExtension returns what follows the last dot of name, or "" if there is none.
func GetFileExtension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return name[i+1:]
}

// DetermineMediaType maps a file extension to the content type the image is served with. An empty extension has
// no content type.
func DetermineMediaType(extension string) (string, error) {
	switch strings.ToLower(extension) {
	case "":
		return "", nil
	case "jpg", "jpeg":
		return "image/jpeg", nil
	case "png":
		return "image/png", nil
	default:
		return "", errdef.NewBadRequest("%s", message.Get("image.unsupportedType", extension))
	}
}
