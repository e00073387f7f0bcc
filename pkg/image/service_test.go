package image

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/eventforge/eventforge/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	organisation  = &model.User{ID: 3, Role: model.RoleOrganisation}
	administrator = &model.User{ID: 1, Role: model.RoleAdministrator}
)

func newTestService(t *testing.T, store store) (*Service, *mockRepository) {
	t.Helper()
	if store == nil {
		fs, err := storage.NewFileSystem(t.TempDir())
		require.NoError(t, err)
		store = fs
	}
	repository := &mockRepository{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, repository, store, "http://localhost/images/"), repository
}

func TestService_Upload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("existsByName", "cover.jpg").Return(false, nil)
		repository.On("create", mock.AnythingOfType("*model.Image")).Return(nil)

		image, err := service.Upload(context.Background(), organisation, "cover.jpg", model.ImageKindCover, strings.NewReader("jpeg"), 4)

		require.NoError(t, err)
		assert.Equal(t, "cover.jpg", image.Name)
		assert.Equal(t, "http://localhost/images/cover.jpg", image.URL)
		assert.Equal(t, "image/jpeg", image.ContentType)
		assert.Equal(t, model.ImageKindCover, image.Kind)
		assert.Equal(t, organisation.ID, image.UserID)

		var buf bytes.Buffer
		require.NoError(t, service.Download(context.Background(), "cover.jpg", &buf))
		assert.Equal(t, "jpeg", buf.String())
		repository.AssertExpectations(t)
	})

	t.Run("NameExists", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("existsByName", "test.jpg").Return(true, nil)

		_, err := service.Upload(context.Background(), organisation, "test.jpg", "", strings.NewReader("test"), 4)

		require.Error(t, err)
		assert.True(t, errdef.IsConflict(err))
		assert.Equal(t, "Файл с това име вече съществува.", err.Error())
	})

	t.Run("FileExistsWithoutRecord", func(t *testing.T) {
		fs, err := storage.NewFileSystem(t.TempDir())
		require.NoError(t, err)
		require.NoError(t, fs.Write(context.Background(), "stray.png", strings.NewReader("old"), "image/png"))
		service, repository := newTestService(t, fs)
		repository.On("existsByName", "stray.png").Return(false, nil)

		_, err = service.Upload(context.Background(), organisation, "stray.png", "", strings.NewReader("new"), 3)

		require.Error(t, err)
		assert.True(t, errdef.IsConflict(err))
		repository.AssertNotCalled(t, "create", mock.Anything)
		var buf bytes.Buffer
		require.NoError(t, fs.Read(context.Background(), "stray.png", &buf))
		assert.Equal(t, "old", buf.String())
	})

	t.Run("WriteFailed", func(t *testing.T) {
		service, repository := newTestService(t, failingStore{})
		repository.On("existsByName", "test.jpg").Return(false, nil)

		_, err := service.Upload(context.Background(), organisation, "test.jpg", "", strings.NewReader("test"), 4)

		require.Error(t, err)
		assert.True(t, errdef.IsConflict(err))
		assert.Equal(t, "Грешка със запазването на файла.", err.Error())
		repository.AssertNotCalled(t, "create", mock.Anything)
	})

	t.Run("UnsupportedType", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("existsByName", "animation.gif").Return(false, nil)

		_, err := service.Upload(context.Background(), organisation, "animation.gif", "", strings.NewReader("gif"), 3)

		require.Error(t, err)
		assert.True(t, errdef.IsBadRequest(err))
	})

	t.Run("TooLarge", func(t *testing.T) {
		service, _ := newTestService(t, nil)

		_, err := service.Upload(context.Background(), organisation, "huge.png", "", strings.NewReader(""), MaxSizeInMB<<20+1)

		require.Error(t, err)
		assert.True(t, errdef.IsBadRequest(err))
	})

	t.Run("RecordFailedRemovesFile", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("existsByName", "logo.png").Return(false, nil)
		repository.On("create", mock.AnythingOfType("*model.Image")).Return(errors.New("database is down"))

		_, err := service.Upload(context.Background(), organisation, "logo.png", model.ImageKindLogo, strings.NewReader("png"), 3)
		require.Error(t, err)

		err = service.Download(context.Background(), "logo.png", io.Discard)
		assert.True(t, errdef.IsNotFound(err))
	})
}

func TestService_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("existsByName", "test.png").Return(false, nil)
		repository.On("create", mock.AnythingOfType("*model.Image")).Return(nil)
		_, err := service.Upload(context.Background(), organisation, "test.png", "", strings.NewReader("png"), 3)
		require.NoError(t, err)
		repository.On("findByName", "test.png").Return(&model.Image{ID: 4, Name: "test.png", UserID: organisation.ID}, nil)
		repository.On("delete", uint(4)).Return(nil)

		msg, err := service.Delete(context.Background(), organisation, "test.png")

		require.NoError(t, err)
		assert.Equal(t, "Файлът беше изтрит успешно.", msg)
		assert.True(t, errdef.IsNotFound(service.Download(context.Background(), "test.png", io.Discard)))
		repository.AssertExpectations(t)
	})

	t.Run("FileAlreadyGone", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("findByName", "test").Return(&model.Image{ID: 4, Name: "test", UserID: organisation.ID}, nil)
		repository.On("delete", uint(4)).Return(nil)

		_, err := service.Delete(context.Background(), organisation, "test")

		require.NoError(t, err)
		repository.AssertExpectations(t)
	})

	t.Run("OtherOrganisationsImage", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("findByName", "test").Return(&model.Image{ID: 4, Name: "test", UserID: 99}, nil)

		_, err := service.Delete(context.Background(), organisation, "test")

		require.Error(t, err)
		assert.True(t, errdef.IsForbidden(err))
		assert.Equal(t, "Нямате право да изтриете този файл.", err.Error())
		repository.AssertNotCalled(t, "delete", mock.Anything)
	})

	t.Run("AdministratorDeletesAnyImage", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("findByName", "test").Return(&model.Image{ID: 4, Name: "test", UserID: 99}, nil)
		repository.On("delete", uint(4)).Return(nil)

		_, err := service.Delete(context.Background(), administrator, "test")

		require.NoError(t, err)
		repository.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		service, repository := newTestService(t, nil)
		repository.On("findByName", "test").Return(nil, errdef.NewNotFound("not found"))

		_, err := service.Delete(context.Background(), organisation, "test")

		assert.True(t, errdef.IsNotFound(err))
		repository.AssertNotCalled(t, "delete", mock.Anything)
	})
}

func TestGetFileExtension(t *testing.T) {
	tests := map[string]string{
		"image.jpg":      "jpg",
		"image.png":      "png",
		"image.jpeg":     "jpeg",
		"archive.tar.gz": "gz",
		"image":          "",
		"":               "",
	}
	for name, expected := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, expected, GetFileExtension(name))
		})
	}
}

func TestDetermineMediaType(t *testing.T) {
	tests := map[string]string{
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"JPG":  "image/jpeg",
		"png":  "image/png",
		"":     "",
	}
	for extension, expected := range tests {
		t.Run(extension, func(t *testing.T) {
			mediaType, err := DetermineMediaType(extension)

			require.NoError(t, err)
			assert.Equal(t, expected, mediaType)
		})
	}

	t.Run("Unsupported", func(t *testing.T) {
		_, err := DetermineMediaType("gif")

		require.Error(t, err)
		assert.True(t, errdef.IsBadRequest(err))
	})
}

type failingStore struct{}

func (failingStore) Exists(context.Context, string) (bool, error) {
	return false, nil
}

func (failingStore) Write(context.Context, string, io.Reader, string) error {
	return errors.New("disk full")
}

func (failingStore) Read(context.Context, string, io.Writer) error {
	return errors.New("disk gone")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("disk gone")
}

type mockRepository struct{ mock.Mock }

func (m *mockRepository) existsByName(_ context.Context, name string) (bool, error) {
	called := m.Called(name)
	return called.Bool(0), called.Error(1)
}

func (m *mockRepository) findByName(_ context.Context, name string) (*model.Image, error) {
	called := m.Called(name)
	image, _ := called.Get(0).(*model.Image)
	return image, called.Error(1)
}

func (m *mockRepository) create(_ context.Context, image *model.Image) error {
	return m.Called(image).Error(0)
}

func (m *mockRepository) delete(_ context.Context, id uint) error {
	return m.Called(id).Error(0)
}
