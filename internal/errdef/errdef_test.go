package errdef_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	kinds := map[string]struct {
		new func(format string, a ...any) error
		is  func(error) bool
	}{
		"BadRequest":           {errdef.NewBadRequest, errdef.IsBadRequest},
		"Unauthorized":         {errdef.NewUnauthorized, errdef.IsUnauthorized},
		"Forbidden":            {errdef.NewForbidden, errdef.IsForbidden},
		"NotFound":             {errdef.NewNotFound, errdef.IsNotFound},
		"Duplicated":           {errdef.NewDuplicated, errdef.IsDuplicated},
		"Conflict":             {errdef.NewConflict, errdef.IsConflict},
		"UnsupportedMediaType": {errdef.NewUnsupportedMediaType, errdef.IsUnsupportedMediaType},
		"InvalidPassword":      {errdef.NewInvalidPassword, errdef.IsInvalidPassword},
		"InvalidLink":          {errdef.NewInvalidLink, errdef.IsInvalidLink},
	}
	for name, k := range kinds {
		t.Run(name, func(t *testing.T) {
			err := k.new("event %d not found", 7)

			assert.Equal(t, "event 7 not found", err.Error())
			assert.True(t, k.is(err))
			assert.False(t, k.is(errors.New("event 7 not found")))
			assert.False(t, k.is(nil))
			for other, o := range kinds {
				if other != name {
					assert.Falsef(t, o.is(err), "%s must not be %s", name, other)
				}
			}
		})
	}
}

func TestWrappedErrorKeepsKind(t *testing.T) {
	err := fmt.Errorf("upload failed: %w", errdef.NewConflict("file exists"))

	assert.True(t, errdef.IsConflict(err))
	assert.Equal(t, "upload failed: file exists", err.Error())
}

func TestNestedKinds(t *testing.T) {
	cause := errdef.NewNotFound("image %q not found", "logo.png")
	err := errdef.NewBadRequest("can't attach image: %w", cause)

	assert.True(t, errdef.IsBadRequest(err))
	assert.True(t, errdef.IsNotFound(err))
	assert.True(t, errors.Is(err, cause))
}
