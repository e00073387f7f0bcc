package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthorization(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := map[string]struct {
		user       *model.User
		findErr    error
		route      func(m AuthorizationMiddleware) gin.HandlerFunc
		wantStatus int
	}{
		"AdministratorAllowed": {
			user:       &model.User{ID: 1, Role: model.RoleAdministrator, IsNonLocked: true},
			route:      func(m AuthorizationMiddleware) gin.HandlerFunc { return m.RequireAdministrator },
			wantStatus: http.StatusOK,
		},
		"OrganisationDeniedAdministratorRoute": {
			user:       &model.User{ID: 1, Role: model.RoleOrganisation, IsNonLocked: true},
			route:      func(m AuthorizationMiddleware) gin.HandlerFunc { return m.RequireAdministrator },
			wantStatus: http.StatusForbidden,
		},
		"OrganisationAllowed": {
			user:       &model.User{ID: 1, Role: model.RoleOrganisation, IsNonLocked: true},
			route:      func(m AuthorizationMiddleware) gin.HandlerFunc { return m.RequireOrganisation },
			wantStatus: http.StatusOK,
		},
		"LockedOrganisationDenied": {
			user:       &model.User{ID: 1, Role: model.RoleOrganisation, IsNonLocked: false},
			route:      func(m AuthorizationMiddleware) gin.HandlerFunc { return m.RequireOrganisation },
			wantStatus: http.StatusForbidden,
		},
		"UploaderOrganisationAllowed": {
			user:       &model.User{ID: 1, Role: model.RoleOrganisation, IsNonLocked: true},
			route:      func(m AuthorizationMiddleware) gin.HandlerFunc { return m.RequireOrganisationOrAdministrator },
			wantStatus: http.StatusOK,
		},
		"UploaderAdministratorAllowed": {
			user:       &model.User{ID: 1, Role: model.RoleAdministrator, IsNonLocked: true},
			route:      func(m AuthorizationMiddleware) gin.HandlerFunc { return m.RequireOrganisationOrAdministrator },
			wantStatus: http.StatusOK,
		},
		"UploaderLockedOrganisationDenied": {
			user:       &model.User{ID: 1, Role: model.RoleOrganisation, IsNonLocked: false},
			route:      func(m AuthorizationMiddleware) gin.HandlerFunc { return m.RequireOrganisationOrAdministrator },
			wantStatus: http.StatusForbidden,
		},
		"DeletedUser": {
			findErr:    errdef.NewNotFound("user not found"),
			route:      func(m AuthorizationMiddleware) gin.HandlerFunc { return m.RequireOrganisation },
			wantStatus: http.StatusUnauthorized,
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			userService := &mockUserService{}
			userService.
				On("FindById", mock.Anything, uint(1)).
				Return(tt.user, tt.findErr)
			m := NewAuthorization(logger, userService)

			r := gin.New()
			r.Use(ErrorHandler())
			r.Use(func(c *gin.Context) {
				c.Set("user", &model.User{ID: 1})
			})
			r.GET("/", tt.route(m), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, err)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			userService.AssertExpectations(t)
		})
	}
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) FindById(ctx context.Context, id uint) (*model.User, error) {
	called := m.Called(ctx, id)
	user, ok := called.Get(0).(*model.User)
	if ok && user != nil {
		return user, nil
	}
	return nil, called.Error(1)
}
