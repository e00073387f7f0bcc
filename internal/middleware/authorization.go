package middleware

import (
	"context"
	"log/slog"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/internal/handler"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewAuthorization(logger *slog.Logger, userService userService) AuthorizationMiddleware {
	return AuthorizationMiddleware{
		logger:      logger,
		userService: userService,
	}
}

type AuthorizationMiddleware struct {
	logger      *slog.Logger
	userService userService
}

type userService interface {
	FindById(ctx context.Context, id uint) (*model.User, error)
}

// RequireAdministrator only lets users through that currently hold the administrator role. The role is read from
// the database since the token could have been issued before a change.
func (m AuthorizationMiddleware) RequireAdministrator(c *gin.Context) {
	user, ok := m.currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdministrator() {
		m.logger.WarnContext(c.Request.Context(), "User tried to access administrator restricted endpoint")
		_ = c.Error(errdef.NewForbidden("administrator access denied"))
		c.Abort()
		return
	}

	c.Next()
}

// RequireOrganisation only lets organisation users through whose account is not locked.
func (m AuthorizationMiddleware) RequireOrganisation(c *gin.Context) {
	user, ok := m.currentUser(c)
	if !ok {
		return
	}

	if !user.IsOrganisation() || !user.IsNonLocked {
		_ = c.Error(errdef.NewForbidden("organisation access denied"))
		c.Abort()
		return
	}

	c.Next()
}

// RequireOrganisationOrAdministrator lets administrators and unlocked organisation users through.
func (m AuthorizationMiddleware) RequireOrganisationOrAdministrator(c *gin.Context) {
	user, ok := m.currentUser(c)
	if !ok {
		return
	}

	if !user.IsAdministrator() && (!user.IsOrganisation() || !user.IsNonLocked) {
		_ = c.Error(errdef.NewForbidden("organisation or administrator access denied"))
		c.Abort()
		return
	}

	c.Next()
}

func (m AuthorizationMiddleware) currentUser(c *gin.Context) (*model.User, bool) {
	u, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return nil, false
	}

	user, err := m.userService.FindById(c.Request.Context(), u.ID)
	if err != nil {
		if errdef.IsNotFound(err) {
			_ = c.Error(errdef.NewUnauthorized("user %d no longer exists", u.ID))
		} else {
			_ = c.Error(err)
		}
		c.Abort()
		return nil, false
	}

	setUser(c, user)
	return user, true
}
