package handler

import (
	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/gin-gonic/gin"
)

// GetUserFromContext returns the user the authentication middleware stored. Routes registered without the
// middleware get an unauthorized error.
func GetUserFromContext(c *gin.Context) (*model.User, error) {
	value, exists := c.Get("user")
	if !exists {
		return nil, errdef.NewUnauthorized("user not found on context")
	}

	user, ok := value.(*model.User)
	if !ok || user == nil {
		return nil, errdef.NewUnauthorized("unexpected user of type %T on context", value)
	}
	return user, nil
}
