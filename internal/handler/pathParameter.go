package handler

import (
	"strconv"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/gin-gonic/gin"
)

// GetPathParameter parses the named path parameter as a database id. On failure a BadRequest is attached to the
// context, the chain is aborted and false is returned.
func GetPathParameter(c *gin.Context, parameter string) (uint, bool) {
	value := c.Param(parameter)
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		_ = c.Error(errdef.NewBadRequest("invalid %s %q", parameter, value))
		c.Abort()
		return 0, false
	}
	return uint(id), true
}
