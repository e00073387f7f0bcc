package middleware

import (
	"fmt"
	"net/http"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/gin-gonic/gin"
)

// statuses maps error kinds to response statuses. The first match wins.
var statuses = []struct {
	is     func(error) bool
	status int
}{
	{errdef.IsBadRequest, http.StatusBadRequest},
	{errdef.IsInvalidPassword, http.StatusBadRequest},
	{errdef.IsInvalidLink, http.StatusBadRequest},
	{errdef.IsUnauthorized, http.StatusUnauthorized},
	{errdef.IsForbidden, http.StatusForbidden},
	{errdef.IsNotFound, http.StatusNotFound},
	{errdef.IsDuplicated, http.StatusConflict},
	{errdef.IsConflict, http.StatusConflict},
	{errdef.IsUnsupportedMediaType, http.StatusUnsupportedMediaType},
}

// ErrorHandler writes the last error added by a handler as a plain text response. Errors of a known kind are
// returned as is, anything else becomes a 500 whose body only reveals the correlation id.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil || c.Writer.Written() {
			return
		}
		// the handler chose the status itself
		if c.Writer.Status() != http.StatusOK {
			_, _ = c.Writer.WriteString(err.Error())
			return
		}

		for _, s := range statuses {
			if s.is(err) {
				c.String(s.status, err.Error())
				return
			}
		}

		id, _ := GetCorrelationID(c.Request.Context())
		c.String(http.StatusInternalServerError, fmt.Sprintf("something went wrong. We'll look into it if you send us the id %q :)", id))
	}
}
