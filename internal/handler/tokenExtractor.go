package handler

import (
	"strings"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/gin-gonic/gin"
)

const bearerPrefix = "bearer "

// GetTokenFromHttpAuthHeader returns the bearer token of the Authorization header or, if there is none, the value
// of the accessToken cookie.
func GetTokenFromHttpAuthHeader(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return header[len(bearerPrefix):], nil
	}

	if token, err := c.Cookie("accessToken"); err == nil && token != "" {
		return token, nil
	}

	return "", errdef.NewUnauthorized("no bearer token in Authorization header or accessToken cookie")
}
