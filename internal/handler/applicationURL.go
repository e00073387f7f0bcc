package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ApplicationURL returns the URL the request was sent to up to basePath, e.g. "https://api.example.org/v1". It
// honours the X-Forwarded-Proto and X-Forwarded-Host headers set by a reverse proxy.
func ApplicationURL(c *gin.Context, basePath string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	host := c.Request.Host
	if forwardedHost := c.GetHeader("X-Forwarded-Host"); forwardedHost != "" {
		host = forwardedHost
	}

	return scheme + "://" + host + strings.TrimSuffix(basePath, "/")
}
