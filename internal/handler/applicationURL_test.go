package handler

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestApplicationURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Plain", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "http://localhost:8080/register", nil)

		assert.Equal(t, "http://localhost:8080", ApplicationURL(c, ""))
	})

	t.Run("TLSWithBasePath", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "https://api.example.org/v1/register", nil)
		c.Request.TLS = &tls.ConnectionState{}

		assert.Equal(t, "https://api.example.org/v1", ApplicationURL(c, "/v1/"))
	})

	t.Run("ForwardedHeaders", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "http://backend:8080/register", nil)
		c.Request.Header.Set("X-Forwarded-Proto", "https")
		c.Request.Header.Set("X-Forwarded-Host", "events.example.org")

		assert.Equal(t, "https://events.example.org/api", ApplicationURL(c, "/api"))
	})
}
