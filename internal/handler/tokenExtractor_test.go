package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTokenFromHttpAuthHeader(t *testing.T) {
	t.Run("Header", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer abc")
		c.Request = req

		token, err := GetTokenFromHttpAuthHeader(c)
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
	})

	t.Run("LowercaseScheme", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "bearer abc")
		c.Request = req

		token, err := GetTokenFromHttpAuthHeader(c)
		require.NoError(t, err)
		assert.Equal(t, "abc", token)
	})

	t.Run("Cookie", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: "def"})
		c.Request = req

		token, err := GetTokenFromHttpAuthHeader(c)
		require.NoError(t, err)
		assert.Equal(t, "def", token)
	})

	t.Run("Missing", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		c.Request = req

		_, err = GetTokenFromHttpAuthHeader(c)
		assert.True(t, errdef.IsUnauthorized(err))
	})
}
