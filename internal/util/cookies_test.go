package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eventforge/eventforge/pkg/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCookies(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SetCookies(c, &token.Tokens{AccessToken: "access", RefreshToken: "refresh"}, http.SameSiteStrictMode, "example.com", 60, 120)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)

	assert.Equal(t, "accessToken", cookies[0].Name)
	assert.Equal(t, "access", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
	assert.Equal(t, 60, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)

	assert.Equal(t, "refreshToken", cookies[1].Name)
	assert.Equal(t, "refresh", cookies[1].Value)
	assert.Equal(t, "/refresh", cookies[1].Path)
	assert.Equal(t, 120, cookies[1].MaxAge)
}

func TestClearCookies(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ClearCookies(c, http.SameSiteLaxMode, "example.com")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, cookie := range cookies {
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}
