package util

import (
	"net/http"

	"github.com/eventforge/eventforge/pkg/token"
	"github.com/gin-gonic/gin"
)

// SetCookies stores the tokens as http only cookies. The refresh token cookie is scoped to the refresh endpoint.
func SetCookies(c *gin.Context, tokens *token.Tokens, sameSiteMode http.SameSite, hostname string, accessTokenExpirationSeconds int, refreshTokenExpirationSeconds int) {
	c.SetSameSite(sameSiteMode)
	c.SetCookie("accessToken", tokens.AccessToken, accessTokenExpirationSeconds, "/", hostname, true, true)
	c.SetCookie("refreshToken", tokens.RefreshToken, refreshTokenExpirationSeconds, "/refresh", hostname, true, true)
}

// ClearCookies expires the cookies set by SetCookies.
func ClearCookies(c *gin.Context, sameSiteMode http.SameSite, hostname string) {
	c.SetSameSite(sameSiteMode)
	c.SetCookie("accessToken", "", -1, "/", hostname, true, true)
	c.SetCookie("refreshToken", "", -1, "/refresh", hostname, true, true)
}
