package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/eventforge/eventforge/pkg/token/helper"
	"github.com/gin-gonic/gin"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const accessTokenCookie = "accessToken"

func NewAuthentication(publicKey *rsa.PublicKey, signInService signInService) AuthenticationMiddleware {
	return AuthenticationMiddleware{
		publicKey:     publicKey,
		signInService: signInService,
	}
}

type signInService interface {
	SignIn(ctx context.Context, email string, password string) (*model.User, error)
}

// AuthenticationMiddleware identifies the caller either by email and password, only used to issue tokens, or by an
// access token on every other protected route.
type AuthenticationMiddleware struct {
	publicKey     *rsa.PublicKey
	signInService signInService
}

func (m AuthenticationMiddleware) BasicAuthentication(c *gin.Context) {
	email, password, ok := c.Request.BasicAuth()
	if !ok {
		_ = c.AbortWithError(http.StatusUnauthorized, errors.New("invalid Authorization header format"))
		return
	}

	user, err := m.signInService.SignIn(c.Request.Context(), email, password)
	if err != nil {
		_ = c.Error(err)
		c.Abort()
		return
	}

	setUser(c, user)
	c.Next()
}

// TokenAuthentication accepts an RS256 signed access token from the Authorization header or the accessToken
// cookie. The user is taken from the token claims without a database lookup.
func (m AuthenticationMiddleware) TokenAuthentication(c *gin.Context) {
	token, err := jwt.ParseRequest(c.Request,
		jwt.WithKey(jwa.RS256, m.publicKey),
		jwt.WithHeaderKey("Authorization"),
		jwt.WithCookieKey(accessTokenCookie),
	)
	if err != nil {
		_ = c.Error(errdef.NewUnauthorized("token not valid: %v", err))
		c.Abort()
		return
	}

	user, err := helper.UserFromClaims(token)
	if err != nil {
		_ = c.Error(errdef.NewUnauthorized("token not valid: %v", err))
		c.Abort()
		return
	}

	setUser(c, user)
	c.Next()
}

// setUser stores the user in the gin context for handlers and in the request context for the log handler.
func setUser(c *gin.Context, user *model.User) {
	c.Set("user", user)
	c.Request = c.Request.WithContext(model.NewContextWithUser(c.Request.Context(), user))
}
