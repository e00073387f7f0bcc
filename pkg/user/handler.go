package user

import (
	"context"
	"net/http"

	"github.com/eventforge/eventforge/internal/errdef"
	"github.com/eventforge/eventforge/internal/handler"
	"github.com/eventforge/eventforge/internal/util"
	"github.com/eventforge/eventforge/pkg/config"
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/eventforge/eventforge/pkg/token"
	"github.com/gin-gonic/gin"
)

func NewHandler(config config.Config, userService userService, tokenService handlerTokenService) Handler {
	return Handler{
		basePath:                      config.BasePath,
		hostname:                      config.Hostname,
		sameSiteMode:                  config.SameSite,
		accessTokenExpirationSeconds:  config.Authentication.AccessTokenExpirationSeconds,
		refreshTokenExpirationSeconds: config.Authentication.RefreshTokenExpirationSeconds,
		userService:                   userService,
		tokenService:                  tokenService,
	}
}

type Handler struct {
	basePath                      string
	hostname                      string
	sameSiteMode                  http.SameSite
	accessTokenExpirationSeconds  int
	refreshTokenExpirationSeconds int
	userService                   userService
	tokenService                  handlerTokenService
}

type userService interface {
	RegisterOrganisation(ctx context.Context, request RegisterOrganisationRequest, applicationURL string) (*model.User, error)
	ConfirmEmail(ctx context.Context, token string) (string, error)
	FindById(ctx context.Context, id uint) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	ChangeAccountPassword(ctx context.Context, authorizationHeader string, request ChangePasswordRequest) (string, error)
	RequestPasswordReset(ctx context.Context, email string, applicationURL string) (string, error)
	ResetPassword(ctx context.Context, token string) (string, error)
	SetApproveByAdminToTrue(ctx context.Context, id uint) (string, error)
	LockAccountById(ctx context.Context, id uint) (string, error)
	UnlockAccountById(ctx context.Context, id uint) (string, error)
}

type handlerTokenService interface {
	GetTokens(user *model.User, previousRefreshTokenId string) (*token.Tokens, error)
	ValidateRefreshToken(ctx context.Context, tokenString string) (*token.RefreshTokenData, error)
	SignOut(userId uint) error
}

// Register organisation
func (h Handler) Register(c *gin.Context) {
	// swagger:route POST /register registerOrganisation
	//
	// Register organisation
	//
	// Register an organisation account. The account has to confirm its email and be approved by an administrator before it can sign in.
	//
	// responses:
	//   201: User
	//   400: Error
	//   409: Error
	//   415: Error
	var request RegisterOrganisationRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.RegisterOrganisation(c.Request.Context(), request, handler.ApplicationURL(c, h.basePath))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// VerifyEmail confirms the email of an organisation
func (h Handler) VerifyEmail(c *gin.Context) {
	// swagger:route GET /register/verify-email verifyEmail
	//
	// Verify email
	//
	// Confirm the email address using the token mailed on registration
	//
	// responses:
	//   200: Message
	//   400: Error
	value, ok := c.GetQuery("token")
	if !ok || value == "" {
		_ = c.Error(errdef.NewBadRequest("query parameter %q is required", "token"))
		return
	}

	msg, err := h.userService.ConfirmEmail(c.Request.Context(), value)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.Message{Message: msg})
}

// SignIn user
func (h Handler) SignIn(c *gin.Context) {
	// swagger:route POST /tokens signIn
	//
	// Sign in
	//
	// Sign in... And get tokens
	//
	// security:
	//   basicAuth:
	//
	// responses:
	//   201: Tokens
	//   401: Error
	//   403: Error
	//   404: Error
	//   415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	tokens, err := h.tokenService.GetTokens(user, "")
	if err != nil {
		_ = c.Error(err)
		return
	}

	util.SetCookies(c, tokens, h.sameSiteMode, h.hostname, h.accessTokenExpirationSeconds, h.refreshTokenExpirationSeconds)
	c.JSON(http.StatusCreated, tokens)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshToken user
func (h Handler) RefreshToken(c *gin.Context) {
	// swagger:route POST /refresh refreshToken
	//
	// Refresh tokens
	//
	// Refresh user tokens. The refresh token is read from the request body or the refreshToken cookie. Each refresh token can only be used once.
	//
	// responses:
	//   201: Tokens
	//   400: Error
	//   401: Error
	//   415: Error
	var request RefreshTokenRequest
	if c.Request.ContentLength > 0 {
		if err := handler.DataBinder(c, &request); err != nil {
			_ = c.Error(err)
			return
		}
	}

	if request.RefreshToken == "" {
		cookie, err := c.Cookie("refreshToken")
		if err != nil {
			_ = c.Error(errdef.NewBadRequest("refresh token not found in body or cookie"))
			return
		}
		request.RefreshToken = cookie
	}

	ctx := c.Request.Context()
	refreshToken, err := h.tokenService.ValidateRefreshToken(ctx, request.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.FindById(ctx, refreshToken.UserId)
	if err != nil {
		if errdef.IsNotFound(err) {
			_ = c.Error(errdef.NewUnauthorized("user of refresh token not found"))
		} else {
			_ = c.Error(err)
		}
		return
	}

	tokens, err := h.tokenService.GetTokens(user, refreshToken.ID.String())
	if err != nil {
		_ = c.Error(err)
		return
	}

	util.SetCookies(c, tokens, h.sameSiteMode, h.hostname, h.accessTokenExpirationSeconds, h.refreshTokenExpirationSeconds)
	c.JSON(http.StatusCreated, tokens)
}

// SignOut user
func (h Handler) SignOut(c *gin.Context) {
	// swagger:route DELETE /users signOut
	//
	// Sign out
	//
	// Sign out user... A JWT can't easily be invalidated so even after calling this endpoint the access token stays valid until it expires. However, the refresh tokens of the user are revoked.
	//
	// security:
	//	oauth2:
	//
	// responses:
	//	200:
	//	401: Error
	//	415: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.tokenService.SignOut(user.ID); err != nil {
		_ = c.Error(err)
		return
	}

	util.ClearCookies(c, h.sameSiteMode, h.hostname)
	c.Status(http.StatusOK)
}

// Me user
func (h Handler) Me(c *gin.Context) {
	// swagger:route GET /me me
	//
	// User details
	//
	// Current user details
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: User
	//   401: Error
	//   404: Error
	user, err := handler.GetUserFromContext(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	userWithOrganisation, err := h.userService.FindById(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, userWithOrganisation)
}

// ChangePassword of the current user
func (h Handler) ChangePassword(c *gin.Context) {
	// swagger:route PUT /me/password changePassword
	//
	// Change password
	//
	// Change the password of the current user
	//
	// security:
	//   oauth2:
	//
	// responses:
	//   200: Message
	//   400: Error
	//   401: Error
	//   415: Error
	var request ChangePasswordRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	accessToken, err := handler.GetTokenFromHttpAuthHeader(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := h.userService.ChangeAccountPassword(c.Request.Context(), "Bearer "+accessToken, request)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.Message{Message: msg})
}

type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestPasswordReset mails a password reset link
func (h Handler) RequestPasswordReset(c *gin.Context) {
	// swagger:route POST /forgotten-password requestPasswordReset
	//
	// Request password reset
	//
	// Mail a password reset link. The response is the same whether or not an account with the email exists.
	//
	// responses:
	//   200: Message
	//   400: Error
	//   415: Error
	var request RequestPasswordResetRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	msg, err := h.userService.RequestPasswordReset(c.Request.Context(), request.Email, handler.ApplicationURL(c, h.basePath))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.Message{Message: msg})
}

// ResetPassword issues a new password
func (h Handler) ResetPassword(c *gin.Context) {
	// swagger:route GET /forgotten-password/reset resetPassword
	//
	// Reset password
	//
	// Consume a password reset token and mail a newly generated password
	//
	// responses:
	//   200: Message
	//   400: Error
	value, ok := c.GetQuery("token")
	if !ok || value == "" {
		_ = c.Error(errdef.NewBadRequest("query parameter %q is required", "token"))
		return
	}

	msg, err := h.userService.ResetPassword(c.Request.Context(), value)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.Message{Message: msg})
}

// FindAll users
func (h Handler) FindAll(c *gin.Context) {
	// swagger:route GET /admin/users findAllUsers
	//
	// Find users
	//
	// Find all users with their organisation
	//
	// security:
	//	oauth2:
	//
	// responses:
	//	200: UsersResponse
	//	401: Error
	//	403: Error
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// Approve user
func (h Handler) Approve(c *gin.Context) {
	// swagger:route PUT /admin/users/{id}/approve approveUser
	//
	// Approve user
	//
	// Approve an organisation account so it can sign in and its content becomes public
	//
	// security:
	//	oauth2:
	//
	// responses:
	//	200: Message
	//	401: Error
	//	403: Error
	//	404: Error
	h.updateAccount(c, h.userService.SetApproveByAdminToTrue)
}

// Lock user
func (h Handler) Lock(c *gin.Context) {
	// swagger:route PUT /admin/users/{id}/lock lockUser
	//
	// Lock user
	//
	// Lock an account. Locked accounts can't sign in and their content is hidden.
	//
	// security:
	//	oauth2:
	//
	// responses:
	//	200: Message
	//	401: Error
	//	403: Error
	//	404: Error
	h.updateAccount(c, h.userService.LockAccountById)
}

// Unlock user
func (h Handler) Unlock(c *gin.Context) {
	// swagger:route PUT /admin/users/{id}/unlock unlockUser
	//
	// Unlock user
	//
	// Unlock a locked account
	//
	// security:
	//	oauth2:
	//
	// responses:
	//	200: Message
	//	401: Error
	//	403: Error
	//	404: Error
	h.updateAccount(c, h.userService.UnlockAccountById)
}

func (h Handler) updateAccount(c *gin.Context, update func(ctx context.Context, id uint) (string, error)) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	msg, err := update(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.Message{Message: msg})
}
