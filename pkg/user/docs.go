package user

import (
	"github.com/eventforge/eventforge/pkg/model"
	"github.com/eventforge/eventforge/pkg/token"
)

// swagger:parameters registerOrganisation
type _ struct {
	// Registration request body parameter
	// in: body
	// required: true
	Body RegisterOrganisationRequest
}

// swagger:parameters verifyEmail resetPassword
type _ struct {
	// Token mailed to the user
	// in: query
	// required: true
	Token string `json:"token"`
}

// swagger:parameters requestPasswordReset
type _ struct {
	// Request password reset request body parameter
	// in: body
	// required: true
	Body RequestPasswordResetRequest
}

// swagger:parameters changePassword
type _ struct {
	// Change password request body parameter
	// in: body
	// required: true
	Body ChangePasswordRequest
}

// swagger:parameters refreshToken
type _ struct {
	// Refresh token request body parameter. Note that this is optional and the refresh token can also be supplied using a cookie named "refreshToken"
	// in: body
	// required: false
	Body RefreshTokenRequest
}

// swagger:parameters approveUser lockUser unlockUser
type _ struct {
	// in: path
	// required: true
	ID uint `json:"id"`
}

// swagger:response Tokens
type _ struct {
	//in: body
	_ token.Tokens
}

// swagger:response UsersResponse
type _ struct {
	// Users list response
	//in: body
	_ *[]model.User
}
