package user

import (
	"github.com/eventforge/eventforge/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.POST("/register", handler.Register)
	r.GET("/register/verify-email", handler.VerifyEmail)
	r.POST("/refresh", handler.RefreshToken)
	r.POST("/forgotten-password", handler.RequestPasswordReset)
	r.GET("/forgotten-password/reset", handler.ResetPassword)

	basicAuthenticationRouter := r.Group("")
	basicAuthenticationRouter.Use(authenticationMiddleware.BasicAuthentication)
	basicAuthenticationRouter.POST("/tokens", handler.SignIn)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/me", handler.Me)
	tokenAuthenticationRouter.PUT("/me/password", handler.ChangePassword)
	tokenAuthenticationRouter.DELETE("/users", handler.SignOut)

	administratorRouter := tokenAuthenticationRouter.Group("/admin")
	administratorRouter.Use(authorizationMiddleware.RequireAdministrator)
	administratorRouter.GET("/users", handler.FindAll)
	administratorRouter.PUT("/users/:id/approve", handler.Approve)
	administratorRouter.PUT("/users/:id/lock", handler.Lock)
	administratorRouter.PUT("/users/:id/unlock", handler.Unlock)
}
