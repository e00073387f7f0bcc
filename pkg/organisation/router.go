package organisation

import (
	"github.com/eventforge/eventforge/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.GET("/organisations", handler.FindAll)
	r.GET("/organisations/:id", handler.FindById)

	tokenAuthenticationRouter := r.Group("/me/organisation")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireOrganisation)
	tokenAuthenticationRouter.GET("", handler.Mine)
	tokenAuthenticationRouter.PUT("", handler.Update)
}
