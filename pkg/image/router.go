package image

import (
	"github.com/eventforge/eventforge/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.GET("/images/:name", handler.Download)

	uploaderRouter := r.Group("/images")
	uploaderRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireOrganisationOrAdministrator)
	uploaderRouter.POST("", handler.Upload)
	uploaderRouter.DELETE("/:name", handler.Delete)
}
