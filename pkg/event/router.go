package event

import (
	"github.com/eventforge/eventforge/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r gin.IRouter, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.GET("/events", handler.FindPage)
	r.GET("/events/upcoming", handler.FindUpcoming)
	r.GET("/events/:id", handler.FindById)
	r.GET("/organisations/:id/events", handler.FindByOrganisation)

	organisationRouter := r.Group("/me/events")
	organisationRouter.Use(authenticationMiddleware.TokenAuthentication, authorizationMiddleware.RequireOrganisation)
	organisationRouter.GET("", handler.FindMine)
	organisationRouter.GET("/:id", handler.FindMineById)
	organisationRouter.POST("", handler.Create)
	organisationRouter.PUT("/:id", handler.Update)
	organisationRouter.DELETE("/:id", handler.Delete)
}
