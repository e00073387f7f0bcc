package server

import (
	"log/slog"
	"net/http"

	"github.com/eventforge/eventforge/internal/middleware"
	"github.com/eventforge/eventforge/pkg/health"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redocMiddleware "github.com/go-openapi/runtime/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "eventforge"

// GetEngine returns a gin engine with the middleware every route shares, the health check and the API docs.
// Callers register the routes of the domain packages on a group of basePath.
func GetEngine(logger *slog.Logger, basePath string) *gin.Engine {
	r := gin.New()
	r.Use(recovery(logger))
	r.Use(cors.New(corsConfig()))
	r.Use(middleware.CorrelationID())
	r.Use(otelgin.Middleware(serviceName))

	healthRoute := basePath + "/health"
	r.Use(middleware.RequestLogger(logger, healthRoute))
	r.Use(middleware.ErrorHandler())

	r.GET(healthRoute, health.Health)
	docs(r.Group(basePath), basePath)

	return r
}

// corsConfig lets the web client on any origin send credentials and read the correlation id of a response.
func corsConfig() cors.Config {
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowCredentials = true
	config.AddAllowHeaders("Authorization", middleware.CorrelationIDHeader)
	config.AddExposeHeaders(middleware.CorrelationIDHeader)
	return config
}

func recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "Recovered from panic", "panic", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}

// docs serves the generated OpenAPI document and a ReDoc page rendering it.
func docs(router *gin.RouterGroup, basePath string) {
	router.StaticFile("/swagger.yaml", "./swagger/swagger.yaml")

	redoc := redocMiddleware.Redoc(redocMiddleware.RedocOpts{
		BasePath: basePath,
		SpecURL:  "./swagger.yaml",
	}, nil)
	router.GET("/docs", gin.WrapH(redoc))
}
