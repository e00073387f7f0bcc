package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health reports that the service is up.
func Health(c *gin.Context) {
	// swagger:route GET /health health
	//
	// Service health status
	//
	// responses:
	//   200: Health
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}
