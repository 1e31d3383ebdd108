package activation

import (
	"github.com/LeDuoc95/BE-FEDUU/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the ledger endpoints on the /course group. limiter
// throttles redemption attempts.
func RegisterRoutes(course *gin.RouterGroup, h *ActivationHandler, limiter gin.HandlerFunc) {
	course.POST("/activate", limiter, h.Redeem)
	course.GET("/keys/:id", middleware.JWTAuth(), h.Pool)
}
