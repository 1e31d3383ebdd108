package course

import (
	"github.com/LeDuoc95/BE-FEDUU/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the catalogue endpoints on the /course group
func RegisterRoutes(course *gin.RouterGroup, h *CourseHandler) {
	// public
	course.GET("/list", h.List)
	course.GET("/list-owner", middleware.OptionalJWTAuth(), h.ListOwner)

	auth := course.Group("")
	auth.Use(middleware.JWTAuth())
	{
		auth.GET("/list/:id", h.Detail)
		auth.POST("/create", h.Create)
		auth.PUT("/update/:id", h.Update)
		auth.DELETE("/delete/:id", h.Delete)
		auth.PUT("/review/:id", h.Review)
		auth.POST("/create-feeling", h.CreateFeedback)
	}
}
