package media

import (
	"github.com/LeDuoc95/BE-FEDUU/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts photo endpoints on /user and video upload on /course
func RegisterRoutes(user, course *gin.RouterGroup, h *MediaHandler) {
	user.POST("/upload-images", middleware.JWTAuth(), h.UploadPhoto)
	user.GET("/photo", middleware.JWTAuth(), h.ListPhotos)
	course.POST("/upload-videos", middleware.JWTAuth(), h.UploadVideo)
}
