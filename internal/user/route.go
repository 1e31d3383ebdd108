package user

import (
	"github.com/LeDuoc95/BE-FEDUU/internal/middleware"
	userModel "github.com/LeDuoc95/BE-FEDUU/internal/model/user"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the account endpoints on the /user group. limiter
// throttles credential checks.
func RegisterRoutes(user *gin.RouterGroup, h *UserHandler, limiter gin.HandlerFunc) {
	user.POST("/create", h.Register)
	user.POST("/login", limiter, h.Login)
	user.POST("/api/token/refresh", limiter, h.Refresh)

	auth := user.Group("")
	auth.Use(middleware.JWTAuth())
	{
		auth.GET("/me", h.Me)
		auth.PUT("/change-password", h.ChangePassword)
		auth.PUT("/reset-password", h.ResetPassword)
		auth.PUT("/update", h.Update)
	}

	admin := user.Group("")
	admin.Use(middleware.JWTAuth(), middleware.RequireRoles(userModel.RoleAdmin))
	{
		admin.GET("/list", h.List)
		admin.DELETE("/delete/:id", h.Delete)
		admin.GET("/temporary", h.ListTemporary)
		admin.PUT("/temporary/:id", h.Onboard)
	}
}
