package route

import (
	"net/http"
	"time"

	"github.com/LeDuoc95/BE-FEDUU/config"
	"github.com/LeDuoc95/BE-FEDUU/internal/activation"
	"github.com/LeDuoc95/BE-FEDUU/internal/course"
	"github.com/LeDuoc95/BE-FEDUU/internal/database"
	"github.com/LeDuoc95/BE-FEDUU/internal/logger"
	"github.com/LeDuoc95/BE-FEDUU/internal/media"
	"github.com/LeDuoc95/BE-FEDUU/internal/ratelimit"
	"github.com/LeDuoc95/BE-FEDUU/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const loginAttempts = 20

func initRoute(r *gin.Engine) {
	conf := config.Conf
	db := database.DB

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// uploaded photos and videos are served by their relative path
	r.Static("/media", conf.Upload.Dir)

	var sessions *user.SessionStore
	if database.RedisDB != nil {
		sessions = user.NewSessionStore(database.RedisDB, time.Duration(conf.JWT.RefreshExpireTime)*time.Hour)
	}
	limiter := ratelimit.NewRateLimiter(database.RedisDB)

	ledger := activation.NewLedger(db, conf.Activation.BatchSize)
	courseService := course.NewCourseService(db, ledger, course.NewListCache(database.RedisDB), conf.Course)
	userService := user.NewUserService(db, sessions, conf.JWT)
	mediaService := media.NewMediaService(db, media.NewDiskStorage(conf.Upload.Dir), conf.Upload)

	courseHandler := course.NewCourseHandler(courseService)
	activationHandler := activation.NewActivationHandler(ledger)
	userHandler := user.NewUserHandler(userService)
	mediaHandler := media.NewMediaHandler(mediaService)

	courseGroup := r.Group("/course")
	userGroup := r.Group("/user")
	{
		course.RegisterRoutes(courseGroup, courseHandler)
		activation.RegisterRoutes(courseGroup, activationHandler,
			limiter.Limit("activate", conf.Activation.RedeemLimit, time.Duration(conf.Activation.RedeemWindow)*time.Second))
		user.RegisterRoutes(userGroup, userHandler, limiter.Limit("login", loginAttempts, time.Minute))
		media.RegisterRoutes(userGroup, courseGroup, mediaHandler)
	}
}

// SetupRouter builds the HTTP engine. config.Conf and database.DB must be initialised.
func SetupRouter() *gin.Engine {
	gin.SetMode(config.Conf.Server.Mode)

	r := gin.New()
	r.Use(logger.GinLogger(logger.L()), logger.GinRecovery(logger.L()))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.Conf.Server.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	initRoute(r)

	return r
}
