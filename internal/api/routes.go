package api

import (
	"alcyxob/fitness-planner/internal/logger"
	"alcyxob/fitness-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth       service.AuthService
	Account    service.AccountService
	Profile    service.ProfileService
	Preference service.PreferenceService
	Plan       service.PlanService
}

// NewRouter builds the engine with recovery, request logging and CORS, and
// registers every route.
func NewRouter(log *logger.Logger, corsOrigins []string, svc Services) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery(), RequestLogger(log), CORS(corsOrigins))
	router.NoRoute(handleNoRoute)
	router.NoMethod(handleNoMethod)
	SetupRoutes(router, svc)
	return router
}

func SetupRoutes(router *gin.Engine, svc Services) {
	authHandler := NewAuthHandler(svc.Auth)
	accountHandler := NewAccountHandler(svc.Account)
	profileHandler := NewProfileHandler(svc.Profile)
	preferenceHandler := NewPreferenceHandler(svc.Preference)
	planHandler := NewPlanHandler(svc.Plan)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
		}
	}

	protected := apiV1.Group("")
	protected.Use(AuthMiddleware(svc.Auth))
	{
		me := protected.Group("/me")
		{
			me.GET("", accountHandler.GetMe)
			me.PUT("", accountHandler.UpdateMe)
			me.DELETE("", accountHandler.DeleteMe)
			me.POST("/verify", accountHandler.Verify)
			me.POST("/verify/resend", accountHandler.ResendCode)
			me.POST("/password", accountHandler.ChangePassword)
			me.POST("/avatar", accountHandler.RequestAvatarUpload)
			me.GET("/avatar", accountHandler.GetAvatar)
		}

		profile := protected.Group("/profile")
		{
			profile.GET("", profileHandler.Get)
			profile.POST("", profileHandler.Create)
			profile.PUT("", profileHandler.Update)
		}

		prefs := protected.Group("/preferences")
		{
			prefs.POST("", preferenceHandler.Create)
			prefs.GET("", preferenceHandler.List)
			prefs.GET("/:id", preferenceHandler.Get)
			prefs.PATCH("/:id", preferenceHandler.Update)
			prefs.PUT("/:id", preferenceHandler.Update)
			prefs.DELETE("/:id", preferenceHandler.Delete)
		}

		plans := protected.Group("/plans")
		{
			plans.POST("", planHandler.Generate)
			plans.GET("", planHandler.List)
			plans.DELETE("", planHandler.Delete)
			plans.GET("/:id", planHandler.Get)
			plans.DELETE("/:id", planHandler.DeleteOne)
		}
	}
}
