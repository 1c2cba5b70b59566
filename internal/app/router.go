package app

import (
	"time"

	"study_buddy_backend/docs"
	"study_buddy_backend/internal/middleware"
	"study_buddy_backend/pkg/monitoring"
	"study_buddy_backend/pkg/security"
	"study_buddy_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) setupMiddlewares(router *gin.Engine) {
	cfg := a.Config

	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(gin.Recovery())
	router.Use(security.Secure())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.RateLimiter(a.ctx, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if a.tracer != nil {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	if a.Config.Storage.Type == "local" {
		router.Static("/uploads", a.Config.Storage.LocalPath)
	}

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		api.GET("/dashboard/:userId", c.dashboard.GetDashboard)

		// /goals/:id is a user id on GET and a goal id elsewhere.
		api.POST("/goals", c.goal.CreateGoal)
		api.GET("/goals/:id", c.goal.ListUserGoals)
		api.PATCH("/goals/:id", c.goal.UpdateGoalStatus)
		api.GET("/goals/:id/tasks", c.goal.ListGoalTasks)

		api.PATCH("/tasks/:taskId/complete", c.task.SetCompletion)

		api.GET("/achievements/:userId", c.achievement.ListUserAchievements)
		api.GET("/achievements/:userId/catalogue", c.achievement.Catalogue)

		api.GET("/ai-insight/:userId", c.insight.GetInsight)

		api.POST("/users", c.user.CreateUser)
		api.GET("/users/:userId", c.user.GetUser)
		api.GET("/users/:userId/export", c.user.Export)

		api.POST("/reminders", c.reminder.CreateReminder)
		api.PATCH("/reminders/:reminderId", c.reminder.SetActive)
	}
}
