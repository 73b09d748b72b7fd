package app

import (
	"hiphop_roadmap_backend/docs"
	"hiphop_roadmap_backend/internal/middleware"
	"hiphop_roadmap_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(a.services.auth))
	{
		a.registerAccountRoutes(authGroup, c)
		a.registerCatalogAdminRoutes(authGroup, c)
		a.registerLearnerRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		public.GET("/skills", c.skill.GetAllSkills)
		public.GET("/skills/categories", c.skill.GetCategories)
		public.GET("/skills/category/:categoryId", c.skill.GetSkillsByCategory)
		public.GET("/skills/:skillId", c.skill.GetSkill)
		// 开发阶段公开，用于初始化目录
		public.POST("/skills/seed", c.skill.SeedSkills)
	}
}

func (a *App) registerAccountRoutes(group *gin.RouterGroup, c *controllers) {
	auth := group.Group("/auth")
	{
		auth.POST("/logout", c.auth.Logout)
		auth.GET("/me", c.auth.GetProfile)
		auth.GET("/me/overview", c.auth.GetOverview)
		auth.PUT("/profile", c.auth.UpdateProfile)
	}
}

func (a *App) registerCatalogAdminRoutes(group *gin.RouterGroup, c *controllers) {
	skills := group.Group("/skills")
	{
		skills.POST("", c.skill.CreateSkill)
		skills.PUT("/:skillId", c.skill.UpdateSkill)
		skills.DELETE("/:skillId", c.skill.DeleteSkill)
		skills.POST("/:skillId/video", c.skill.UploadVideo)
	}
}

func (a *App) registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	progress := group.Group("/progress")
	{
		progress.GET("", c.progress.GetProgress)
		progress.GET("/stats", c.progress.GetStats)
		progress.POST("/complete/:skillId", c.progress.MarkComplete)
		progress.POST("/incomplete/:skillId", c.progress.MarkIncomplete)
		progress.PUT("/:skillId", c.progress.UpdateProgress)
		progress.DELETE("/:skillId", c.progress.DeleteProgress)
	}

	personalization := group.Group("/personalization")
	{
		personalization.POST("", c.personalization.SavePersonalization)
		personalization.GET("", c.personalization.GetPersonalization)
		personalization.POST("/regenerate", c.personalization.RegeneratePersonalization)
		personalization.DELETE("", c.personalization.DeletePersonalization)
	}
}
