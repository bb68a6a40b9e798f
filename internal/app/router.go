package app

import (
	"malaka_backend/docs"
	"malaka_backend/internal/config"
	"malaka_backend/internal/middleware"
	"malaka_backend/internal/model"

	"malaka_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
	}

	// 3. 管理员相关接口
	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	// 课程目录
	rg.GET("/skills", c.catalog.GetSkillTree)
	rg.GET("/skills/:skillSlug", c.catalog.GetSkillDetail)
	rg.GET("/skills/:skillSlug/:subskillSlug", c.catalog.GetSubskillLessons)
	rg.GET("/skills/:skillSlug/:subskillSlug/:lessonSlug", c.catalog.GetLessonDetail)

	// 观看会话与进度
	rg.POST("/lessons/:lessonId/watch/start", c.watch.StartSession)
	rg.POST("/lessons/:lessonId/watch/:sessionId/events", c.watch.RecordEvent)
	rg.POST("/lessons/:lessonId/complete", c.progress.MarkComplete)
	rg.GET("/progress", c.progress.ListMyProgress)

	// 课程笔记
	rg.GET("/lessons/:lessonId/note", c.note.GetNote)
	rg.PUT("/lessons/:lessonId/note", c.note.SaveNote)
	rg.DELETE("/lessons/:lessonId/note", c.note.DeleteNote)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(
		middleware.AuthMiddleware(cfg),
		middleware.ActivityMiddleware(repos.user),
		middleware.RoleMiddleware(model.Admin),
	)
	{
		admin.POST("/skills", c.catalog.CreateSkill)
		admin.PUT("/skills/:id", c.catalog.UpdateSkill)
		admin.DELETE("/skills/:id", c.catalog.DeleteSkill)

		admin.POST("/subskills", c.catalog.CreateSubskill)
		admin.PUT("/subskills/:id", c.catalog.UpdateSubskill)
		admin.DELETE("/subskills/:id", c.catalog.DeleteSubskill)

		admin.POST("/lessons", c.catalog.CreateLesson)
		admin.PUT("/lessons/:id", c.catalog.UpdateLesson)
		admin.DELETE("/lessons/:id", c.catalog.DeleteLesson)

		admin.POST("/lessons/:id/video", c.content.UploadLessonVideo)
	}
}
