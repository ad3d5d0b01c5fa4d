package app

import (
	"learning_platform_backend/docs"
	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/middleware"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/", middleware.TryAuthMiddleware(cfg, s.auth), c.auth.Home)
	router.GET("/login", loginPage)
	router.POST("/login", c.auth.Login)
	router.GET("/signup", signupPage)
	router.POST("/signup", c.auth.Signup)
	router.GET("/logout", middleware.TryAuthMiddleware(cfg, s.auth), c.auth.Logout)

	// 2. 页面路由：鉴权失败 302 到 /login
	web := router.Group("/")
	web.Use(middleware.WebAuthMiddleware(cfg, s.auth))
	{
		web.GET("/tutorial/:id", c.tutorial.ViewTutorial)

		student := web.Group("/student")
		student.Use(middleware.WebRoleMiddleware(model.Student))
		{
			student.GET("/dashboard", c.dashboard.StudentDashboard)
		}

		teacher := web.Group("/teacher")
		teacher.Use(middleware.WebRoleMiddleware(model.Teacher))
		{
			teacher.GET("/dashboard", c.dashboard.TeacherDashboard)
			teacher.GET("/add_tutorial", c.tutorial.AddTutorialForm)
			teacher.POST("/add_tutorial", c.tutorial.CreateTutorial)
			teacher.POST("/upload_video", c.tutorial.UploadVideo)
		}
	}

	// 3. API 路由：鉴权失败 401，角色不符 403
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		authorized := api.Group("/")
		authorized.Use(middleware.AuthMiddleware(cfg, s.auth))
		{
			authorized.GET("/profile", c.auth.GetProfile)
			authorized.GET("/tutorials", c.tutorial.ListTutorials)
			authorized.GET("/tutorials/:id", c.tutorial.GetTutorial)
			authorized.POST("/interaction", c.interaction.Record)
			authorized.GET("/stats", middleware.RoleMiddleware(model.Teacher), c.analytics.GetStats)
		}
	}
}

// 登录/注册页面由前端渲染，这两个 GET 仅保证路径可达
func loginPage(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"page": "login"})
}

func signupPage(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"page": "signup"})
}
