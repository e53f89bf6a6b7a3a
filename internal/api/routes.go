package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"pixelperfect/internal/api/middleware"
	"pixelperfect/internal/config"
	"pixelperfect/internal/session"
	"pixelperfect/internal/store"
)

// RegisterRoutes wires every handler under /api. The session middleware runs
// on the whole group so public routes see an optional principal; the admin
// gate is applied per mutating route.
func RegisterRoutes(
	router *gin.Engine,
	st *store.Store,
	sessions session.Store,
	redisClient redis.UniversalClient,
	logger *slog.Logger,
	cfg *config.Config,
) {
	authHandler := NewAuthHandler(st.Users, sessions, redisClient, logger, cfg.Login, cfg.Session.TTL(), cfg.API.CookieDomain)
	projectHandler := NewProjectHandler(st.Projects)
	serviceHandler := NewServiceHandler(st.Services)
	productHandler := NewProductHandler(st.Products)
	jobHandler := NewJobHandler(st.JobOpenings)
	applicationHandler := NewApplicationHandler(st.Applications, cfg.Upload.MaxResumeBytes, cfg.Upload.ClamdAddr)
	blogHandler := NewBlogHandler(st.BlogArticles)

	requireAdmin := middleware.RequireAdmin()

	api := router.Group("/api")
	api.Use(middleware.CurrentUser(sessions, st.Users))
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/logout", authHandler.Logout)
		api.GET("/user", authHandler.Me)

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.GET("/featured", projectHandler.Featured)
			projects.GET("/category/:category", projectHandler.ByCategory)
			projects.GET("/:id", projectHandler.Get)
			projects.POST("", requireAdmin, projectHandler.Create)
			projects.PUT("/:id", requireAdmin, projectHandler.Update)
			projects.DELETE("/:id", requireAdmin, projectHandler.Delete)
		}

		services := api.Group("/services")
		{
			services.GET("", serviceHandler.List)
			services.GET("/:id", serviceHandler.Get)
			services.POST("", requireAdmin, serviceHandler.Create)
			services.PUT("/:id", requireAdmin, serviceHandler.Update)
			services.DELETE("/:id", requireAdmin, serviceHandler.Delete)
		}

		products := api.Group("/products")
		{
			products.GET("", productHandler.List)
			products.GET("/featured", productHandler.Featured)
			products.GET("/category/:category", productHandler.ByCategory)
			products.GET("/:id", productHandler.Get)
			products.POST("", requireAdmin, productHandler.Create)
			products.PUT("/:id", requireAdmin, productHandler.Update)
			products.DELETE("/:id", requireAdmin, productHandler.Delete)
		}

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.List)
			jobs.GET("/all", requireAdmin, jobHandler.ListAll)
			jobs.GET("/:id", jobHandler.Get)
			jobs.POST("", requireAdmin, jobHandler.Create)
			jobs.PUT("/:id", requireAdmin, jobHandler.Update)
			jobs.DELETE("/:id", requireAdmin, jobHandler.Delete)
		}

		applications := api.Group("/applications")
		{
			applications.POST("", applicationHandler.Submit)
			applications.GET("", requireAdmin, applicationHandler.List)
			applications.GET("/:id", requireAdmin, applicationHandler.Get)
			applications.GET("/job/:jobId", requireAdmin, applicationHandler.ByJob)
			applications.DELETE("/:id", requireAdmin, applicationHandler.Delete)
		}

		blog := api.Group("/blog")
		{
			blog.GET("", blogHandler.List)
			blog.GET("/all", requireAdmin, blogHandler.ListAll)
			blog.GET("/:id", blogHandler.Get)
			blog.POST("", requireAdmin, blogHandler.Create)
			blog.PUT("/:id", requireAdmin, blogHandler.Update)
			blog.DELETE("/:id", requireAdmin, blogHandler.Delete)
		}
	}
}
