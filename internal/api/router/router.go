package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobtrack/jobtrack-be/internal/api/handler"
	"github.com/jobtrack/jobtrack-be/internal/web"
	"github.com/jobtrack/jobtrack-be/shared/postgresql"
)

// Config collects everything the router needs beyond the handlers.
type Config struct {
	Deps *handler.Dependencies
	DB   *postgresql.Client
	Web  *web.App // embedded browser client; nil to serve the API only
}

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(cfg *Config) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(cfg.Deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/api/health", func(c *gin.Context) {
		status := "ok"
		if cfg.DB != nil {
			if err := cfg.DB.HealthCheck(c.Request.Context()); err != nil {
				status = "degraded"
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authHandler := handler.NewAuthHandler(cfg.Deps)
	jobHandler := handler.NewJobHandler(cfg.Deps)

	api := r.Group("/api")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.GET("/activity", jobHandler.GetActivity)

		jobs := api.Group("/jobs")
		{
			jobs.GET("", jobHandler.ListJobs)
			jobs.POST("", jobHandler.CreateJob)
			jobs.GET("/:id/resume", jobHandler.FetchResume)
			jobs.PUT("/:id", jobHandler.UpdateJob)
			jobs.DELETE("/:id", jobHandler.DeleteJob)
		}
	}

	if cfg.Web != nil {
		cfg.Web.Register(r)
	}

	return r
}
