package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/qotd/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.HSTS {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}
	if cfg.ReadOnly {
		router.Use(ReadOnlyMiddleware())
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	api := router.Group("/api")

	questions := NewQuestionsController(cfg.Client)
	api.GET("/questions", questions.List)
	api.POST("/questions", questions.Create)
	api.POST("/questions/bulk", questions.CreateBulk)
	api.GET("/questions/count", questions.Count)
	api.GET("/questions/texts", questions.Texts)
	api.POST("/questions/check-duplicate", questions.CheckDuplicate)
	api.POST("/questions/delete", questions.DeleteMany)
	api.GET("/questions/:id", questions.Get)
	api.PATCH("/questions/:id", questions.Update)
	api.DELETE("/questions/:id", questions.Delete)

	categories := NewCategoriesController(cfg.Client)
	api.GET("/categories", categories.List)

	stats := NewStatsController(cfg.Client)
	api.GET("/stats", stats.Get)

	if cfg.Picker != nil {
		daily := NewDailyController(cfg.Picker)
		api.GET("/qotd", daily.Today)
		api.POST("/qotd/repick", daily.Repick)
	}

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient)
		api.GET("/tasks/types", tasksController.ListTaskTypes)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
		api.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
