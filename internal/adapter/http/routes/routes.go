package routes

import (
	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/handler"
	"todoapi/pkg/config"
	"todoapi/pkg/logger"
	. "todoapi/pkg/middlewares"
	. "todoapi/pkg/tracing"
)

type HandlersConfig struct {
	TodoHandler   *handler.TodoHandler
	HealthHandler *handler.HealthHandler
}

func SetupRouter(handlers HandlersConfig, metrics *AppMetrics, log *logger.Logger, cfg *config.AppConfig) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	SetupGinMiddleware(router, cfg.ServiceName, metrics, log)

	registerRoutes(router, handlers)

	return router
}

// SetupRouterForTests builds the route table without tracing, logging or
// metrics middleware.
func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(gin.Recovery())

	registerRoutes(router, handlers)

	return router
}

func registerRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.HealthHandler != nil {
		router.GET("/ping", handlers.HealthHandler.Ping)
	}

	if handlers.TodoHandler != nil {
		todos := router.Group("/todos")
		{
			todos.GET("", handlers.TodoHandler.List)
			todos.POST("", handlers.TodoHandler.Create)
			todos.GET("/:id", handlers.TodoHandler.Read)
			todos.PUT("/:id", handlers.TodoHandler.Update)
			todos.PATCH("/:id", handlers.TodoHandler.Update)
			todos.DELETE("/:id", handlers.TodoHandler.Delete)
		}
	}
}
