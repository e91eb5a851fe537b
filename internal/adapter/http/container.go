package http

import (
	"todoapi/internal/adapter/database"
	"todoapi/internal/adapter/database/repository"
	"todoapi/internal/adapter/http/handler"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/config"
	"todoapi/pkg/logger"
)

// Container wires the pool through repositories and services into handlers.
type Container struct {
	TodoRepo    port.TodoRepository
	TodoService port.TodoService

	TodoHandler   *handler.TodoHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(db *database.DB, log *logger.Logger, probe port.Telemetry, cfg *config.AppConfig) *Container {
	todoRepo := repository.NewTodoRepository(db, probe)
	todoSvc := service.NewTodoService(todoRepo, probe)

	return &Container{
		TodoRepo:    todoRepo,
		TodoService: todoSvc,

		TodoHandler:   handler.NewTodoHandler(todoSvc, log, !cfg.IsProduction()),
		HealthHandler: handler.NewHealthHandler(db, log),
	}
}
