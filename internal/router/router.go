package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/taskbuddy/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, sessionMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/sign-in", handlers.Auth.SignIn)
	r.POST("/api/v1/auth/sign-out", sessionMiddleware(handlers.Auth.SignOut))
	r.POST("/api/v1/auth/refresh", sessionMiddleware(handlers.Auth.Refresh))
	r.GET("/api/v1/session", sessionMiddleware(handlers.Auth.Current))

	// Task routes
	r.GET("/api/v1/tasks", sessionMiddleware(handlers.Task.GetTasks))
	r.POST("/api/v1/tasks", sessionMiddleware(handlers.Task.CreateTask))
	r.POST("/api/v1/tasks/reorder", sessionMiddleware(handlers.Task.Reorder))
	r.POST("/api/v1/tasks/bulk/status", sessionMiddleware(handlers.Task.BulkStatus))
	r.POST("/api/v1/tasks/bulk/delete", sessionMiddleware(handlers.Task.BulkDelete))
	r.PUT("/api/v1/tasks/{id}", sessionMiddleware(handlers.Task.UpdateTask))
	r.DELETE("/api/v1/tasks/{id}", sessionMiddleware(handlers.Task.DeleteTask))
	r.POST("/api/v1/tasks/{id}/status", sessionMiddleware(handlers.Task.SetStatus))
	r.POST("/api/v1/tasks/{id}/toggle", sessionMiddleware(handlers.Task.ToggleComplete))

	return r
}
