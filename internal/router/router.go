package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/todoforge/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)
	r.POST("/api/auth/logout", handlers.Auth.Logout)
	r.GET("/api/auth/me", handlers.Auth.Me)

	// Protected todo routes
	r.GET("/api/todos/", authMiddleware(handlers.Task.List))
	r.POST("/api/todos/", authMiddleware(handlers.Task.Create))
	r.GET("/api/todos/{id}", authMiddleware(handlers.Task.Get))
	r.PUT("/api/todos/{id}", authMiddleware(handlers.Task.Update))
	r.DELETE("/api/todos/{id}", authMiddleware(handlers.Task.Delete))
	r.PATCH("/api/todos/{id}/complete", authMiddleware(handlers.Task.ToggleComplete))

	return r
}
