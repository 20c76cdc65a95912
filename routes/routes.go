package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	_ "github.com/wganko/liff-for-auto-responce/docs" // registers the swagger spec
	"github.com/wganko/liff-for-auto-responce/handlers"
	"github.com/wganko/liff-for-auto-responce/middleware"
)

type Handlers struct {
	Attendance *handlers.AttendanceHandler
	WebSocket  *handlers.WebSocketHandler
	Health     *handlers.HealthHandler
}

func SetupRoutes(router chi.Router, h Handlers, allowedOrigins []string, logger *slog.Logger) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RecoverJSON(logger))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", h.Health.Health)

	router.Get("/exec", h.Attendance.ExecGet)
	router.Post("/exec", h.Attendance.ExecPost)
	router.Post("/forms/events", h.Attendance.FormEvent)

	router.Get("/ws/forms/{formKey}", h.WebSocket.ServeWs)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
