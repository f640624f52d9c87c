package http

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"eventregistration/internal/delivery/http/controllers"
	"eventregistration/internal/delivery/http/middleware"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events    *controllers.EventController
	Attendees *controllers.AttendeeController
	Imports   *controllers.ImportController
	Reports   *controllers.ReportController
	API       *controllers.APIController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(logger *slog.Logger, c Controllers, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()

	// HTML pages
	mux.HandleFunc("GET /{$}", c.Events.Home)
	mux.HandleFunc("GET /events", c.Events.List)
	mux.HandleFunc("GET /events/new", c.Events.New)
	mux.HandleFunc("POST /events/new", c.Events.Create)
	mux.HandleFunc("GET /events/{id}", c.Events.View)
	mux.HandleFunc("GET /events/{id}/edit", c.Events.Edit)
	mux.HandleFunc("POST /events/{id}/edit", c.Events.Update)
	mux.HandleFunc("POST /events/{id}/delete", c.Events.Delete)

	mux.HandleFunc("GET /events/{id}/attendees", c.Attendees.Manage)
	mux.HandleFunc("POST /events/{id}/attendees", c.Attendees.Register)
	mux.HandleFunc("POST /attendees/{id}/delete", c.Attendees.Remove)

	mux.HandleFunc("GET /upload", c.Imports.Form)
	mux.HandleFunc("POST /upload", c.Imports.Upload)
	mux.HandleFunc("GET /report", c.Reports.Show)

	// JSON API
	api := http.NewServeMux()
	api.HandleFunc("GET /api/events", c.API.ListEvents)
	api.HandleFunc("GET /api/events/{id}", c.API.GetEvent)
	api.HandleFunc("GET /api/events/{id}/attendees", c.API.ListAttendees)
	api.HandleFunc("GET /api/report", c.API.Report)
	mux.Handle("/api/", middleware.CORS(allowedOrigins, api))

	// Swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = chimiddleware.Recoverer(mux)
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = chimiddleware.RealIP(handler)
	handler = chimiddleware.RequestID(handler)
	return handler
}
