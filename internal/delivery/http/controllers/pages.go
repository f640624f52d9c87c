package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/views"
)

// Renderer renders a named HTML page.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, page views.Page) error
}

// validID reports whether id could name a stored record. Anything else is answered with 404.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// render pops any pending flash message into the page and writes it.
func render(logger *slog.Logger, v Renderer, w http.ResponseWriter, r *http.Request, status int, name, title string, data any) {
	writePage(logger, v, w, r, status, name, views.Page{Title: title, Flash: helpers.PopFlash(w, r), Data: data})
}

func writePage(logger *slog.Logger, v Renderer, w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	if err := v.Render(w, status, name, page); err != nil {
		logger.ErrorContext(r.Context(), "render failed", "page", name, "path", r.URL.Path, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func notFound(logger *slog.Logger, v Renderer, w http.ResponseWriter, r *http.Request, message string) {
	render(logger, v, w, r, http.StatusNotFound, "not_found", "Not found", message)
}

func serverError(logger *slog.Logger, v Renderer, w http.ResponseWriter, r *http.Request, err error) {
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	render(logger, v, w, r, http.StatusInternalServerError, "error", "Error", nil)
}
