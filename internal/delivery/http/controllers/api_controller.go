package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// APIController serves the read-only JSON API.
type APIController struct {
	Logger    *slog.Logger
	Events    domain.EventService
	Attendees domain.AttendeeService
	Reports   domain.ReportService
}

func NewAPIController(logger *slog.Logger, events domain.EventService, attendees domain.AttendeeService, reports domain.ReportService) *APIController {
	return &APIController{
		Logger:    logger,
		Events:    events,
		Attendees: attendees,
		Reports:   reports,
	}
}

// ListEventsSuccessResponse is the success response envelope for GET /api/events (200).
type ListEventsSuccessResponse struct {
	Data  *domain.SearchResult `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /api/events/{id} (200).
type GetEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListAttendeesSuccessResponse is the success response envelope for GET /api/events/{id}/attendees (200).
type ListAttendeesSuccessResponse struct {
	Data  []*domain.Attendee `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ReportSuccessResponse is the success response envelope for GET /api/report (200).
type ReportSuccessResponse struct {
	Data  *domain.Report    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEvents godoc
// @Summary List events
// @Description Events ordered by date. q filters by title substring (case-insensitive); date filters by calendar date. An unparseable date is ignored and reported in data.warning.
// @Tags events
// @Produce json
// @Param q query string false "Title substring"
// @Param date query string false "Date (YYYY-MM-DD or natural language)"
// @Success 200 {object} controllers.ListEventsSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *APIController) ListEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := c.Events.List(r.Context(), query.Get("q"), query.Get("date"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *APIController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	event, err := c.Events.Get(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListAttendees godoc
// @Summary List an event's attendees
// @Description Most recent registration first.
// @Tags attendees
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ListAttendeesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/attendees [get]
func (c *APIController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	attendees, err := c.Attendees.List(r.Context(), id)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// Report godoc
// @Summary Aggregate counts
// @Tags report
// @Produce json
// @Success 200 {object} controllers.ReportSuccessResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /report [get]
func (c *APIController) Report(w http.ResponseWriter, r *http.Request) {
	report, err := c.Reports.Summary(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

func (c *APIController) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return "", false
	}
	if !validID(id) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid id")
		return "", false
	}
	return id, true
}

func (c *APIController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.As(err, &ve):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Message)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
