package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"
)

// Flash messages for attendee pages.
const (
	MsgRegistered       = "Registered successfully."
	MsgEventFull        = "Cannot register, event is full."
	MsgAttendeeRemoved  = "Attendee removed and ticket freed."
	MsgAttendeeNotFound = "Attendee not found."
)

type AttendeeController struct {
	Logger  *slog.Logger
	Events  domain.EventService
	Service domain.AttendeeService
	Views   Renderer
}

func NewAttendeeController(logger *slog.Logger, events domain.EventService, svc domain.AttendeeService, v Renderer) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Events:  events,
		Service: svc,
		Views:   v,
	}
}

type attendeesData struct {
	Event     *domain.Event
	Attendees []*domain.Attendee
}

// Manage renders the event's attendees, most recent first, with the registration form.
func (c *AttendeeController) Manage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !validID(id) {
		notFound(c.Logger, c.Views, w, r, MsgEventNotFound)
		return
	}
	event, err := c.Events.Get(r.Context(), id)
	if err != nil {
		c.fail(w, r, err, MsgEventNotFound)
		return
	}
	attendees, err := c.Service.List(r.Context(), id)
	if err != nil {
		c.fail(w, r, err, MsgEventNotFound)
		return
	}
	render(c.Logger, c.Views, w, r, http.StatusOK, "attendees", "Attendees",
		attendeesData{Event: event, Attendees: attendees})
}

func (c *AttendeeController) Register(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !validID(id) {
		notFound(c.Logger, c.Views, w, r, MsgEventNotFound)
		return
	}
	back := "/events/" + id + "/attendees"
	in := domain.AttendeeInput{Name: r.PostFormValue("name"), Email: r.PostFormValue("email")}
	if _, err := c.Service.Register(r.Context(), id, in); err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrCapacityReached):
			helpers.RedirectWithFlash(w, r, back, helpers.FlashDanger, MsgEventFull)
		case errors.As(err, &ve):
			helpers.RedirectWithFlash(w, r, back, helpers.FlashDanger, ve.Message)
		default:
			c.fail(w, r, err, MsgEventNotFound)
		}
		return
	}
	helpers.RedirectWithFlash(w, r, back, helpers.FlashSuccess, MsgRegistered)
}

// Remove deletes an attendee and returns to its event's attendee page.
func (c *AttendeeController) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !validID(id) {
		notFound(c.Logger, c.Views, w, r, MsgAttendeeNotFound)
		return
	}
	removed, err := c.Service.Remove(r.Context(), id)
	if err != nil {
		c.fail(w, r, err, MsgAttendeeNotFound)
		return
	}
	helpers.RedirectWithFlash(w, r, "/events/"+removed.EventID+"/attendees", helpers.FlashSuccess, MsgAttendeeRemoved)
}

func (c *AttendeeController) fail(w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	if errors.Is(err, domain.ErrNotFound) {
		notFound(c.Logger, c.Views, w, r, notFoundMsg)
		return
	}
	serverError(c.Logger, c.Views, w, r, err)
}
