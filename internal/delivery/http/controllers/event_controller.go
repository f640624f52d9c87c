package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/views"
	"eventregistration/internal/domain"
)

// Flash messages for event pages.
const (
	MsgEventCreated  = "Event created."
	MsgEventUpdated  = "Event updated."
	MsgEventDeleted  = "Event deleted."
	MsgEventNotFound = "Event not found."
)

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Views   Renderer
}

func NewEventController(logger *slog.Logger, svc domain.EventService, v Renderer) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Views:   v,
	}
}

type eventListData struct {
	Events []*domain.Event
	Query  string
	Date   string
}

type eventFormData struct {
	Action     string
	FormAction string
	Event      *domain.Event
}

type eventData struct {
	Event *domain.Event
}

// Home redirects to the event list.
func (c *EventController) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/events", http.StatusFound)
}

// List renders events filtered by the q and date query parameters.
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	data := eventListData{Query: query.Get("q"), Date: query.Get("date")}
	result, err := c.Service.List(r.Context(), data.Query, data.Date)
	if err != nil {
		serverError(c.Logger, c.Views, w, r, err)
		return
	}
	data.Events = result.Events

	// A search warning replaces any pending flash, as only one alert is shown.
	flash := helpers.PopFlash(w, r)
	if result.Warning != "" {
		flash = &helpers.Flash{Kind: helpers.FlashWarning, Message: result.Warning}
	}
	writePage(c.Logger, c.Views, w, r, http.StatusOK, "events", views.Page{Title: "Events", Flash: flash, Data: data})
}

func (c *EventController) New(w http.ResponseWriter, r *http.Request) {
	render(c.Logger, c.Views, w, r, http.StatusOK, "event_form", "New Event",
		eventFormData{Action: "Create", FormAction: "/events/new"})
}

func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	if _, err := c.Service.Create(r.Context(), eventInput(r)); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			helpers.RedirectWithFlash(w, r, "/events/new", helpers.FlashDanger, ve.Message)
			return
		}
		serverError(c.Logger, c.Views, w, r, err)
		return
	}
	helpers.RedirectWithFlash(w, r, "/events", helpers.FlashSuccess, MsgEventCreated)
}

func (c *EventController) View(w http.ResponseWriter, r *http.Request) {
	event, ok := c.load(w, r)
	if !ok {
		return
	}
	render(c.Logger, c.Views, w, r, http.StatusOK, "event_view", event.Title, eventData{Event: event})
}

func (c *EventController) Edit(w http.ResponseWriter, r *http.Request) {
	event, ok := c.load(w, r)
	if !ok {
		return
	}
	render(c.Logger, c.Views, w, r, http.StatusOK, "event_form", "Edit Event",
		eventFormData{Action: "Edit", FormAction: "/events/" + event.ID + "/edit", Event: event})
}

func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !validID(id) {
		notFound(c.Logger, c.Views, w, r, MsgEventNotFound)
		return
	}
	if _, err := c.Service.Update(r.Context(), id, eventInput(r)); err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFound(c.Logger, c.Views, w, r, MsgEventNotFound)
		case errors.As(err, &ve):
			helpers.RedirectWithFlash(w, r, "/events/"+id+"/edit", helpers.FlashDanger, ve.Message)
		default:
			serverError(c.Logger, c.Views, w, r, err)
		}
		return
	}
	helpers.RedirectWithFlash(w, r, "/events", helpers.FlashSuccess, MsgEventUpdated)
}

// Delete removes the event and, by cascade, its attendees.
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !validID(id) {
		notFound(c.Logger, c.Views, w, r, MsgEventNotFound)
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c.Logger, c.Views, w, r, MsgEventNotFound)
			return
		}
		serverError(c.Logger, c.Views, w, r, err)
		return
	}
	helpers.RedirectWithFlash(w, r, "/events", helpers.FlashSuccess, MsgEventDeleted)
}

// load fetches the event named by the id path value, answering 404 or 500 itself when it cannot.
func (c *EventController) load(w http.ResponseWriter, r *http.Request) (*domain.Event, bool) {
	id := r.PathValue("id")
	if !validID(id) {
		notFound(c.Logger, c.Views, w, r, MsgEventNotFound)
		return nil, false
	}
	event, err := c.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c.Logger, c.Views, w, r, MsgEventNotFound)
			return nil, false
		}
		serverError(c.Logger, c.Views, w, r, err)
		return nil, false
	}
	return event, true
}

func eventInput(r *http.Request) domain.EventInput {
	return domain.EventInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Date:        r.PostFormValue("date"),
		Location:    r.PostFormValue("location"),
		Capacity:    r.PostFormValue("capacity"),
	}
}
