package domain

import (
	"context"
	"time"
)

// DateLayout is the calendar-date format used for storage, forms and query strings.
const DateLayout = "2006-01-02"

// Event represents a schedulable item with a date and a finite capacity.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity"`
	TicketsSold int       `json:"tickets_sold"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with no tickets sold. ID is typically set by the repository on create.
func NewEvent(title, description string, date time.Time, location string, capacity int, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		Capacity:    capacity,
		TicketsSold: 0,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// TicketsLeft returns capacity minus tickets sold, floored at zero.
// Capacity may have been lowered below TicketsSold after registrations; that is not an error.
func (e *Event) TicketsLeft() int {
	left := e.Capacity - e.TicketsSold
	if left < 0 {
		return 0
	}
	return left
}

// IsFull reports whether no tickets are left.
func (e *Event) IsFull() bool {
	return e.TicketsLeft() <= 0
}

// DateString formats the event date as YYYY-MM-DD.
func (e *Event) DateString() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Format(DateLayout)
}

// EventInput carries raw, unparsed event fields as submitted by a form or import row.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Location    string
	Capacity    string
}

// EventFilter narrows an event listing. Zero values mean "no filter".
type EventFilter struct {
	Title string
	Date  *time.Time
}

// SearchResult is the outcome of an event search. Warning is set when part of
// the query (currently only the date) could not be applied.
type SearchResult struct {
	Events  []*Event `json:"events"`
	Warning string   `json:"warning,omitempty"`
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	// IncrementTicketsSold adds one sold ticket if the event still has capacity.
	// Returns ErrCapacityReached when tickets_sold already equals or exceeds capacity.
	IncrementTicketsSold(ctx context.Context, id string) error
	// DecrementTicketsSold removes one sold ticket, never going below zero.
	DecrementTicketsSold(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	SumTicketsSold(ctx context.Context) (int, error)
}

// EventService defines organizer-facing event operations.
type EventService interface {
	// List returns events whose title contains query (case-insensitive) and,
	// when date parses, whose date equals it; ordered by date ascending.
	List(ctx context.Context, query, date string) (*SearchResult, error)
	Create(ctx context.Context, in EventInput) (*Event, error)
	Update(ctx context.Context, id string, in EventInput) (*Event, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Event, error)
}
