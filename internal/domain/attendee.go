package domain

import (
	"context"
	"time"
)

// Attendee is a registration record tied to exactly one Event.
// swagger:model Attendee
type Attendee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	EventID      string    `json:"event_id"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewAttendee creates a new Attendee. ID is typically set by the repository on create.
func NewAttendee(eventID, name, email string, registeredAt time.Time) *Attendee {
	return &Attendee{
		Name:         name,
		Email:        email,
		EventID:      eventID,
		RegisteredAt: registeredAt,
	}
}

// AttendeeInput carries raw registration form fields.
type AttendeeInput struct {
	Name  string
	Email string
}

// AttendeeRepository defines storage operations for attendees.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *Attendee) error
	GetByID(ctx context.Context, id string) (*Attendee, error)
	// ListByEventID returns the event's attendees, most recent registration first.
	ListByEventID(ctx context.Context, eventID string) ([]*Attendee, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// AttendeeService defines attendee-facing operations such as event registration.
type AttendeeService interface {
	// Register creates an attendee and sells one ticket atomically.
	// Returns ErrCapacityReached when the event is full.
	Register(ctx context.Context, eventID string, in AttendeeInput) (*Attendee, error)
	List(ctx context.Context, eventID string) ([]*Attendee, error)
	// Remove deletes the attendee and frees one ticket atomically. The removed attendee is returned.
	Remove(ctx context.Context, attendeeID string) (*Attendee, error)
}
