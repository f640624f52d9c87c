package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

// User-facing messages for rejected registrations.
const (
	MsgNameRequired = "Name is required."
	MsgInvalidEmail = "Email address is not valid."
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type attendeeService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	tx             domain.Transactor
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAttendeeService creates an AttendeeService with the given repositories.
// emailService may be nil, in which case no confirmation is sent.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	tx domain.Transactor,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		tx:             tx,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *attendeeService) Register(ctx context.Context, eventID string, in domain.AttendeeInput) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", MsgNameRequired)
	}
	email := strings.TrimSpace(in.Email)
	if email != "" && !emailRegex.MatchString(email) {
		return nil, domain.NewValidationError("email", MsgInvalidEmail)
	}

	var event *domain.Event
	var attendee *domain.Attendee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ev, err := s.eventRepo.GetByID(ctx, eventID)
		if err != nil {
			return err
		}
		if ev.IsFull() {
			return domain.ErrCapacityReached
		}
		// The increment is conditional in storage, so a concurrent
		// registration that took the last ticket still fails here.
		if err := s.eventRepo.IncrementTicketsSold(ctx, eventID); err != nil {
			return err
		}
		a := domain.NewAttendee(eventID, name, email, time.Now().UTC())
		if err := s.attendeeRepo.Create(ctx, a); err != nil {
			return err
		}
		ev.TicketsSold++
		event, attendee = ev, a
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrNotFound
		case errors.Is(err, domain.ErrCapacityReached):
			return nil, domain.ErrCapacityReached
		}
		return nil, fmt.Errorf("register attendee: %w", err)
	}

	s.sendConfirmation(ctx, event, attendee)
	return attendee, nil
}

// sendConfirmation runs after commit; a mail failure never undoes a registration.
func (s *attendeeService) sendConfirmation(ctx context.Context, event *domain.Event, attendee *domain.Attendee) {
	if s.emailService == nil || attendee.Email == "" {
		return
	}
	err := s.emailService.SendRegistrationConfirmation(ctx, &domain.RegistrationEmailData{
		Email:      attendee.Email,
		Name:       attendee.Name,
		EventTitle: event.Title,
		EventDate:  event.DateString(),
		Location:   event.Location,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "registration confirmation not sent",
			"attendee_id", attendee.ID, "event_id", event.ID, "err", err)
	}
}

func (s *attendeeService) List(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	attendees, err := s.attendeeRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	if attendees == nil {
		attendees = []*domain.Attendee{}
	}
	return attendees, nil
}

func (s *attendeeService) Remove(ctx context.Context, attendeeID string) (*domain.Attendee, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var removed *domain.Attendee
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.attendeeRepo.GetByID(ctx, attendeeID)
		if err != nil {
			return err
		}
		if err := s.attendeeRepo.Delete(ctx, a.ID); err != nil {
			return err
		}
		if err := s.eventRepo.DecrementTicketsSold(ctx, a.EventID); err != nil {
			return fmt.Errorf("free ticket for event %s: %w", a.EventID, err)
		}
		removed = a
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("remove attendee: %w", err)
	}
	return removed, nil
}
