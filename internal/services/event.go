package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

// User-facing messages for rejected event input.
const (
	MsgTitleRequired     = "Title is required."
	MsgInvalidDate       = "Invalid date. Use YYYY-MM-DD or similar."
	MsgInvalidCapacity   = "Capacity must be a whole number, zero or more."
	MsgInvalidSearchDate = "Invalid date format for search. Use YYYY-MM-DD or natural language."
)

type eventService struct {
	eventRepo      domain.EventRepository
	dates          domain.DateParser
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, dates domain.DateParser, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		dates:          dates,
		contextTimeout: timeout,
	}
}

func (s *eventService) List(ctx context.Context, query, date string) (*domain.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	result := &domain.SearchResult{}
	filter := domain.EventFilter{Title: strings.TrimSpace(query)}
	if d := strings.TrimSpace(date); d != "" {
		parsed, err := s.dates.Parse(d)
		if err != nil {
			result.Warning = MsgInvalidSearchDate
		} else {
			filter.Date = &parsed
		}
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	result.Events = events
	return result, nil
}

func (s *eventService) Create(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	fields, err := s.parseInput(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	event := domain.NewEvent(fields.Title, fields.Description, fields.Date, fields.Location, fields.Capacity, now, now)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, in domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	fields, err := s.parseInput(in)
	if err != nil {
		return nil, err
	}

	// tickets_sold is kept even when the new capacity is below it.
	event.Title = fields.Title
	event.Description = fields.Description
	event.Date = fields.Date
	event.Location = fields.Location
	event.Capacity = fields.Capacity
	event.UpdatedAt = time.Now().UTC()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// parseInput validates raw form fields. Nothing is written when it fails.
func (s *eventService) parseInput(in domain.EventInput) (*domain.Event, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.NewValidationError("title", MsgTitleRequired)
	}
	date, err := s.dates.Parse(in.Date)
	if err != nil {
		return nil, domain.NewValidationError("date", MsgInvalidDate)
	}
	capacity, err := parseCapacity(in.Capacity)
	if err != nil {
		return nil, domain.NewValidationError("capacity", MsgInvalidCapacity)
	}
	return &domain.Event{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		Location:    strings.TrimSpace(in.Location),
		Capacity:    capacity,
	}, nil
}

// parseCapacity treats blank as 0 and rejects non-numeric or negative values.
func parseCapacity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative capacity %d", n)
	}
	return n, nil
}
