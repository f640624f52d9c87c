package services

import (
	"context"
	"fmt"
	"time"

	"eventregistration/internal/domain"
)

type reportService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	contextTimeout time.Duration
}

func NewReportService(eventRepo domain.EventRepository, attendeeRepo domain.AttendeeRepository, timeout time.Duration) domain.ReportService {
	return &reportService{eventRepo: eventRepo, attendeeRepo: attendeeRepo, contextTimeout: timeout}
}

func (s *reportService) Summary(ctx context.Context) (*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	attendees, err := s.attendeeRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}
	sold, err := s.eventRepo.SumTicketsSold(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum tickets sold: %w", err)
	}
	return &domain.Report{
		TotalEvents:      events,
		TotalAttendees:   attendees,
		TotalTicketsSold: sold,
	}, nil
}
