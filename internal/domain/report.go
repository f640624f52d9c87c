package domain

import "context"

// Report aggregates counts across all events and attendees.
// swagger:model Report
type Report struct {
	TotalEvents      int `json:"total_events"`
	TotalAttendees   int `json:"total_attendees"`
	TotalTicketsSold int `json:"total_tickets_sold"`
}

// ReportService computes the aggregate report.
type ReportService interface {
	Summary(ctx context.Context) (*Report, error)
}
