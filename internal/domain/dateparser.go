package domain

import "time"

// DateParser converts free-text date strings into calendar dates.
// Implementations return a date at midnight UTC, or an error when s cannot be understood.
type DateParser interface {
	Parse(s string) (time.Time, error)
}
