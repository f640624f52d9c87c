// Package dateparser adapts github.com/araddon/dateparse to domain.DateParser.
package dateparser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"eventregistration/internal/domain"
)

// ErrEmptyDate is returned for blank input.
var ErrEmptyDate = errors.New("empty date")

type parser struct {
	loc *time.Location
}

// New returns a DateParser that accepts ISO dates and the common formats dateparse understands.
// Inputs without a zone are read in UTC; the result is always midnight UTC of the calendar date.
func New() domain.DateParser {
	return &parser{loc: time.UTC}
}

func (p *parser) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrEmptyDate
	}
	// ISO dates are the common case and must never be reinterpreted.
	if t, err := time.ParseInLocation(domain.DateLayout, s, p.loc); err == nil {
		return t, nil
	}
	t, err := dateparse.ParseIn(s, p.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
