package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"eventregistration/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeEventRepo is an in-memory EventRepository for tests.
// It hands out copies so services cannot mutate stored state behind its back.
type fakeEventRepo struct {
	byID       map[string]*domain.Event
	nextID     int
	lastFilter domain.EventFilter
	createErr  error // if set, Create returns this error
	createdN   int   // successful creates; failAfter counts against it
	failAfter  int   // if > 0, Create fails once createdN reaches it
	incErr     error // if set, IncrementTicketsSold returns this error
	listErr    error
	countErr   error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	c := *e
	f.byID[e.ID] = &c
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.failAfter > 0 && f.createdN >= f.failAfter {
		return errors.New("disk full")
	}
	f.createdN++
	f.add(e)
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		c := *e
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.byID {
		if filter.Title != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(filter.Title)) {
			continue
		}
		if filter.Date != nil && !e.Date.Equal(*filter.Date) {
			continue
		}
		c := *e
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *e
	f.byID[e.ID] = &c
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) IncrementTicketsSold(ctx context.Context, id string) error {
	if f.incErr != nil {
		return f.incErr
	}
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if e.TicketsSold >= e.Capacity {
		return domain.ErrCapacityReached
	}
	e.TicketsSold++
	return nil
}

func (f *fakeEventRepo) DecrementTicketsSold(ctx context.Context, id string) error {
	e, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if e.TicketsSold > 0 {
		e.TicketsSold--
	}
	return nil
}

func (f *fakeEventRepo) Count(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return len(f.byID), nil
}

func (f *fakeEventRepo) SumTicketsSold(ctx context.Context) (int, error) {
	total := 0
	for _, e := range f.byID {
		total += e.TicketsSold
	}
	return total, nil
}

// fakeAttendeeRepo is an in-memory AttendeeRepository for tests.
type fakeAttendeeRepo struct {
	byID      map[string]*domain.Attendee
	nextID    int
	createErr error
}

func newFakeAttendeeRepo() *fakeAttendeeRepo {
	return &fakeAttendeeRepo{byID: make(map[string]*domain.Attendee), nextID: 1}
}

func (f *fakeAttendeeRepo) Create(ctx context.Context, a *domain.Attendee) error {
	if f.createErr != nil {
		return f.createErr
	}
	a.ID = fmt.Sprintf("att-%d", f.nextID)
	f.nextID++
	c := *a
	f.byID[a.ID] = &c
	return nil
}

func (f *fakeAttendeeRepo) GetByID(ctx context.Context, id string) (*domain.Attendee, error) {
	if a, ok := f.byID[id]; ok {
		c := *a
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAttendeeRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	var out []*domain.Attendee
	for _, a := range f.byID {
		if a.EventID == eventID {
			c := *a
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return out, nil
}

func (f *fakeAttendeeRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAttendeeRepo) Count(ctx context.Context) (int, error) {
	return len(f.byID), nil
}

// fakeTx runs fn directly. Atomicity is covered by the sqlite store tests.
type fakeTx struct {
	calls int
	err   error
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

// isoDates accepts YYYY-MM-DD only.
type isoDates struct{}

func (isoDates) Parse(s string) (time.Time, error) {
	return time.ParseInLocation(domain.DateLayout, strings.TrimSpace(s), time.UTC)
}

func mustDate(s string) time.Time {
	t, err := time.ParseInLocation(domain.DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

type fakeEmailService struct {
	sent []*domain.RegistrationEmailData
	err  error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, data *domain.RegistrationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
