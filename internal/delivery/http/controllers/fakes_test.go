package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/delivery/http/views"
	"eventregistration/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	eventID    = "6f1c2a1e-3b7d-4d2b-9a55-0b8c3a7f0e01"
	attendeeID = "0c9e5d4a-8f21-4b6e-a3d7-5e2f1b9c8a02"
)

func newViews(t *testing.T) *views.Renderer {
	t.Helper()
	v, err := views.New()
	require.NoError(t, err)
	return v
}

// flashFrom replays the response cookies into a new request and pops the flash message.
func flashFrom(rr *httptest.ResponseRecorder) *helpers.Flash {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return helpers.PopFlash(httptest.NewRecorder(), req)
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	listResult *domain.SearchResult
	listErr    error
	lastQuery  string
	lastDate   string
	createErr  error
	lastCreate domain.EventInput
	updateErr  error
	lastUpdate domain.EventInput
	lastID     string
	deleteErr  error
	getResult  *domain.Event
	getErr     error
}

func (f *fakeEventService) List(ctx context.Context, query, date string) (*domain.SearchResult, error) {
	f.lastQuery, f.lastDate = query, date
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.listResult == nil {
		return &domain.SearchResult{Events: []*domain.Event{}}, nil
	}
	return f.listResult, nil
}

func (f *fakeEventService) Create(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	f.lastCreate = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Event{ID: eventID, Title: in.Title}, nil
}

func (f *fakeEventService) Update(ctx context.Context, id string, in domain.EventInput) (*domain.Event, error) {
	f.lastID, f.lastUpdate = id, in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &domain.Event{ID: id, Title: in.Title}, nil
}

func (f *fakeEventService) Delete(ctx context.Context, id string) error {
	f.lastID = id
	return f.deleteErr
}

func (f *fakeEventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getResult == nil {
		return nil, domain.ErrNotFound
	}
	return f.getResult, nil
}

// fakeAttendeeService implements domain.AttendeeService for handler tests.
type fakeAttendeeService struct {
	registerErr   error
	lastEventID   string
	lastInput     domain.AttendeeInput
	listResult    []*domain.Attendee
	listErr       error
	removeResult  *domain.Attendee
	removeErr     error
	lastRemovedID string
}

func (f *fakeAttendeeService) Register(ctx context.Context, eventID string, in domain.AttendeeInput) (*domain.Attendee, error) {
	f.lastEventID, f.lastInput = eventID, in
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &domain.Attendee{ID: attendeeID, EventID: eventID, Name: in.Name}, nil
}

func (f *fakeAttendeeService) List(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	f.lastEventID = eventID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listResult, nil
}

func (f *fakeAttendeeService) Remove(ctx context.Context, id string) (*domain.Attendee, error) {
	f.lastRemovedID = id
	if f.removeErr != nil {
		return nil, f.removeErr
	}
	return f.removeResult, nil
}

type fakeImportService struct {
	count    int
	err      error
	received string
}

func (f *fakeImportService) Import(ctx context.Context, r io.Reader) (int, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	f.received = string(b)
	return f.count, f.err
}

type fakeReportService struct {
	report *domain.Report
	err    error
}

func (f *fakeReportService) Summary(ctx context.Context) (*domain.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}
