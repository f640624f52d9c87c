package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventregistration/internal/delivery/http/helpers"
	"eventregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if data != nil && envelope.Error == nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope.Error
}

func TestAPIController_ListEvents(t *testing.T) {
	events := &fakeEventService{listResult: &domain.SearchResult{
		Events:  []*domain.Event{{ID: eventID, Title: "GopherCon", Capacity: 5}},
		Warning: "Invalid date format for search.",
	}}
	ctrl := NewAPIController(testLogger, events, &fakeAttendeeService{}, &fakeReportService{})
	rr := httptest.NewRecorder()
	ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "http://test/api/events?q=go&date=bad", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.SearchResult
	assert.Nil(t, decodeEnvelope(t, rr, &got))
	require.Len(t, got.Events, 1)
	assert.Equal(t, "GopherCon", got.Events[0].Title)
	assert.Equal(t, "Invalid date format for search.", got.Warning)
	assert.Equal(t, "go", events.lastQuery)
	assert.Equal(t, "bad", events.lastDate)
}

func TestAPIController_GetEvent(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		fake     *fakeEventService
		wantCode int
		wantErr  string
	}{
		{"success", eventID, &fakeEventService{getResult: &domain.Event{ID: eventID, Title: "GopherCon"}}, http.StatusOK, ""},
		{"missing id", "", &fakeEventService{}, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"invalid id", "42", &fakeEventService{}, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"not found", eventID, &fakeEventService{}, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"service error", eventID, &fakeEventService{getErr: errors.New("db down")}, http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAPIController(testLogger, tt.fake, &fakeAttendeeService{}, &fakeReportService{})
			req := httptest.NewRequest(http.MethodGet, "http://test/api/events/"+tt.id, nil)
			if tt.id != "" {
				req.SetPathValue("id", tt.id)
			}
			rr := httptest.NewRecorder()
			ctrl.GetEvent(rr, req)

			require.Equal(t, tt.wantCode, rr.Code)
			var got domain.Event
			apiErr := decodeEnvelope(t, rr, &got)
			if tt.wantErr == "" {
				require.Nil(t, apiErr)
				assert.Equal(t, "GopherCon", got.Title)
				return
			}
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantErr, apiErr.Code)
			assert.NotContains(t, apiErr.Message, "db down")
		})
	}
}

func TestAPIController_ListAttendees(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fake := &fakeAttendeeService{listResult: []*domain.Attendee{{ID: attendeeID, Name: "Alice", EventID: eventID}}}
		ctrl := NewAPIController(testLogger, &fakeEventService{}, fake, &fakeReportService{})
		req := httptest.NewRequest(http.MethodGet, "http://test/api/events/"+eventID+"/attendees", nil)
		req.SetPathValue("id", eventID)
		rr := httptest.NewRecorder()
		ctrl.ListAttendees(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got []*domain.Attendee
		assert.Nil(t, decodeEnvelope(t, rr, &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Alice", got[0].Name)
		assert.Equal(t, eventID, fake.lastEventID)
	})

	t.Run("event not found", func(t *testing.T) {
		fake := &fakeAttendeeService{listErr: domain.ErrNotFound}
		ctrl := NewAPIController(testLogger, &fakeEventService{}, fake, &fakeReportService{})
		req := httptest.NewRequest(http.MethodGet, "http://test/api/events/"+eventID+"/attendees", nil)
		req.SetPathValue("id", eventID)
		rr := httptest.NewRecorder()
		ctrl.ListAttendees(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		apiErr := decodeEnvelope(t, rr, nil)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeNotFound, apiErr.Code)
	})
}

func TestAPIController_Report(t *testing.T) {
	fake := &fakeReportService{report: &domain.Report{TotalEvents: 2, TotalAttendees: 3, TotalTicketsSold: 3}}
	ctrl := NewAPIController(testLogger, &fakeEventService{}, &fakeAttendeeService{}, fake)
	rr := httptest.NewRecorder()
	ctrl.Report(rr, httptest.NewRequest(http.MethodGet, "http://test/api/report", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got domain.Report
	assert.Nil(t, decodeEnvelope(t, rr, &got))
	assert.Equal(t, domain.Report{TotalEvents: 2, TotalAttendees: 3, TotalTicketsSold: 3}, got)
}
