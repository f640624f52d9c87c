package helpers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash_RoundTrip(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/events/new", nil)
	RedirectWithFlash(rr, req, "/events", FlashSuccess, "Event created.")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/events", rr.Header().Get("Location"))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)

	next := httptest.NewRequest(http.MethodGet, "/events", nil)
	next.AddCookie(cookies[0])
	rr2 := httptest.NewRecorder()
	f := PopFlash(rr2, next)
	require.NotNil(t, f)
	assert.Equal(t, FlashSuccess, f.Kind)
	assert.Equal(t, "Event created.", f.Message)

	cleared := rr2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestPopFlash_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"not base64", &http.Cookie{Name: flashCookie, Value: "%%%"}},
		{"no separator", &http.Cookie{Name: flashCookie, Value: "c3VjY2Vzcw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			assert.Nil(t, PopFlash(httptest.NewRecorder(), req))
		})
	}
}

func TestPopFlash_UnknownKindBecomesWarning(t *testing.T) {
	rr := httptest.NewRecorder()
	SetFlash(rr, "info", "hello")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rr.Result().Cookies()[0])

	f := PopFlash(httptest.NewRecorder(), req)
	require.NotNil(t, f)
	assert.Equal(t, FlashWarning, f.Kind)
}
