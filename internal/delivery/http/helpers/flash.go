package helpers

import (
	"encoding/base64"
	"net/http"
	"strings"
)

// Flash kinds, matching the alert styles in the layout.
const (
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

const flashCookie = "flash"

// Flash is a one-shot message carried across a redirect.
type Flash struct {
	Kind    string
	Message string
}

// SetFlash stores a flash message for the next request.
func SetFlash(w http.ResponseWriter, kind, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(kind + "\n" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending flash message, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) *Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(string(raw), "\n")
	if !ok || message == "" {
		return nil
	}
	switch kind {
	case FlashSuccess, FlashWarning, FlashDanger:
	default:
		kind = FlashWarning
	}
	return &Flash{Kind: kind, Message: message}
}

// RedirectWithFlash sets a flash message and answers with 303 See Other.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, url, kind, message string) {
	SetFlash(w, kind, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}
