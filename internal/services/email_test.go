package services

import (
	"context"
	"errors"
	"testing"

	"eventregistration/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, html, text})
	return nil
}

type fakeRenderer struct {
	name string
	err  error
}

func (r *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	r.name = templateName
	if r.err != nil {
		return "", "", "", r.err
	}
	d := data.(*domain.RegistrationEmailData)
	return "You're in: " + d.EventTitle, "<p>" + d.Name + "</p>", d.Name, nil
}

func TestEmailService_SendRegistrationConfirmation(t *testing.T) {
	data := &domain.RegistrationEmailData{Email: "alice@example.com", Name: "Alice", EventTitle: "GopherCon"}

	t.Run("renders and sends", func(t *testing.T) {
		mailer := &fakeMailer{}
		renderer := &fakeRenderer{}
		svc := NewEmailService(mailer, renderer, discardLogger())

		require.NoError(t, svc.SendRegistrationConfirmation(t.Context(), data))
		assert.Equal(t, "registration", renderer.name)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, sentMail{"alice@example.com", "You're in: GopherCon", "<p>Alice</p>", "Alice"}, mailer.sent[0])
	})

	t.Run("nil data", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{}, &fakeRenderer{}, discardLogger())
		assert.Error(t, svc.SendRegistrationConfirmation(t.Context(), nil))
	})

	t.Run("no recipient", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{}, discardLogger())
		assert.Error(t, svc.SendRegistrationConfirmation(t.Context(), &domain.RegistrationEmailData{Name: "x"}))
		assert.Empty(t, mailer.sent)
	})

	t.Run("render failure", func(t *testing.T) {
		mailer := &fakeMailer{}
		svc := NewEmailService(mailer, &fakeRenderer{err: errors.New("bad template")}, discardLogger())
		err := svc.SendRegistrationConfirmation(t.Context(), data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "render")
		assert.Empty(t, mailer.sent)
	})

	t.Run("send failure", func(t *testing.T) {
		svc := NewEmailService(&fakeMailer{err: errors.New("throttled")}, &fakeRenderer{}, discardLogger())
		err := svc.SendRegistrationConfirmation(t.Context(), data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "throttled")
	})
}
