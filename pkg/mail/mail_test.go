package mail

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderInvitation(t *testing.T) {
	body, err := RenderInvitation(Invitation{
		WorkspaceName: "Acme",
		InviterName:   "Dana",
		AcceptURL:     "https://app.example.com/invite?token=abc",
		ExpiresInDays: 7,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "Dana")
	assert.Contains(t, body, "https://app.example.com/invite?token=abc")
	assert.Contains(t, body, "7 days")
}

func TestRenderInvitationEscapesHTML(t *testing.T) {
	body, err := RenderInvitation(Invitation{
		WorkspaceName: "<script>alert(1)</script>",
		InviterName:   "Dana",
		AcceptURL:     "https://app.example.com/invite",
		ExpiresInDays: 7,
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestLogMailerCaptures(t *testing.T) {
	m := NewLogMailer(zerolog.Nop())
	require.NoError(t, m.Send(context.Background(), "a@example.com", "hi", "<p>hello</p>"))
	require.Len(t, m.Sent, 1)
	assert.Equal(t, "a@example.com", m.Sent[0].To)
	assert.Equal(t, "hi", m.Sent[0].Subject)
}

func TestNewSMTPMailerAuth(t *testing.T) {
	m := NewSMTPMailer("smtp.example.com:587", "noreply@example.com", "user", "secret")
	assert.NotNil(t, m.auth)

	// no credentials, no auth
	m = NewSMTPMailer("smtp.example.com:587", "noreply@example.com", "", "")
	assert.Nil(t, m.auth)

	// a bare host without a port still yields working auth
	m = NewSMTPMailer("smtp.example.com", "noreply@example.com", "user", "secret")
	assert.NotNil(t, m.auth)
}
