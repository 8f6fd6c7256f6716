// Package mail delivers transactional email, currently just workspace
// invitations. The Mailer interface keeps handlers independent of delivery:
// production uses SMTP, tests and local development use the log mailer.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net"
	"net/smtp"

	"github.com/rs/zerolog"
)

// Mailer sends a single message to one recipient.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Invitation is the data rendered into the invitation email.
type Invitation struct {
	WorkspaceName string
	InviterName   string
	AcceptURL     string
	ExpiresInDays int
}

var invitationTmpl = template.Must(template.New("invitation").Parse(`<html>
<body>
  <p>{{.InviterName}} invited you to join the <strong>{{.WorkspaceName}}</strong> workspace.</p>
  <p><a href="{{.AcceptURL}}">Accept the invitation</a></p>
  <p>The link expires in {{.ExpiresInDays}} days.</p>
</body>
</html>`))

// RenderInvitation produces the HTML body for an invitation email.
func RenderInvitation(inv Invitation) (string, error) {
	var buf bytes.Buffer
	if err := invitationTmpl.Execute(&buf, inv); err != nil {
		return "", fmt.Errorf("failed to render invitation: %w", err)
	}
	return buf.String(), nil
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer configures delivery through the relay at addr (host:port).
// username may be empty for relays that accept unauthenticated mail.
func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	m := &SMTPMailer{addr: addr, from: from}
	if username != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		m.auth = smtp.PlainAuth("", username, password, host)
	}
	return m
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.from, to, subject, htmlBody)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// LogMailer records outgoing mail instead of delivering it.
type LogMailer struct {
	log zerolog.Logger

	// Sent collects messages for test assertions.
	Sent []SentMessage
}

// SentMessage is one message captured by LogMailer.
type SentMessage struct {
	To      string
	Subject string
	Body    string
}

// NewLogMailer returns a mailer that logs instead of sending.
func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.Sent = append(m.Sent, SentMessage{To: to, Subject: subject, Body: htmlBody})
	m.log.Info().Str("to", to).Str("subject", subject).Msg("mail suppressed (log mailer)")
	return nil
}
