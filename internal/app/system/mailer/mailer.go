// internal/app/system/mailer/mailer.go

// Package mailer is the SMTP delivery sink for the notification
// dispatcher. Delivery is best effort; the dispatcher logs failures and
// the workflow never waits on this package.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/notify"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Pass     string
	From     string
	FromName string
}

// Mailer sends notification events as plain-text email.
type Mailer struct {
	cfg Config
	log *zap.Logger

	// send is swappable for tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// New constructs a Mailer.
func New(cfg Config, log *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, log: log, send: smtp.SendMail}
}

// Deliver implements notify.Sink. Events without a recipient are skipped.
func (m *Mailer) Deliver(ctx context.Context, ev notify.Event) error {
	if ev.Recipient == "" {
		return nil
	}
	email, ok := Build(ev)
	if !ok {
		m.log.Debug("no mail template for event", zap.String("type", ev.Type))
		return nil
	}
	email.To = ev.Recipient

	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}
	msg := m.compose(email)
	return m.send(addr, auth, m.cfg.From, []string{email.To}, msg)
}

// Email is one outgoing message.
type Email struct {
	To       string
	Subject  string
	TextBody string
}

func (m *Mailer) compose(e Email) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From)
	fmt.Fprintf(&b, "To: %s\r\n", e.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", e.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(e.TextBody)
	return []byte(b.String())
}
