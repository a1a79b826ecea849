package mail

import (
	"campus_voice_backend/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"

	gomail "gopkg.in/mail.v2"
)

//go:generate mockgen -source=mailer.go -destination=mocks/mailer_mock.go -package=mocks Mailer

var ErrMailDisabled = errors.New("mail: delivery disabled")

// Message is a plain-text e-mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, msg Message) error
}

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPMailer struct {
	cfg    config.MailConfig
	dialer dialer
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	m := &SMTPMailer{cfg: cfg}
	if cfg.Enabled && cfg.Host != "" {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *SMTPMailer) Enabled() bool {
	return m.cfg.Enabled && m.dialer != nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if !m.Enabled() {
		return ErrMailDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("mail: recipient is required")
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.cfg.FromAddress, m.cfg.FromName)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("mail: send to %s: %w", msg.To, err)
	}
	return nil
}
