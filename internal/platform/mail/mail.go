// Package mail は確認メール・アラート通知のSMTP送信を提供します。
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"os"
)

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// LoadConfig loads SMTP settings from environment variables.
// An empty SMTP_HOST means mail delivery is disabled; use NewFromConfig
// to get a no-op mailer in that case.
func LoadConfig() Config {
	return Config{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SMTPMailer sends plain-text mail over SMTP with optional PLAIN auth.
type SMTPMailer struct {
	cfg  Config
	send sendFunc
}

// sendFunc matches smtp.SendMail, injectable for tests.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// NewSMTPMailer creates a new SMTPMailer with the given config.
func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// Send delivers a plain-text message to a single recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.cfg.From, to, subject, body)

	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// NoopMailer discards all mail and logs the drop.
// Used in local development when no SMTP server is configured.
type NoopMailer struct{}

// Send logs the discarded message and returns nil.
func (NoopMailer) Send(ctx context.Context, to, subject, body string) error {
	slog.Info("mail delivery disabled, dropping message", "to", to, "subject", subject)
	return nil
}

// Mailer is the common send interface implemented by SMTPMailer and NoopMailer.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewFromConfig returns an SMTPMailer when SMTP is configured, otherwise a NoopMailer.
func NewFromConfig(cfg Config) Mailer {
	if cfg.Host == "" {
		return NoopMailer{}
	}
	return NewSMTPMailer(cfg)
}
