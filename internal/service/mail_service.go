package service

import (
	"fmt"
	"net/smtp"
	"rizhub_backend/internal/config"
)

// Mailer sends a single plain-text message. Notification delivery is best
// effort, so implementations should fail fast instead of retrying.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer talks plain SMTP with AUTH. Good enough for a school deployment
// behind a relay; anything fancier belongs in the relay.
type SMTPMailer struct {
	cfg *config.EmailConfig
}

func NewSMTPMailer(cfg *config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s\r\n",
		m.cfg.From, to, subject, body))

	return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
}
