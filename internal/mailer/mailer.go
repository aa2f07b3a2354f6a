package mailer

import (
	"gopkg.in/gomail.v2"

	"fleet-manager-backend/config"
)

// Message is a single outbound email. AttachmentPath, when set, names a file
// to attach.
type Message struct {
	To             string
	Subject        string
	Body           string
	AttachmentPath string
}

// Sender defines the interface for sending an email.
type Sender interface {
	Send(msg Message) error
}

// SMTPSender is a real implementation of Sender using gomail.
type SMTPSender struct {
	from   string
	dialer *gomail.Dialer
}

// NewSMTPSender creates an SMTP-backed sender from config.
func NewSMTPSender(cfg *config.MailerConfig) *SMTPSender {
	return &SMTPSender{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

// Send delivers a single message over SMTP.
func (s *SMTPSender) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.AttachmentPath != "" {
		m.Attach(msg.AttachmentPath)
	}
	return s.dialer.DialAndSend(m)
}
