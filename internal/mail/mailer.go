package mail

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends outbound mail. The return value of a send is logged by
// callers but otherwise unused; delivery is best effort.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	sender string
}

// NewSMTPMailer creates an SMTP-backed mailer.
func NewSMTPMailer(host string, port int, username, password, sender string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		sender: sender,
	}
}

// Send delivers a plain-text message to a single recipient.
func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}
