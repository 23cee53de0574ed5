// Package mail sends the rendered reports and alert messages over SMTP.
package mail

import (
	"github.com/pkg/errors"
	gomail "gopkg.in/gomail.v2"
)

// Settings holds the SMTP target for outgoing mail.
type Settings struct {
	Server   string
	Port     int
	Username string
	Password string
	To       string
	From     string // defaults to Username when empty
}

// Sender delivers messages through a single SMTP account.
type Sender struct {
	s Settings
	d *gomail.Dialer
}

// New returns a Sender for the given SMTP settings.
func New(s Settings) *Sender {
	if s.From == "" {
		s.From = s.Username
	}
	return &Sender{s: s, d: gomail.NewDialer(s.Server, s.Port, s.Username, s.Password)}
}

func (m *Sender) compose(subject string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.s.From)
	msg.SetHeader("To", m.s.To)
	msg.SetHeader("Subject", subject)
	return msg
}

// Send delivers a plain-text message.
func (m *Sender) Send(subject, body string) error {
	msg := m.compose(subject)
	msg.SetBody("text/plain", body)
	return errors.Wrapf(m.d.DialAndSend(msg), "sending %q to %s", subject, m.s.To)
}

// SendHTML delivers an HTML message with a plain-text alternative.
func (m *Sender) SendHTML(subject, plain, html string) error {
	msg := m.compose(subject)
	msg.SetBody("text/plain", plain)
	msg.AddAlternative("text/html", html)
	return errors.Wrapf(m.d.DialAndSend(msg), "sending %q to %s", subject, m.s.To)
}
