package digest

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// SMTPMailer sends digests through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	host string
	from string
	auth smtp.Auth
}

// NewSMTPMailer configures the relay. addr is host:port; user may be
// empty for relays without authentication.
func NewSMTPMailer(addr, host, user, password, from string) *SMTPMailer {
	m := &SMTPMailer{addr: addr, host: host, from: from}

	if user != "" {
		m.auth = smtp.PlainAuth("", user, password, host)
	}

	return m
}

func (m *SMTPMailer) Send(to, subject string, body []byte) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = body

	if err := e.Send(m.addr, m.auth); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	return nil
}
