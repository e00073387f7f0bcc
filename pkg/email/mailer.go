package email

import (
	"github.com/go-mail/mail"
)

// NewDialer returns an SMTP dialer. Credentials are optional for local relays.
func NewDialer(host string, port int, username string, password string) *mail.Dialer {
	return mail.NewDialer(host, port, username, password)
}

func NewMailer(dialer dialer, from string) *Mailer {
	return &Mailer{dialer: dialer, from: from}
}

type dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type Mailer struct {
	dialer dialer
	from   string
}

// Send delivers an HTML mail.
func (m Mailer) Send(to string, subject string, body string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	return m.dialer.DialAndSend(msg)
}
