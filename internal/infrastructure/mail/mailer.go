package mail

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"kingflex/internal/config"
)

type Attachment struct {
	Path     string
	Filename string
}

// Mailer sends HTML mail through the configured SMTP server.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *Mailer) Send(to, subject, htmlBody string, attachments ...Attachment) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	for _, a := range attachments {
		if a.Filename != "" {
			msg.Attach(a.Path, gomail.Rename(a.Filename))
		} else {
			msg.Attach(a.Path)
		}
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending mail to %s: %w", to, err)
	}

	return nil
}
