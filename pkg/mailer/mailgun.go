package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends an email. html is optional; if provided it is used as the HTML
// body. bcc recipients are blind-copied; when to is empty the message is
// addressed to the sender itself so broadcasts expose only the BCC list.
func (m *Mailgun) Send(ctx context.Context, to string, bcc []string, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	if to == "" {
		to = m.Sender
	}
	msg := client.NewMessage(m.Sender, subject, text, to)
	for _, addr := range bcc {
		msg.AddBCC(addr)
	}
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
