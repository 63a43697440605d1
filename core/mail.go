package core

import "net/mail"

type (
	EmailMessage struct {
		To          []mail.Address
		Subject     string
		TextContent string
		HTMLContent string
	}

	// EmailService is any service that can send emails
	EmailService interface {
		// SendMessages sends messages concurrently; failures are logged, not returned.
		SendMessages(messages ...*EmailMessage)

		// SendMessage sends a single message synchronously so callers can
		// report a per-recipient outcome.
		SendMessage(msg *EmailMessage) error
	}
)

func (m *EmailMessage) HasRecipients() bool { return len(m.To) > 0 }
func (m *EmailMessage) HasContent() bool    { return (m.TextContent != "") || (m.HTMLContent != "") }
