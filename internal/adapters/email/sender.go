package email

import (
	"context"
	"time"
)

// Attachment is a file attached to an outgoing email (QR codes).
type Attachment struct {
	Filename string
	Content  []byte
}

// SendRequest describes one outgoing email.
type SendRequest struct {
	To          []string // Recipient email addresses
	From        string   // Sender address (e.g. "attendci <noreply@attendci.example>")
	Subject     string
	HTML        string // HTML body
	ReplyTo     string // Reply-to address
	Attachments []Attachment
}

// SendResult contains the response from the email provider.
type SendResult struct {
	MessageID string    // Provider's message ID for tracking
	SentAt    time.Time // When the send was accepted
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
