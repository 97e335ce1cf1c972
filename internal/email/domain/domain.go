package domain

import (
	"context"
	"errors"
	"fmt"
)

// Message is a fully rendered email ready for dispatch.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender submits a rendered email to a provider and returns the
// provider-assigned message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (id string, err error)
}

// ErrNotConfigured indicates a missing provider credential or sender
// identity. It is detected before any network call is attempted.
var ErrNotConfigured = errors.New("email sender not configured")

// RejectedError carries the provider's response for diagnostic logging.
// The raw Body must never be surfaced to the webhook caller.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("email provider rejected send: status %d", e.StatusCode)
}
