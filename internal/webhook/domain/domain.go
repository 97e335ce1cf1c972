package domain

import (
	"context"
	"fmt"
)

// EventPaymentCaptureCompleted is the only event type this relay acts on.
// Every other type is acknowledged and ignored.
const EventPaymentCaptureCompleted = "PAYMENT.CAPTURE.COMPLETED"

// IncomingEvent is the PayPal-shaped notification payload. Only the
// fields the relay reads are modeled; everything else is discarded.
type IncomingEvent struct {
	EventType string   `json:"event_type"`
	Resource  Resource `json:"resource"`
}

type Resource struct {
	Payer         Payer          `json:"payer"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

type Payer struct {
	EmailAddress string `json:"email_address"`
}

type PurchaseUnit struct {
	Items []Item `json:"items"`
}

type Item struct {
	Name string `json:"name"`
}

// ExtractedOrder is the request-scoped result of validation.
type ExtractedOrder struct {
	BuyerEmail string `validate:"required"`
	ItemName   string
}

// Order derives the buyer/item fields. A missing item name at any path
// segment falls back to the default; a missing buyer email is left
// empty for the validator to reject.
func (e IncomingEvent) Order(defaultItemName string) ExtractedOrder {
	o := ExtractedOrder{
		BuyerEmail: e.Resource.Payer.EmailAddress,
		ItemName:   defaultItemName,
	}
	if len(e.Resource.PurchaseUnits) > 0 {
		items := e.Resource.PurchaseUnits[0].Items
		if len(items) > 0 && items[0].Name != "" {
			o.ItemName = items[0].Name
		}
	}
	return o
}

// Outcome is the result of a processed notification. Either Ignored is
// true, or the email was dispatched and ProviderID carries the
// provider-assigned identifier.
type Outcome struct {
	Ignored    bool
	BuyerEmail string
	ItemName   string
	ProviderID string
}

// ErrorKind classifies request failures for the HTTP boundary.
type ErrorKind string

const (
	KindMalformedPayload    ErrorKind = "malformed_payload"
	KindMissingBuyerEmail   ErrorKind = "missing_buyer_email"
	KindTemplateUnavailable ErrorKind = "template_unavailable"
	KindMissingCredential   ErrorKind = "missing_credential"
	KindDispatchRejected    ErrorKind = "dispatch_rejected"
	KindInternal            ErrorKind = "internal"
)

// Error is a classified processing failure. The wrapped cause is for
// diagnostic logging only and never reaches the caller.
type Error struct {
	Kind ErrorKind
	err  error
}

func E(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, err: err}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.err }

// Service processes a raw webhook body end to end.
type Service interface {
	Process(ctx context.Context, body []byte) (Outcome, error)
}
