package domain

import (
	"context"
	"errors"
	"strings"
)

// Markers recognized by Render. Unknown markers pass through verbatim.
const (
	MarkerItemName   = "{{itemName}}"
	MarkerBuyerEmail = "{{buyerEmail}}"
)

// DefaultItemName is substituted when the notification carries no item name.
const DefaultItemName = "Digital Product"

// ErrUnavailable indicates the remote template could not be fetched.
// The cache is left unpopulated so a later request may retry.
var ErrUnavailable = errors.New("email template unavailable")

// Provider resolves the current email template, from cache when possible.
type Provider interface {
	Template(ctx context.Context) (string, error)
}

// Store is a single-slot, set-once cache for the template string.
// The first successful Set wins for the lifetime of the process.
type Store interface {
	Get() (string, bool)
	Set(value string)
}

// Render substitutes every occurrence of both markers.
func Render(tpl, itemName, buyerEmail string) string {
	out := strings.ReplaceAll(tpl, MarkerItemName, itemName)
	return strings.ReplaceAll(out, MarkerBuyerEmail, buyerEmail)
}
