package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/willowcart/relay/internal/config"
	edomain "github.com/willowcart/relay/internal/email/domain"
	evdomain "github.com/willowcart/relay/internal/events/domain"
	"github.com/willowcart/relay/internal/logger"
	"github.com/willowcart/relay/internal/metrics"
	"github.com/willowcart/relay/internal/platform/validation"
	tdomain "github.com/willowcart/relay/internal/template/domain"
	"github.com/willowcart/relay/internal/webhook/domain"
)

// Ensure Service implements domain.Service
var _ domain.Service = (*Service)(nil)

// Service runs the three stages in strict order: validate/extract,
// resolve+render template, dispatch. No stage is retried.
type Service struct {
	cfg       config.Config
	templates tdomain.Provider
	sender    edomain.Sender
	pub       evdomain.Publisher
	log       zerolog.Logger
}

func New(cfg config.Config, templates tdomain.Provider, sender edomain.Sender, pub evdomain.Publisher) *Service {
	return &Service{
		cfg:       cfg,
		templates: templates,
		sender:    sender,
		pub:       pub,
		log:       logger.Nop(),
	}
}

func (s *Service) SetLogger(l zerolog.Logger) { s.log = l }

func (s *Service) Process(ctx context.Context, body []byte) (domain.Outcome, error) {
	ev, err := decodeEvent(body)
	if err != nil {
		return domain.Outcome{}, s.fail(ctx, domain.KindMalformedPayload, "malformed", err)
	}

	if ev.EventType != domain.EventPaymentCaptureCompleted {
		s.log.Debug().Str("event_type", ev.EventType).Msg("ignoring non-payment event")
		metrics.IncWebhookOutcome("ignored")
		_ = s.pub.Publish(ctx, evdomain.New("relay.event.ignored", map[string]string{
			"event_type": ev.EventType,
		}))
		return domain.Outcome{Ignored: true}, nil
	}

	order := ev.Order(tdomain.DefaultItemName)
	if err := validation.Struct(order); err != nil {
		return domain.Outcome{}, s.fail(ctx, domain.KindMissingBuyerEmail, "missing_email", err)
	}

	tpl, err := s.templates.Template(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("template fetch failed")
		return domain.Outcome{}, s.fail(ctx, domain.KindTemplateUnavailable, "template_unavailable", err)
	}
	html := tdomain.Render(tpl, order.ItemName, order.BuyerEmail)

	id, err := s.sender.Send(ctx, edomain.Message{
		From:    s.cfg.EmailFrom,
		To:      order.BuyerEmail,
		Subject: "Your purchase: " + order.ItemName,
		HTML:    html,
	})
	if err != nil {
		return domain.Outcome{}, s.classifyDispatch(ctx, err)
	}

	s.log.Info().Str("to", order.BuyerEmail).Str("item", order.ItemName).Str("provider_id", id).Msg("email dispatched")
	metrics.IncWebhookOutcome("sent")
	_ = s.pub.Publish(ctx, evdomain.New("relay.email.sent", map[string]string{
		"buyer_email": order.BuyerEmail,
		"item_name":   order.ItemName,
		"provider_id": id,
	}))

	return domain.Outcome{
		BuyerEmail: order.BuyerEmail,
		ItemName:   order.ItemName,
		ProviderID: id,
	}, nil
}

func (s *Service) classifyDispatch(ctx context.Context, err error) error {
	if errors.Is(err, edomain.ErrNotConfigured) {
		return s.fail(ctx, domain.KindMissingCredential, "not_configured", err)
	}
	var rej *edomain.RejectedError
	if errors.As(err, &rej) {
		s.log.Error().Int("status", rej.StatusCode).Str("body", rej.Body).Msg("provider rejected email")
		return s.fail(ctx, domain.KindDispatchRejected, "dispatch_failed", err)
	}
	s.log.Error().Err(err).Msg("email dispatch failed")
	return s.fail(ctx, domain.KindDispatchRejected, "dispatch_failed", err)
}

// fail records the outcome metric, publishes a rejection audit event,
// and wraps the cause with its kind.
func (s *Service) fail(ctx context.Context, kind domain.ErrorKind, outcome string, err error) error {
	metrics.IncWebhookOutcome(outcome)
	_ = s.pub.Publish(ctx, evdomain.New("relay.event.rejected", map[string]string{
		"reason": string(kind),
	}))
	return domain.E(kind, err)
}

// decodeEvent parses the raw body. Serverless adapters sometimes hand
// the JSON over double-encoded as a string; one level of unwrapping is
// tolerated.
func decodeEvent(body []byte) (domain.IncomingEvent, error) {
	var ev domain.IncomingEvent
	raw := bytes.TrimSpace(body)
	if len(raw) == 0 {
		return ev, fmt.Errorf("empty body")
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return ev, fmt.Errorf("decode string body: %w", err)
		}
		raw = []byte(inner)
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		return ev, fmt.Errorf("decode event: %w", err)
	}
	return ev, nil
}
