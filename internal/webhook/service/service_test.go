package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowcart/relay/internal/config"
	edomain "github.com/willowcart/relay/internal/email/domain"
	evdomain "github.com/willowcart/relay/internal/events/domain"
	tdomain "github.com/willowcart/relay/internal/template/domain"
	"github.com/willowcart/relay/internal/webhook/domain"
)

type stubTemplates struct {
	tpl string
	err error
}

func (s *stubTemplates) Template(ctx context.Context) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.tpl, nil
}

type stubSender struct {
	id  string
	err error
}

func (s *stubSender) Send(ctx context.Context, msg edomain.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.id, nil
}

type recordingPublisher struct {
	events []evdomain.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, e evdomain.Event) error {
	p.events = append(p.events, e)
	return nil
}

func TestProcess_PublishesAuditEventPerOutcome(t *testing.T) {
	okBody := `{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"payer":{"email_address":"a@b.com"}}}`

	cases := map[string]struct {
		body       string
		templates  *stubTemplates
		sender     *stubSender
		wantType   string
		wantReason string
	}{
		"sent": {
			body:      okBody,
			templates: &stubTemplates{tpl: "x"},
			sender:    &stubSender{id: "em_1"},
			wantType:  "relay.email.sent",
		},
		"ignored": {
			body:      `{"event_type":"PAYMENT.CAPTURE.DENIED","resource":{}}`,
			templates: &stubTemplates{tpl: "x"},
			sender:    &stubSender{id: "em_1"},
			wantType:  "relay.event.ignored",
		},
		"malformed": {
			body:       "{not json",
			templates:  &stubTemplates{tpl: "x"},
			sender:     &stubSender{id: "em_1"},
			wantType:   "relay.event.rejected",
			wantReason: "malformed_payload",
		},
		"missing email": {
			body:       `{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{}}`,
			templates:  &stubTemplates{tpl: "x"},
			sender:     &stubSender{id: "em_1"},
			wantType:   "relay.event.rejected",
			wantReason: "missing_buyer_email",
		},
		"template unavailable": {
			body:       okBody,
			templates:  &stubTemplates{err: tdomain.ErrUnavailable},
			sender:     &stubSender{id: "em_1"},
			wantType:   "relay.event.rejected",
			wantReason: "template_unavailable",
		},
		"missing credential": {
			body:       okBody,
			templates:  &stubTemplates{tpl: "x"},
			sender:     &stubSender{err: edomain.ErrNotConfigured},
			wantType:   "relay.event.rejected",
			wantReason: "missing_credential",
		},
		"dispatch rejected": {
			body:       okBody,
			templates:  &stubTemplates{tpl: "x"},
			sender:     &stubSender{err: &edomain.RejectedError{StatusCode: 502, Body: "bad gateway"}},
			wantType:   "relay.event.rejected",
			wantReason: "dispatch_rejected",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			pub := &recordingPublisher{}
			s := New(config.Config{EmailFrom: "orders@local.dev"}, tc.templates, tc.sender, pub)

			_, _ = s.Process(context.Background(), []byte(tc.body))

			require.Len(t, pub.events, 1, "every outcome must publish exactly one audit event")
			assert.Equal(t, tc.wantType, pub.events[0].Type)
			if tc.wantReason != "" {
				assert.Equal(t, tc.wantReason, pub.events[0].Meta["reason"])
			}
		})
	}
}

func TestDecodeEvent_RawObject(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"event_type":"PAYMENT.CAPTURE.COMPLETED","resource":{"payer":{"email_address":"a@b.com"}}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.EventPaymentCaptureCompleted, ev.EventType)
	assert.Equal(t, "a@b.com", ev.Resource.Payer.EmailAddress)
}

func TestDecodeEvent_DoubleEncodedString(t *testing.T) {
	ev, err := decodeEvent([]byte(`"{\"event_type\":\"CHECKOUT.ORDER.APPROVED\",\"resource\":{}}"`))
	require.NoError(t, err)
	assert.Equal(t, "CHECKOUT.ORDER.APPROVED", ev.EventType)
}

func TestDecodeEvent_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"whitespace":       "   ",
		"truncated":        `{"event_type":`,
		"array":            `[{"event_type":"x"}]`,
		"string not json":  `"hello there"`,
		"unterminated str": `"{\"event_type\"`,
	}
	for name, body := range cases {
		_, err := decodeEvent([]byte(body))
		assert.Error(t, err, name)
	}
}

func TestDecodeEvent_UnknownFieldsDiscarded(t *testing.T) {
	ev, err := decodeEvent([]byte(`{"event_type":"X","id":"WH-1","summary":"Payment done","resource":{"amount":{"value":"9.99"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "X", ev.EventType)
}
