package service

import (
	"context"
	"testing"

	"github.com/willowcart/relay/internal/config"
	edomain "github.com/willowcart/relay/internal/email/domain"
	"github.com/willowcart/relay/internal/logger"
)

type captureSender struct {
	called bool
	last   edomain.Message
}

func (c *captureSender) Send(ctx context.Context, msg edomain.Message) (string, error) {
	c.called = true
	c.last = msg
	return "cap_1", nil
}

var _ edomain.Sender = (*captureSender)(nil)

func newCapturedRouter(provider string) (*Router, *captureSender, *captureSender, *captureSender) {
	cfg := config.Config{EmailProvider: provider}
	r := NewRouter(cfg, logger.Nop())
	// swap implementations with captures so we don't hit network
	resendCap := &captureSender{}
	smtpCap := &captureSender{}
	logCap := &captureSender{}
	r.resend = resendCap
	r.smtp = smtpCap
	r.devlog = logCap
	return r, resendCap, smtpCap, logCap
}

func TestRouter_DefaultsToResend(t *testing.T) {
	r, resendCap, smtpCap, logCap := newCapturedRouter("")

	if _, err := r.Send(context.Background(), edomain.Message{To: "a@b.com"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !resendCap.called || smtpCap.called || logCap.called {
		t.Fatalf("expected resend called, others not called")
	}
}

func TestRouter_SelectsSMTP(t *testing.T) {
	r, resendCap, smtpCap, _ := newCapturedRouter("smtp")

	if _, err := r.Send(context.Background(), edomain.Message{To: "a@b.com"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !smtpCap.called || resendCap.called {
		t.Fatalf("expected smtp called, resend not called")
	}
}

func TestRouter_SelectsLog(t *testing.T) {
	r, resendCap, _, logCap := newCapturedRouter("log")

	if _, err := r.Send(context.Background(), edomain.Message{To: "a@b.com"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !logCap.called || resendCap.called {
		t.Fatalf("expected log sender called, resend not called")
	}
}

func TestRouter_UnknownProviderFallsBackToResend(t *testing.T) {
	r, resendCap, smtpCap, logCap := newCapturedRouter("brevo")

	if _, err := r.Send(context.Background(), edomain.Message{To: "a@b.com"}); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if !resendCap.called || smtpCap.called || logCap.called {
		t.Fatalf("expected resend called for unknown provider")
	}
}
