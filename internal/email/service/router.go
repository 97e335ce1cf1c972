package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/willowcart/relay/internal/config"
	edomain "github.com/willowcart/relay/internal/email/domain"
	"github.com/willowcart/relay/internal/metrics"
)

// Ensure Router implements domain.Sender
var _ edomain.Sender = (*Router)(nil)

// Router selects the configured sender. Resend is the default; the
// smtp and log providers serve self-hosted and development setups.
type Router struct {
	cfg      config.Config
	provider string
	resend   edomain.Sender
	smtp     edomain.Sender
	devlog   edomain.Sender
}

func NewRouter(cfg config.Config, log zerolog.Logger) *Router {
	provider := strings.ToLower(cfg.EmailProvider)
	if provider != "smtp" && provider != "log" {
		provider = "resend"
	}
	return &Router{
		cfg:      cfg,
		provider: provider,
		resend:   NewResend(cfg),
		smtp:     NewSMTP(cfg),
		devlog:   NewLog(log),
	}
}

func (r *Router) Send(ctx context.Context, msg edomain.Message) (string, error) {
	start := time.Now()
	id, err := r.sender().Send(ctx, msg)
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.IncEmailSend(r.provider, status)
	metrics.ObserveEmailSendDuration(r.provider, time.Since(start).Seconds())
	return id, err
}

func (r *Router) sender() edomain.Sender {
	switch r.provider {
	case "smtp":
		return r.smtp
	case "log":
		return r.devlog
	default:
		return r.resend
	}
}
