package webhook

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/willowcart/relay/internal/config"
	emailsvc "github.com/willowcart/relay/internal/email/service"
	evsvc "github.com/willowcart/relay/internal/events/service"
	rl "github.com/willowcart/relay/internal/platform/ratelimit"
	tsvc "github.com/willowcart/relay/internal/template/service"
	ctrl "github.com/willowcart/relay/internal/webhook/controller"
	svc "github.com/willowcart/relay/internal/webhook/service"
)

// Register wires the webhook slice and mounts its routes.
func Register(e *echo.Echo, cfg config.Config, log zerolog.Logger) {
	store := tsvc.NewSingleSlot()
	templates := tsvc.NewHTTP(cfg, store)

	sender := emailsvc.NewRouter(cfg, log)

	pub := evsvc.NewLogger(log)

	webhookSvc := svc.New(cfg, templates, sender, pub)
	webhookSvc.SetLogger(log)

	webhookCtrl := ctrl.New(webhookSvc)
	webhookCtrl.SetLogger(log)

	policy := rl.Policy{
		Name:   "webhook:paypal",
		Window: cfg.WebhookRateWindow,
		Limit:  cfg.WebhookRateLimit,
		Key:    rl.KeyIP("webhook:paypal"),
	}
	var limiter echo.MiddlewareFunc
	if cfg.RateLimitStore == "redis" {
		limiter = rl.MiddlewareWithStore(policy, rl.NewRedisStore(cfg))
	} else {
		limiter = rl.Middleware(policy)
	}

	webhookCtrl.Register(e, limiter)
}
