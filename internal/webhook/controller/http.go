package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/willowcart/relay/internal/logger"
	"github.com/willowcart/relay/internal/metrics"
	"github.com/willowcart/relay/internal/webhook/domain"
)

// Controller owns the HTTP contract of the webhook endpoint, including
// the error-kind to status mapping. Provider details never leak into
// responses; callers get the user-safe messages below.
type Controller struct {
	svc domain.Service
	log zerolog.Logger
}

func New(svc domain.Service) *Controller {
	return &Controller{svc: svc, log: logger.Nop()}
}

func (h *Controller) SetLogger(l zerolog.Logger) { h.log = l }

// Register mounts the webhook route. The route is registered for all
// methods so the 405 body stays under our control.
func (h *Controller) Register(e *echo.Echo, mw ...echo.MiddlewareFunc) {
	e.Any("/webhooks/paypal", h.handle, mw...)
}

type sentResponse struct {
	Message  string `json:"message"`
	ResendID string `json:"resendId"`
}

func (h *Controller) handle(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return c.JSON(http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON payload"})
	}

	out, err := h.svc.Process(c.Request().Context(), body)
	if err != nil {
		return h.reject(c, err)
	}
	if out.Ignored {
		return c.JSON(http.StatusOK, map[string]string{"message": "Ignored non-payment event"})
	}
	return c.JSON(http.StatusOK, sentResponse{
		Message:  "Email sent to " + out.BuyerEmail,
		ResendID: out.ProviderID,
	})
}

func (h *Controller) reject(c echo.Context, err error) error {
	var derr *domain.Error
	if !errors.As(err, &derr) {
		h.log.Error().Err(err).Msg("unclassified webhook failure")
		metrics.IncWebhookOutcome("internal")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	switch derr.Kind {
	case domain.KindMalformedPayload:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid JSON payload"})
	case domain.KindMissingBuyerEmail:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing buyer email"})
	case domain.KindTemplateUnavailable:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch email template"})
	case domain.KindMissingCredential:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Email service not configured"})
	case domain.KindDispatchRejected:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send email"})
	default:
		h.log.Error().Err(derr).Msg("unclassified webhook failure")
		metrics.IncWebhookOutcome("internal")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
}
