package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// webhookEventsTotal counts processed webhook requests by final outcome.
	// Labels:
	// - outcome: "sent", "ignored", "malformed", "missing_email",
	//   "template_unavailable", "not_configured", "dispatch_failed", "internal"
	webhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "webhook",
			Name:      "events_total",
			Help:      "Number of webhook requests processed, by outcome",
		},
		[]string{"outcome"},
	)

	// templateFetchTotal counts remote template fetch attempts.
	// Labels:
	// - status: "success" or "failure"
	templateFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "template",
			Name:      "fetch_total",
			Help:      "Number of remote template fetch attempts",
		},
		[]string{"status"},
	)

	// templateCacheHits counts template reads served from the in-process cache.
	templateCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "template",
			Name:      "cache_hits_total",
			Help:      "Number of template reads served from cache",
		},
	)

	// emailSendTotal counts dispatch attempts to the email provider.
	// Labels:
	// - provider: "resend", "smtp" or "log"
	// - status:   "success" or "failure"
	emailSendTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "email",
			Name:      "send_total",
			Help:      "Number of email dispatch attempts",
		},
		[]string{"provider", "status"},
	)

	// emailSendDuration tracks wall-clock duration of provider dispatch calls.
	// Labels:
	// - provider: "resend", "smtp" or "log"
	emailSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "relay",
			Subsystem: "email",
			Name:      "send_duration_seconds",
			Help:      "Duration of email dispatch calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// rateLimitExceeded counts HTTP 429 events from the rate limit middleware.
	// Labels:
	// - endpoint: short name like "webhook:paypal"
	rateLimitExceeded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "relay",
			Subsystem: "http",
			Name:      "rate_limit_exceeded_total",
			Help:      "Number of requests rejected due to rate limiting (HTTP 429)",
		},
		[]string{"endpoint"},
	)
)

// IncWebhookOutcome increments the webhook outcome counter.
func IncWebhookOutcome(outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	webhookEventsTotal.WithLabelValues(outcome).Inc()
}

// IncTemplateFetch increments the template fetch counter.
func IncTemplateFetch(status string) {
	if status == "" {
		status = "unknown"
	}
	templateFetchTotal.WithLabelValues(status).Inc()
}

// IncTemplateCacheHit increments the template cache hit counter.
func IncTemplateCacheHit() {
	templateCacheHits.Inc()
}

// IncEmailSend increments the email dispatch counter.
func IncEmailSend(provider, status string) {
	if provider == "" {
		provider = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	emailSendTotal.WithLabelValues(provider, status).Inc()
}

// ObserveEmailSendDuration observes the duration of a dispatch call.
func ObserveEmailSendDuration(provider string, duration float64) {
	if provider == "" {
		provider = "unknown"
	}
	emailSendDuration.WithLabelValues(provider).Observe(duration)
}

// IncRateLimitExceeded increments the 429 counter for the given endpoint.
func IncRateLimitExceeded(endpoint string) {
	if endpoint == "" {
		endpoint = "unknown"
	}
	rateLimitExceeded.WithLabelValues(endpoint).Inc()
}
