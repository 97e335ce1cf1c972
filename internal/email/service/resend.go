package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/willowcart/relay/internal/config"
	edomain "github.com/willowcart/relay/internal/email/domain"
)

const resendEndpoint = "https://api.resend.com/emails"

// Ensure Resend implements domain.Sender
var _ edomain.Sender = (*Resend)(nil)

type Resend struct {
	cfg  config.Config
	http *http.Client
}

func NewResend(cfg config.Config) *Resend {
	return &Resend{cfg: cfg, http: &http.Client{Timeout: cfg.HTTPTimeout}}
}

type resendEmail struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type resendResponse struct {
	ID string `json:"id"`
}

func (r *Resend) Send(ctx context.Context, msg edomain.Message) (string, error) {
	if r.cfg.ResendAPIKey == "" {
		return "", edomain.ErrNotConfigured
	}
	payload := resendEmail{From: msg.From, To: msg.To, Subject: msg.Subject, HTML: msg.HTML}
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.cfg.ResendAPIKey)
	resp, err := r.http.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 300 {
		return "", &edomain.RejectedError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	var out resendResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode resend response: %w", err)
	}
	return out.ID, nil
}
