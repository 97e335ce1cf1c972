package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RelayClient represents the API client
type RelayClient struct {
	BaseURL string
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Time    string `json:"time"`
}

type WebhookResponse struct {
	Message  string `json:"message,omitempty"`
	ResendID string `json:"resendId,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (c *RelayClient) httpClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

func (c *RelayClient) Health() error {
	resp, err := c.httpClient().Get(c.BaseURL + "/healthz")
	if err != nil {
		return fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return fmt.Errorf("failed to decode health response: %w", err)
	}
	fmt.Printf("Status:  %s\n", health.Status)
	fmt.Printf("Version: %s\n", health.Version)
	fmt.Printf("Time:    %s\n", health.Time)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service unhealthy (HTTP %d)", resp.StatusCode)
	}
	return nil
}

func (c *RelayClient) SendTest(email, item string) error {
	event := map[string]any{
		"event_type": "PAYMENT.CAPTURE.COMPLETED",
		"resource": map[string]any{
			"payer": map[string]any{"email_address": email},
		},
	}
	if item != "" {
		event["resource"].(map[string]any)["purchase_units"] = []map[string]any{
			{"items": []map[string]any{{"name": item}}},
		}
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	resp, err := c.httpClient().Post(c.BaseURL+"/webhooks/paypal", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	var out WebhookResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("unexpected response (HTTP %d): %s", resp.StatusCode, string(raw))
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay returned HTTP %d: %s", resp.StatusCode, out.Error)
	}
	fmt.Printf("Message:  %s\n", out.Message)
	if out.ResendID != "" {
		fmt.Printf("ResendID: %s\n", out.ResendID)
	}
	return nil
}
