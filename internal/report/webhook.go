package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single webhook request.
const DefaultTimeout = 10 * time.Second

// ack is the acknowledgment body the endpoint returns for every event.
type ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Webhook posts events as JSON to a remote logging endpoint and checks
// the success/failure acknowledgment. It never retries.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook creates a Webhook sink for the given endpoint URL.
// A zero timeout falls back to DefaultTimeout.
func NewWebhook(url string, timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (w *Webhook) LogQuestion(ctx context.Context, ev QuestionEvent) error {
	return w.post(ctx, ev)
}

func (w *Webhook) LogFinalScore(ctx context.Context, ev ScoreEvent) error {
	return w.post(ctx, ev)
}

func (w *Webhook) post(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post event: unexpected status %s", resp.Status)
	}

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return fmt.Errorf("read acknowledgment: %w", err)
	}

	var a ack
	if err := json.Unmarshal(respBody, &a); err != nil {
		return fmt.Errorf("decode acknowledgment: %w", err)
	}
	if a.Status != "success" {
		return fmt.Errorf("endpoint rejected event: %s", a.Message)
	}
	return nil
}
