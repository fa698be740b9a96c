package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/anmolrajas/portfolio/internal/errors"
	"github.com/anmolrajas/portfolio/internal/storage"
)

// Dispatcher delivers a submission. Dispatch may block; it is always called
// off the event loop.
type Dispatcher interface {
	Dispatch(ctx context.Context, p Payload) error
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, p Payload) error

func (f DispatcherFunc) Dispatch(ctx context.Context, p Payload) error { return f(ctx, p) }

// HTTPDispatcher POSTs the payload as JSON to an endpoint.
type HTTPDispatcher struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPDispatcher returns a dispatcher posting to endpoint with timeout.
func NewHTTPDispatcher(endpoint string, timeout time.Duration) *HTTPDispatcher {
	return &HTTPDispatcher{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: timeout},
	}
}

func (h *HTTPDispatcher) Dispatch(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return errors.DispatchFailed("http", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.DispatchFailed("http", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.DispatchFailed("http", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.DispatchFailed("http", fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet)))
	}
	return nil
}

// Outbox is where queued submissions are stored.
type Outbox interface {
	Enqueue(e storage.OutboxEntry) error
}

// OutboxDispatcher queues submissions locally instead of sending them.
type OutboxDispatcher struct {
	Store Outbox
}

func (o OutboxDispatcher) Dispatch(ctx context.Context, p Payload) error {
	if err := ctx.Err(); err != nil {
		return errors.DispatchFailed("outbox", err)
	}
	err := o.Store.Enqueue(storage.OutboxEntry{
		ID:          p.ID,
		SenderName:  p.SenderName,
		SenderEmail: p.SenderEmail,
		Subject:     p.Subject,
		Message:     p.Message,
		ReceivedAt:  p.ReceivedAt,
		QueuedAt:    time.Now(),
	})
	if err != nil {
		return errors.DispatchFailed("outbox", err)
	}
	return nil
}
