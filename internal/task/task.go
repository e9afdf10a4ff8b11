// Package task defines the background jobs exchanged between the API and
// the worker over asynq.
package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// TypeQuoteCreated notifies portal contacts that a quote was priced.
const TypeQuoteCreated = "quote:created"

// QuoteCreatedPayload identifies the quote the worker should announce.
type QuoteCreatedPayload struct {
	QuoteID  uuid.UUID `json:"quoteId"`
	PortalID uuid.UUID `json:"portalId"`
}

// NewQuoteCreatedTask builds the asynq task for a freshly priced quote.
func NewQuoteCreatedTask(quoteID, portalID uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(QuoteCreatedPayload{QuoteID: quoteID, PortalID: portalID})
	if err != nil {
		return nil, fmt.Errorf("task: encode %s payload: %w", TypeQuoteCreated, err)
	}
	return asynq.NewTask(TypeQuoteCreated, payload, asynq.MaxRetry(5)), nil
}

// ParseQuoteCreated decodes a quote:created task payload.
func ParseQuoteCreated(t *asynq.Task) (QuoteCreatedPayload, error) {
	var p QuoteCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return QuoteCreatedPayload{}, fmt.Errorf("task: decode %s payload: %w", t.Type(), err)
	}
	if p.QuoteID == uuid.Nil {
		return QuoteCreatedPayload{}, fmt.Errorf("task: %s payload missing quote id", t.Type())
	}
	return p, nil
}

// Client wraps the asynq client behind the Enqueuer interface the quote
// service depends on.
type Client struct {
	asynq *asynq.Client
}

func NewClient(c *asynq.Client) *Client {
	return &Client{asynq: c}
}

func (c *Client) EnqueueQuoteCreated(ctx context.Context, quoteID, portalID uuid.UUID) error {
	t, err := NewQuoteCreatedTask(quoteID, portalID)
	if err != nil {
		return err
	}
	if _, err := c.asynq.EnqueueContext(ctx, t); err != nil {
		return fmt.Errorf("task: enqueue %s: %w", TypeQuoteCreated, err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.asynq.Close()
}
