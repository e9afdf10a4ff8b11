// Package notify renders and delivers portal notifications for quoting
// events.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/McCollisters/autovista-api-sub002/internal/common"
	"github.com/McCollisters/autovista-api-sub002/internal/portal"
	"github.com/McCollisters/autovista-api-sub002/internal/quote"
	"github.com/McCollisters/autovista-api-sub002/internal/task"
)

// QuoteSource loads quotes regardless of owning portal; satisfied by
// *quote.PGStore.
type QuoteSource interface {
	DocByID(ctx context.Context, id uuid.UUID) (*quote.Quote, error)
}

// PortalSource loads portal records; satisfied by *portal.Store.
type PortalSource interface {
	ByID(ctx context.Context, id uuid.UUID) (*portal.Portal, error)
}

// QuoteCreatedHandler consumes quote:created tasks and emails the portal's
// notification contact.
type QuoteCreatedHandler struct {
	Quotes  QuoteSource
	Portals PortalSource
	Mail    common.EmailSender
	Logger  zerolog.Logger
}

// ProcessTask implements asynq.Handler.
func (h *QuoteCreatedHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	payload, err := task.ParseQuoteCreated(t)
	if err != nil {
		// A malformed payload never becomes valid; do not retry it.
		h.Logger.Error().Err(err).Msg("dropping malformed quote notification")
		return fmt.Errorf("%w: %s", asynq.SkipRetry, err)
	}

	p, err := h.Portals.ByID(ctx, payload.PortalID)
	if err != nil {
		return fmt.Errorf("notify: load portal %s: %w", payload.PortalID, err)
	}
	if !p.Options.NotifyOnQuote || p.Options.NotificationEmail == "" {
		h.Logger.Debug().Str("portal_id", p.ID.String()).Msg("portal has quote notifications disabled")
		return nil
	}

	q, err := h.Quotes.DocByID(ctx, payload.QuoteID)
	if err != nil {
		return fmt.Errorf("notify: load quote %s: %w", payload.QuoteID, err)
	}

	subject, html := RenderQuoteCreated(p, q)
	if err := h.Mail.Send(p.Options.NotificationEmail, subject, html); err != nil {
		return fmt.Errorf("notify: send quote email: %w", err)
	}
	h.Logger.Info().
		Str("quote_id", q.ID.String()).
		Str("portal_id", p.ID.String()).
		Msg("quote notification sent")
	return nil
}

// RenderQuoteCreated produces the notification subject and HTML body.
func RenderQuoteCreated(p *portal.Portal, q *quote.Quote) (subject, html string) {
	subject = fmt.Sprintf("New quote %s: %s to %s", shortID(q.ID), routeLabel(q.Origin), routeLabel(q.Destination))

	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New quote for %s</h2>", p.Name)
	fmt.Fprintf(&b, "<p>%s &rarr; %s, %.0f miles, %d vehicle(s)</p>", routeLabel(q.Origin), routeLabel(q.Destination), q.Miles, len(q.Vehicles))
	b.WriteString("<ul>")
	for _, v := range q.Vehicles {
		fmt.Fprintf(&b, "<li>%d %s %s (%s, %s)</li>", v.Year, v.Make, v.Model, v.Class.DisplayName(), v.Transport)
	}
	b.WriteString("</ul>")
	one := q.TotalPricing.Totals.One
	fmt.Fprintf(&b, "<p>Expedited open: $%.2f &middot; expedited enclosed: $%.2f</p>",
		one.Open.TotalWithCompanyTariffAndCommission, one.Enclosed.TotalWithCompanyTariffAndCommission)
	fmt.Fprintf(&b, "<p>Standard (7 day): $%.2f &middot; white glove: $%.2f</p>",
		q.TotalPricing.Totals.Seven.TotalWithCompanyTariffAndCommission, q.TotalPricing.Totals.WhiteGlove)
	return subject, b.String()
}

func routeLabel(l quote.Location) string {
	if l.City == "" {
		return l.State
	}
	return l.City + ", " + l.State
}

func shortID(id uuid.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
