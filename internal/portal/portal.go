// Package portal models the reseller (white-label) tenants of the quoting
// service and resolves the portal identity on inbound requests.
package portal

import (
	"time"

	"github.com/google/uuid"

	"github.com/McCollisters/autovista-api-sub002/internal/pricing"
)

// Options are per-portal feature toggles.
type Options struct {
	// EnableCustomRates switches base pricing from the standard mileage
	// schedule to the portal's own rate bands.
	EnableCustomRates bool `json:"enableCustomRates"`
	// NotifyOnQuote opts the portal into quote-created email notifications.
	NotifyOnQuote bool `json:"notifyOnQuote"`
	// NotificationEmail receives quote notifications when set.
	NotificationEmail string `json:"notificationEmail,omitempty"`
}

// Portal is one reseller tenant with its own rate overrides and
// notification settings.
type Portal struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	APIKey      string             `json:"-"`
	Options     Options            `json:"options"`
	CustomRates []pricing.RateBand `json:"customRates,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// Rates returns the mileage bands base pricing should use for this portal:
// the custom table when enabled and present, nil (standard schedule)
// otherwise.
func (p *Portal) Rates() []pricing.RateBand {
	if p == nil || !p.Options.EnableCustomRates || len(p.CustomRates) == 0 {
		return nil
	}
	return p.CustomRates
}
