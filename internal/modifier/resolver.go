package modifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/McCollisters/autovista-api-sub002/internal/pricing"
)

// Source loads modifier set documents; satisfied by *Store.
type Source interface {
	Global(ctx context.Context) (*pricing.ModifierSet, error)
	ForPortal(ctx context.Context, portalID uuid.UUID) (*pricing.ModifierSet, error)
}

// Resolver merges the global modifier set with a portal override into the
// resolved configuration the engine consumes, caching results per portal.
// A global edit becomes visible once the TTL lapses; a portal edit
// invalidates its own key immediately.
type Resolver struct {
	Store    Source
	Cache    *Cache
	Defaults pricing.Defaults
}

// CacheKey returns the cache key for a portal's resolved configuration.
// A nil portal id keys the global-only resolution.
func CacheKey(portalID *uuid.UUID) string {
	if portalID == nil {
		return "pricing:resolved:global"
	}
	return "pricing:resolved:" + portalID.String()
}

// Resolve produces the resolved configuration for a portal (nil for the
// global defaults alone).
func (r *Resolver) Resolve(ctx context.Context, portalID *uuid.UUID) (pricing.Resolved, error) {
	if r == nil || r.Store == nil {
		return pricing.Resolved{}, errors.New("modifier: resolver not configured")
	}

	key := CacheKey(portalID)
	var cached pricing.Resolved
	if hit, err := r.Cache.GetJSON(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	global, err := r.Store.Global(ctx)
	if err != nil {
		return pricing.Resolved{}, err
	}

	var override *pricing.ModifierSet
	if portalID != nil {
		override, err = r.Store.ForPortal(ctx, *portalID)
		if err != nil && !errors.Is(err, ErrNoPortalOverride) {
			return pricing.Resolved{}, fmt.Errorf("modifier: load portal override: %w", err)
		}
	}

	resolved, err := pricing.Resolve(global, override, r.Defaults)
	if err != nil {
		return pricing.Resolved{}, err
	}

	// Cache failures only cost the next caller a recompute.
	_ = r.Cache.SetJSON(ctx, key, resolved)

	return resolved, nil
}
