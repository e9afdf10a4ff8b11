// Package modifier persists ModifierSet documents and resolves them into
// the immutable configuration the pricing engine consumes, with a short
// lived cache in front of the merge.
package modifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McCollisters/autovista-api-sub002/internal/pricing"
)

// ErrNoPortalOverride indicates a portal has no modifier override record.
var ErrNoPortalOverride = errors.New("modifier: no portal override")

// Store persists modifier sets as JSONB documents. Exactly one global row
// exists; portal overrides are optional, one per portal.
type Store struct {
	Pool *pgxpool.Pool
}

// Global loads the single global modifier set. Its absence is surfaced as
// pricing.ErrMissingGlobalModifiers so callers treat it as the fatal
// configuration error it is.
func (s *Store) Global(ctx context.Context) (*pricing.ModifierSet, error) {
	set, err := s.queryOne(ctx, `SELECT doc FROM modifier_sets WHERE is_global LIMIT 1`)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pricing.ErrMissingGlobalModifiers
		}
		return nil, err
	}
	return set, nil
}

// ForPortal loads the portal-scoped override when one exists.
func (s *Store) ForPortal(ctx context.Context, portalID uuid.UUID) (*pricing.ModifierSet, error) {
	set, err := s.queryOne(ctx, `SELECT doc FROM modifier_sets WHERE portal_id = $1 LIMIT 1`, portalID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPortalOverride
		}
		return nil, err
	}
	return set, nil
}

// UpsertPortal stores or replaces a portal's override document.
func (s *Store) UpsertPortal(ctx context.Context, portalID uuid.UUID, set *pricing.ModifierSet) error {
	if s == nil || s.Pool == nil {
		return errors.New("modifier: store not configured")
	}
	set.PortalID = &portalID
	set.IsGlobal = false
	doc, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("modifier: encode document: %w", err)
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO modifier_sets (portal_id, is_global, doc)
         VALUES ($1, FALSE, $2)
         ON CONFLICT (portal_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		portalID, doc)
	if err != nil {
		return fmt.Errorf("modifier: upsert portal override: %w", err)
	}
	return nil
}

// UpsertGlobal replaces the single global modifier set document.
func (s *Store) UpsertGlobal(ctx context.Context, set *pricing.ModifierSet) error {
	if s == nil || s.Pool == nil {
		return errors.New("modifier: store not configured")
	}
	set.PortalID = nil
	set.IsGlobal = true
	doc, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("modifier: encode document: %w", err)
	}
	_, err = s.Pool.Exec(ctx,
		`INSERT INTO modifier_sets (is_global, doc)
         VALUES (TRUE, $1)
         ON CONFLICT (is_global) WHERE is_global DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`,
		doc)
	if err != nil {
		return fmt.Errorf("modifier: upsert global: %w", err)
	}
	return nil
}

func (s *Store) queryOne(ctx context.Context, sql string, args ...any) (*pricing.ModifierSet, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("modifier: store not configured")
	}
	var doc []byte
	if err := s.Pool.QueryRow(ctx, sql, args...).Scan(&doc); err != nil {
		return nil, err
	}
	var set pricing.ModifierSet
	if err := json.Unmarshal(doc, &set); err != nil {
		return nil, fmt.Errorf("modifier: decode document: %w", err)
	}
	return &set, nil
}
