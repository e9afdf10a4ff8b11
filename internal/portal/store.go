package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no portal matches the given identity.
var ErrNotFound = errors.New("portal not found")

// Store persists portals in Postgres. Options and custom rate bands live
// in JSONB columns mirroring the upstream document shape.
type Store struct {
	Pool *pgxpool.Pool
}

// ByAPIKey loads a portal by its API key.
func (s *Store) ByAPIKey(ctx context.Context, apiKey string) (*Portal, error) {
	return s.queryOne(ctx,
		`SELECT id, name, api_key, options, custom_rates, created_at FROM portals WHERE api_key = $1`,
		apiKey)
}

// ByID loads a portal by id.
func (s *Store) ByID(ctx context.Context, id uuid.UUID) (*Portal, error) {
	return s.queryOne(ctx,
		`SELECT id, name, api_key, options, custom_rates, created_at FROM portals WHERE id = $1`,
		id)
}

// Create inserts a portal and returns it with the generated id.
func (s *Store) Create(ctx context.Context, p *Portal) (*Portal, error) {
	options, err := json.Marshal(p.Options)
	if err != nil {
		return nil, fmt.Errorf("portal: encode options: %w", err)
	}
	rates, err := json.Marshal(p.CustomRates)
	if err != nil {
		return nil, fmt.Errorf("portal: encode custom rates: %w", err)
	}
	row := s.Pool.QueryRow(ctx,
		`INSERT INTO portals (name, api_key, options, custom_rates)
         VALUES ($1, $2, $3, $4)
         RETURNING id, created_at`,
		p.Name, p.APIKey, options, rates)
	out := *p
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, fmt.Errorf("portal: insert: %w", err)
	}
	return &out, nil
}

func (s *Store) queryOne(ctx context.Context, sql string, arg any) (*Portal, error) {
	if s == nil || s.Pool == nil {
		return nil, errors.New("portal: store not configured")
	}
	var (
		p       Portal
		options []byte
		rates   []byte
	)
	row := s.Pool.QueryRow(ctx, sql, arg)
	if err := row.Scan(&p.ID, &p.Name, &p.APIKey, &options, &rates, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("portal: query: %w", err)
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &p.Options); err != nil {
			return nil, fmt.Errorf("portal: decode options: %w", err)
		}
	}
	if len(rates) > 0 {
		if err := json.Unmarshal(rates, &p.CustomRates); err != nil {
			return nil, fmt.Errorf("portal: decode custom rates: %w", err)
		}
	}
	return &p, nil
}
