package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a quote does not exist for the portal.
var ErrNotFound = errors.New("quote not found")

// PGStore persists quotes as JSONB documents in Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) Insert(ctx context.Context, q *Quote) error {
	doc, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("marshal quote: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO quotes (id, portal_id, status, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, q.PortalID, string(q.Status), doc, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

func (s *PGStore) ByID(ctx context.Context, portalID, id uuid.UUID) (*Quote, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `
		SELECT doc FROM quotes WHERE id = $1 AND portal_id = $2`,
		id, portalID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quote: %w", err)
	}
	var q Quote
	if err := json.Unmarshal(doc, &q); err != nil {
		return nil, fmt.Errorf("decode quote %s: %w", id, err)
	}
	return &q, nil
}

func (s *PGStore) ListByPortal(ctx context.Context, portalID uuid.UUID, page, perPage int) ([]Quote, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	var total int
	if err := s.pool.QueryRow(ctx, `
		SELECT count(*) FROM quotes WHERE portal_id = $1`, portalID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT doc FROM quotes
		WHERE portal_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		portalID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	out := make([]Quote, 0, perPage)
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, 0, fmt.Errorf("scan quote: %w", err)
		}
		var q Quote
		if err := json.Unmarshal(doc, &q); err != nil {
			return nil, 0, fmt.Errorf("decode quote: %w", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list quotes: %w", err)
	}
	return out, total, nil
}

// DocByID loads a quote for consumers that do not know the owning portal,
// such as the notification worker.
func (s *PGStore) DocByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM quotes WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load quote: %w", err)
	}
	var q Quote
	if err := json.Unmarshal(doc, &q); err != nil {
		return nil, fmt.Errorf("decode quote %s: %w", id, err)
	}
	return &q, nil
}
