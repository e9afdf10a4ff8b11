package quote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/McCollisters/autovista-api-sub002/internal/repair"
)

// RepairStore adapts the quotes table to the batch interface the pricing
// repair runner walks. Documents are handled as raw JSON maps because the
// drifted shapes being corrected do not fit the typed Quote model.
type RepairStore struct {
	pool *pgxpool.Pool
}

func NewRepairStore(pool *pgxpool.Pool) *RepairStore {
	return &RepairStore{pool: pool}
}

func (s *RepairStore) ListBatch(ctx context.Context, afterID string, limit int) ([]repair.Quote, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id::text, doc FROM quotes
		WHERE id::text > $1
		ORDER BY id::text
		LIMIT $2`,
		afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list quotes after %q: %w", afterID, err)
	}
	defer rows.Close()

	out := make([]repair.Quote, 0, limit)
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		doc := map[string]any{}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode quote %s: %w", id, err)
		}
		out = append(out, repair.Quote{ID: id, Doc: doc})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return out, nil
}

func (s *RepairStore) Update(ctx context.Context, id string, doc map[string]any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal quote %s: %w", id, err)
	}
	tag, err := s.pool.Exec(ctx, `
		UPDATE quotes SET doc = $2, updated_at = now() WHERE id::text = $1`,
		id, raw)
	if err != nil {
		return fmt.Errorf("update quote %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update quote %s: no row", id)
	}
	return nil
}
