// Package content stores keyed marketing copy blocks (about page, hero
// text) that the front end fetches and caches locally.
package content

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/emberoak/caterserve/internal/db"
)

// Block is a single editable content block, addressed by key.
type Block struct {
	Key       string    `json:"key"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store provides access to content blocks.
type Store struct {
	db *db.DB
}

// NewStore creates a new content store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Set creates or replaces the block at b.Key.
func (s *Store) Set(ctx context.Context, b *Block) error {
	if b.Key == "" {
		return fmt.Errorf("content key is required")
	}
	b.UpdatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO content_blocks (key, title, body, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET title=excluded.title, body=excluded.body, updated_at=excluded.updated_at`,
		b.Key, b.Title, b.Body, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("setting content block: %w", err)
	}
	return nil
}

// Get retrieves the block at the given key.
func (s *Store) Get(ctx context.Context, key string) (*Block, error) {
	b := &Block{}
	err := s.db.QueryRowContext(ctx,
		`SELECT key, title, body, updated_at FROM content_blocks WHERE key = ?`, key,
	).Scan(&b.Key, &b.Title, &b.Body, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("getting content block: %w", err)
	}
	return b, nil
}

// List returns all blocks ordered by key.
func (s *Store) List(ctx context.Context) ([]Block, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, title, body, updated_at FROM content_blocks ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing content blocks: %w", err)
	}
	defer rows.Close()

	var out []Block
	for rows.Next() {
		var b Block
		if err := rows.Scan(&b.Key, &b.Title, &b.Body, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning content block: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Delete removes the block at the given key.
func (s *Store) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM content_blocks WHERE key=?`, key)
	if err != nil {
		return fmt.Errorf("deleting content block: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
