package cocktails

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emberoak/caterserve/internal/db"
)

// Store provides CRUD operations for cocktails.
type Store struct {
	db *db.DB
}

// NewStore creates a new cocktails store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

const cocktailColumns = `id, name, description, ingredients, category, featured, price_cents,
	cloudinary_id, local_path, sort_order, created_at, updated_at`

// Create inserts a new cocktail.
func (s *Store) Create(ctx context.Context, c *Cocktail) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	ingredients, err := marshalIngredients(c.Ingredients)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cocktails (`+cocktailColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, ingredients, c.Category, c.Featured, c.PriceCents,
		c.CloudinaryID, c.LocalPath, c.SortOrder, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating cocktail: %w", err)
	}
	return nil
}

func marshalIngredients(in []string) (string, error) {
	if in == nil {
		in = []string{}
	}
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("marshalling ingredients: %w", err)
	}
	return string(data), nil
}

func scanCocktail(row interface{ Scan(...any) error }) (*Cocktail, error) {
	c := &Cocktail{}
	var ingredients string
	err := row.Scan(&c.ID, &c.Name, &c.Description, &ingredients, &c.Category, &c.Featured,
		&c.PriceCents, &c.CloudinaryID, &c.LocalPath, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ingredients), &c.Ingredients); err != nil {
		return nil, fmt.Errorf("parsing ingredients: %w", err)
	}
	return c, nil
}

// Get retrieves a cocktail by ID.
func (s *Store) Get(ctx context.Context, id string) (*Cocktail, error) {
	c, err := scanCocktail(s.db.QueryRowContext(ctx,
		`SELECT `+cocktailColumns+` FROM cocktails WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("getting cocktail: %w", err)
	}
	return c, nil
}

// List returns cocktails matching the filter in menu order.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Cocktail, error) {
	query := `SELECT ` + cocktailColumns + ` FROM cocktails WHERE 1=1`
	var args []any
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.FeaturedOnly {
		query += ` AND featured = 1`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cocktails: %w", err)
	}
	defer rows.Close()

	var out []Cocktail
	for rows.Next() {
		c, err := scanCocktail(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cocktail: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update rewrites a cocktail's fields.
func (s *Store) Update(ctx context.Context, c *Cocktail) error {
	c.UpdatedAt = time.Now().UTC()

	ingredients, err := marshalIngredients(c.Ingredients)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE cocktails SET name=?, description=?, ingredients=?, category=?, featured=?,
		 price_cents=?, cloudinary_id=?, local_path=?, sort_order=?, updated_at=?
		 WHERE id=?`,
		c.Name, c.Description, ingredients, c.Category, c.Featured,
		c.PriceCents, c.CloudinaryID, c.LocalPath, c.SortOrder, c.UpdatedAt,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating cocktail: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a cocktail by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cocktails WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("deleting cocktail: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
