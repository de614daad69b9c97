package sales

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emberoak/caterserve/internal/db"
)

// Store provides CRUD and aggregation over sales.
type Store struct {
	db *db.DB
}

// NewStore creates a new sales store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

// Create inserts a new sale.
func (s *Store) Create(ctx context.Context, sale *Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.Status == "" {
		sale.Status = StatusPending
	}
	now := time.Now().UTC()
	sale.CreatedAt = now
	sale.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sales (id, payment_intent_id, status, total_cents, tip_cents, tax_cents, refunded_cents, card_brand, last4, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID, sale.PaymentIntentID, sale.Status, sale.TotalCents, sale.TipCents, sale.TaxCents,
		sale.RefundedCents, sale.CardBrand, sale.Last4, sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating sale: %w", err)
	}
	return nil
}

const saleColumns = `id, payment_intent_id, status, total_cents, tip_cents, tax_cents, refunded_cents, card_brand, last4, created_at, updated_at`

func scanSale(row interface{ Scan(...any) error }) (*Sale, error) {
	sale := &Sale{}
	err := row.Scan(&sale.ID, &sale.PaymentIntentID, &sale.Status, &sale.TotalCents, &sale.TipCents,
		&sale.TaxCents, &sale.RefundedCents, &sale.CardBrand, &sale.Last4, &sale.CreatedAt, &sale.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// Get retrieves a sale by ID.
func (s *Store) Get(ctx context.Context, id string) (*Sale, error) {
	sale, err := scanSale(s.db.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("getting sale: %w", err)
	}
	return sale, nil
}

// GetByPaymentIntent retrieves a sale by its payment intent ID.
func (s *Store) GetByPaymentIntent(ctx context.Context, intentID string) (*Sale, error) {
	sale, err := scanSale(s.db.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE payment_intent_id = ?`, intentID))
	if err != nil {
		return nil, fmt.Errorf("getting sale by intent: %w", err)
	}
	return sale, nil
}

// List returns sales matching the filter, newest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	var args []any
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if !f.Start.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, f.Start.UTC())
	}
	if !f.End.IsZero() {
		query += ` AND created_at <= ?`
		args = append(args, f.End.UTC())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}
		out = append(out, *sale)
	}
	return out, rows.Err()
}

// UpdateStatus sets a sale's status.
func (s *Store) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sales SET status=?, updated_at=? WHERE id=?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating sale status: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a sale by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sales WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("deleting sale: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ApplyRefund credits amountCents against the sale and transitions its
// status: a cumulative refund below the sale total is a partial refund,
// anything at or above it is a full refund.
func (s *Store) ApplyRefund(ctx context.Context, id string, amountCents int64) (*Sale, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("refund amount must be positive, got %d", amountCents)
	}

	sale, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sale.RefundedCents += amountCents
	if sale.RefundedCents >= sale.TotalCents {
		sale.Status = StatusRefunded
	} else {
		sale.Status = StatusPartiallyRefunded
	}
	sale.UpdatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx,
		`UPDATE sales SET status=?, refunded_cents=?, updated_at=? WHERE id=?`,
		sale.Status, sale.RefundedCents, sale.UpdatedAt, sale.ID)
	if err != nil {
		return nil, fmt.Errorf("applying refund: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, sql.ErrNoRows
	}
	return sale, nil
}

// Summary totals succeeded sales inside [start, end]. Dollar figures are
// the cent sums divided by 100.
func (s *Store) Summary(ctx context.Context, start, end time.Time) (*Summary, error) {
	var totalCents, tipCents, taxCents int64
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_cents),0), COALESCE(SUM(tip_cents),0), COALESCE(SUM(tax_cents),0), COUNT(*)
		 FROM sales WHERE status = ? AND created_at >= ? AND created_at <= ?`,
		StatusSucceeded, start.UTC(), end.UTC(),
	).Scan(&totalCents, &tipCents, &taxCents, &count)
	if err != nil {
		return nil, fmt.Errorf("summarizing sales: %w", err)
	}

	return &Summary{
		Total:            float64(totalCents) / 100,
		Tip:              float64(tipCents) / 100,
		Tax:              float64(taxCents) / 100,
		TransactionCount: count,
	}, nil
}
