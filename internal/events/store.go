package events

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/emberoak/caterserve/internal/db"
)

// Store provides CRUD operations for catering events.
type Store struct {
	db *db.DB
}

// NewStore creates a new events store.
func NewStore(d *db.DB) *Store {
	return &Store{db: d}
}

const eventColumns = `id, title, description, event_date, venue, guest_count, status, quote_cents,
	contact_name, contact_email, contact_phone, cloudinary_id, local_path, created_at, updated_at`

// Create inserts a new event.
func (s *Store) Create(ctx context.Context, e *Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = StatusInquiry
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (`+eventColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Title, e.Description, e.EventDate.UTC(), e.Venue, e.GuestCount, e.Status, e.QuoteCents,
		e.ContactName, e.ContactEmail, e.ContactPhone, e.CloudinaryID, e.LocalPath, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (*Event, error) {
	e := &Event{}
	err := row.Scan(&e.ID, &e.Title, &e.Description, &e.EventDate, &e.Venue, &e.GuestCount,
		&e.Status, &e.QuoteCents, &e.ContactName, &e.ContactEmail, &e.ContactPhone,
		&e.CloudinaryID, &e.LocalPath, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Get retrieves an event by ID.
func (s *Store) Get(ctx context.Context, id string) (*Event, error) {
	e, err := scanEvent(s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("getting event: %w", err)
	}
	return e, nil
}

// List returns events matching the filter, soonest first.
func (s *Store) List(ctx context.Context, f ListFilter) ([]Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE 1=1`
	var args []any
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	if !f.From.IsZero() {
		query += ` AND event_date >= ?`
		args = append(args, f.From.UTC())
	}
	if !f.To.IsZero() {
		query += ` AND event_date <= ?`
		args = append(args, f.To.UTC())
	}
	query += ` ORDER BY event_date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// Update rewrites an event's fields.
func (s *Store) Update(ctx context.Context, e *Event) error {
	e.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE events SET title=?, description=?, event_date=?, venue=?, guest_count=?, status=?,
		 quote_cents=?, contact_name=?, contact_email=?, contact_phone=?, cloudinary_id=?, local_path=?, updated_at=?
		 WHERE id=?`,
		e.Title, e.Description, e.EventDate.UTC(), e.Venue, e.GuestCount, e.Status,
		e.QuoteCents, e.ContactName, e.ContactEmail, e.ContactPhone, e.CloudinaryID, e.LocalPath, e.UpdatedAt,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an event by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
