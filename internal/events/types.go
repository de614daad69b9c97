package events

import (
	"encoding/json"
	"time"
)

// Event statuses follow the booking pipeline.
const (
	StatusInquiry   = "inquiry"
	StatusQuoted    = "quoted"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Event is a catering event booking.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	EventDate    time.Time `json:"event_date"`
	Venue        string    `json:"venue,omitempty"`
	GuestCount   int       `json:"guest_count"`
	Status       string    `json:"status"`
	QuoteCents   int64     `json:"quote_cents"`
	ContactName  string    `json:"contact_name,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	CloudinaryID string    `json:"cloudinary_id,omitempty"`
	LocalPath    string    `json:"local_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ImageURL prefers the media-library asset over a local file.
func (e Event) ImageURL() string {
	if e.CloudinaryID != "" {
		return e.CloudinaryID
	}
	return e.LocalPath
}

// MarshalJSON adds the derived quote dollars and resolved image URL.
func (e Event) MarshalJSON() ([]byte, error) {
	type alias Event
	return json.Marshal(struct {
		alias
		Quote    float64 `json:"quote"`
		ImageURL string  `json:"image_url,omitempty"`
	}{
		alias:    alias(e),
		Quote:    float64(e.QuoteCents) / 100,
		ImageURL: e.ImageURL(),
	})
}

// ListFilter narrows an event listing.
type ListFilter struct {
	Status string
	From   time.Time
	To     time.Time
}
