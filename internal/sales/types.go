package sales

import (
	"encoding/json"
	"time"
)

// Sale statuses.
const (
	StatusPending           = "pending"
	StatusSucceeded         = "succeeded"
	StatusFailed            = "failed"
	StatusPartiallyRefunded = "partially_refunded"
	StatusRefunded          = "refunded"
)

// Sale records a completed (or attempted) card-terminal transaction.
// Monetary values are stored as integer cents; the JSON form carries
// computed dollar fields alongside them.
type Sale struct {
	ID              string    `json:"id"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"`
	Status          string    `json:"status"`
	TotalCents      int64     `json:"total_cents"`
	TipCents        int64     `json:"tip_cents"`
	TaxCents        int64     `json:"tax_cents"`
	RefundedCents   int64     `json:"refunded_cents"`
	CardBrand       string    `json:"card_brand,omitempty"`
	Last4           string    `json:"last4,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// MarshalJSON adds the derived dollar amounts.
func (s Sale) MarshalJSON() ([]byte, error) {
	type alias Sale
	return json.Marshal(struct {
		alias
		Total    float64 `json:"total"`
		Tip      float64 `json:"tip"`
		Tax      float64 `json:"tax"`
		Refunded float64 `json:"refunded"`
	}{
		alias:    alias(s),
		Total:    float64(s.TotalCents) / 100,
		Tip:      float64(s.TipCents) / 100,
		Tax:      float64(s.TaxCents) / 100,
		Refunded: float64(s.RefundedCents) / 100,
	})
}

// Summary aggregates succeeded sales over a period.
type Summary struct {
	Total            float64 `json:"total"`
	Tip              float64 `json:"tip"`
	Tax              float64 `json:"tax"`
	TransactionCount int     `json:"transaction_count"`
}

// ListFilter narrows a sales listing.
type ListFilter struct {
	Status string
	Start  time.Time
	End    time.Time
}
