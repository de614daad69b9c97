package sales

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// RefundForwarder pushes a refund to the payment provider. A nil
// forwarder means refunds are recorded locally only.
type RefundForwarder interface {
	ForwardRefund(ctx context.Context, paymentIntentID string, amountCents int64) error
}

// RegisterRoutes mounts the sales endpoints on the given router.
func RegisterRoutes(r chi.Router, store *Store, forwarder RefundForwarder) {
	r.Get("/api/sales", listSalesHandler(store))
	r.Get("/api/sales/summary", summaryHandler(store))
	r.Get("/api/sales/{id}", getSaleHandler(store))
	r.Post("/api/sales", createSaleHandler(store))
	r.Post("/api/sales/{id}/refund", refundSaleHandler(store, forwarder))
	r.Delete("/api/sales/{id}", deleteSaleHandler(store))
}

func listSalesHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f ListFilter
		f.Status = r.URL.Query().Get("status")

		var err error
		if f.Start, err = parseTimeParam(r.URL.Query().Get("start")); err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		if f.End, err = parseTimeParam(r.URL.Query().Get("end")); err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}

		out, err := store.List(r.Context(), f)
		if err != nil {
			log.Printf("sales: list: %v", err)
			writeError(w, http.StatusInternalServerError, "could not list sales")
			return
		}
		if out == nil {
			out = []Sale{}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getSaleHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		sale, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "sale not found")
			return
		}
		writeJSON(w, http.StatusOK, sale)
	}
}

func createSaleHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sale Sale
		if err := json.NewDecoder(r.Body).Decode(&sale); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if sale.TotalCents < 0 || sale.TipCents < 0 || sale.TaxCents < 0 {
			writeError(w, http.StatusBadRequest, "amounts must be non-negative")
			return
		}
		if err := store.Create(r.Context(), &sale); err != nil {
			log.Printf("sales: create: %v", err)
			writeError(w, http.StatusInternalServerError, "could not create sale")
			return
		}
		writeJSON(w, http.StatusCreated, sale)
	}
}

type refundRequest struct {
	AmountCents int64 `json:"amount_cents"`
}

func refundSaleHandler(store *Store, forwarder RefundForwarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req refundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.AmountCents <= 0 {
			writeError(w, http.StatusBadRequest, "amount_cents must be positive")
			return
		}

		existing, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusNotFound, "sale not found")
			return
		}
		if forwarder != nil && existing.PaymentIntentID != "" {
			if err := forwarder.ForwardRefund(r.Context(), existing.PaymentIntentID, req.AmountCents); err != nil {
				log.Printf("sales: forwarding refund for %s: %v", id, err)
				writeError(w, http.StatusInternalServerError, "payment provider refund failed")
				return
			}
		}

		sale, err := store.ApplyRefund(r.Context(), id, req.AmountCents)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "sale not found")
				return
			}
			log.Printf("sales: refund %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "could not apply refund")
			return
		}
		writeJSON(w, http.StatusOK, sale)
	}
}

func deleteSaleHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := store.Delete(r.Context(), id); err != nil {
			writeError(w, http.StatusNotFound, "sale not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func summaryHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, err := parseTimeParam(r.URL.Query().Get("start"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid start date")
			return
		}
		end, err := parseTimeParam(r.URL.Query().Get("end"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid end date")
			return
		}
		if start.IsZero() {
			start = time.Unix(0, 0)
		}
		if end.IsZero() {
			end = time.Now().UTC()
		}

		summary, err := store.Summary(r.Context(), start, end)
		if err != nil {
			log.Printf("sales: summary: %v", err)
			writeError(w, http.StatusInternalServerError, "could not summarize sales")
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

// parseTimeParam accepts RFC 3339 or a bare date. An empty value is a
// zero time, not an error.
func parseTimeParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error":   http.StatusText(status),
		"message": message,
	})
}
