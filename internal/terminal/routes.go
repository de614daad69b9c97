package terminal

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/emberoak/caterserve/internal/sales"
)

// Handler wires the provider client, the sales ledger, and the event
// feed together. client may be nil when the terminal is not
// configured; every proxy endpoint then answers 400.
type Handler struct {
	client *Client
	sales  *sales.Store
	feed   *Feed
}

// NewHandler creates a terminal handler.
func NewHandler(client *Client, salesStore *sales.Store, feed *Feed) *Handler {
	return &Handler{client: client, sales: salesStore, feed: feed}
}

// RegisterRoutes mounts the terminal proxy endpoints.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/terminal/connection_token", h.connectionToken)
	r.Post("/api/terminal/payment_intents", h.createPaymentIntent)
	r.Post("/api/terminal/payment_intents/{id}/capture", h.capturePaymentIntent)
	r.Post("/api/terminal/payment_intents/{id}/confirm", h.confirmPaymentIntent)
	r.Post("/api/terminal/payment_intents/{id}/cancel", h.cancelPaymentIntent)
	r.Post("/api/terminal/readers", h.registerReader)
	r.Get("/api/terminal/readers", h.listReaders)
	r.Post("/api/terminal/refunds", h.createRefund)
	r.Get("/api/terminal/feed", h.feedWS)
}

// configured rejects proxy calls when no secret key was provided.
func (h *Handler) configured(w http.ResponseWriter) bool {
	if h.client == nil {
		writeError(w, http.StatusBadRequest, "payment terminal is not configured")
		return false
	}
	return true
}

func (h *Handler) connectionToken(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	token, err := h.client.CreateConnectionToken(r.Context())
	if err != nil {
		log.Printf("terminal: connection token: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create connection token")
		return
	}
	writeJSON(w, http.StatusOK, token)
}

type createIntentRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency,omitempty"`
}

func (h *Handler) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	var req createIntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, "amount_cents must be positive")
		return
	}

	pi, err := h.client.CreatePaymentIntent(r.Context(), req.AmountCents, req.Currency)
	if err != nil {
		log.Printf("terminal: create intent: %v", err)
		writeError(w, http.StatusInternalServerError, "could not create payment intent")
		return
	}
	writeJSON(w, http.StatusOK, pi)
}

type captureRequest struct {
	TipCents int64 `json:"tip_cents,omitempty"`
	TaxCents int64 `json:"tax_cents,omitempty"`
}

func (h *Handler) capturePaymentIntent(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	id := chi.URLParam(r, "id")

	// The capture body is optional; tip and tax ride along when the
	// reader flow collected them.
	var req captureRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	pi, err := h.client.CapturePaymentIntent(r.Context(), id)
	if err != nil {
		log.Printf("terminal: capture %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not capture payment intent")
		return
	}

	sale := &sales.Sale{
		PaymentIntentID: pi.ID,
		Status:          sales.StatusSucceeded,
		TotalCents:      pi.Amount,
		TipCents:        req.TipCents,
		TaxCents:        req.TaxCents,
	}
	if err := h.sales.Create(r.Context(), sale); err != nil {
		log.Printf("terminal: recording sale for %s: %v", pi.ID, err)
		writeError(w, http.StatusInternalServerError, "captured but could not record sale")
		return
	}

	h.feed.Broadcast(Event{
		Type:            "capture",
		PaymentIntentID: pi.ID,
		SaleID:          sale.ID,
		AmountCents:     pi.Amount,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"payment_intent": pi,
		"sale":           sale,
	})
}

func (h *Handler) confirmPaymentIntent(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	id := chi.URLParam(r, "id")
	pi, err := h.client.ConfirmPaymentIntent(r.Context(), id)
	if err != nil {
		log.Printf("terminal: confirm %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not confirm payment intent")
		return
	}
	writeJSON(w, http.StatusOK, pi)
}

func (h *Handler) cancelPaymentIntent(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	id := chi.URLParam(r, "id")
	pi, err := h.client.CancelPaymentIntent(r.Context(), id)
	if err != nil {
		log.Printf("terminal: cancel %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not cancel payment intent")
		return
	}

	h.feed.Broadcast(Event{
		Type:            "cancel",
		PaymentIntentID: pi.ID,
		AmountCents:     pi.Amount,
	})

	writeJSON(w, http.StatusOK, pi)
}

type registerReaderRequest struct {
	RegistrationCode string `json:"registration_code"`
	Label            string `json:"label"`
}

func (h *Handler) registerReader(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	if h.client.LocationID() == "" {
		writeError(w, http.StatusBadRequest, "no terminal location configured")
		return
	}

	var req registerReaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RegistrationCode == "" {
		writeError(w, http.StatusBadRequest, "registration_code is required")
		return
	}

	reader, err := h.client.RegisterReader(r.Context(), req.RegistrationCode, req.Label)
	if err != nil {
		log.Printf("terminal: register reader: %v", err)
		writeError(w, http.StatusInternalServerError, "could not register reader")
		return
	}
	writeJSON(w, http.StatusOK, reader)
}

func (h *Handler) listReaders(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	readers, err := h.client.ListReaders(r.Context())
	if err != nil {
		log.Printf("terminal: list readers: %v", err)
		writeError(w, http.StatusInternalServerError, "could not list readers")
		return
	}
	if readers == nil {
		readers = []Reader{}
	}
	writeJSON(w, http.StatusOK, readers)
}

type refundRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	AmountCents     int64  `json:"amount_cents"`
}

func (h *Handler) createRefund(w http.ResponseWriter, r *http.Request) {
	if !h.configured(w) {
		return
	}
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PaymentIntentID == "" || req.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, "payment_intent_id and a positive amount_cents are required")
		return
	}

	refund, err := h.client.CreateRefund(r.Context(), req.PaymentIntentID, req.AmountCents)
	if err != nil {
		log.Printf("terminal: refund %s: %v", req.PaymentIntentID, err)
		writeError(w, http.StatusInternalServerError, "could not create refund")
		return
	}

	// Mirror the refund into the local sales ledger when we know the
	// sale. A refund for an intent we never recorded is still valid.
	var saleID string
	sale, err := h.sales.GetByPaymentIntent(r.Context(), req.PaymentIntentID)
	if err == nil {
		updated, err := h.sales.ApplyRefund(r.Context(), sale.ID, req.AmountCents)
		if err != nil {
			log.Printf("terminal: mirroring refund to sale %s: %v", sale.ID, err)
		} else {
			saleID = updated.ID
			sale = updated
		}
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("terminal: looking up sale for %s: %v", req.PaymentIntentID, err)
	}

	h.feed.Broadcast(Event{
		Type:            "refund",
		PaymentIntentID: req.PaymentIntentID,
		SaleID:          saleID,
		AmountCents:     req.AmountCents,
	})

	resp := map[string]any{"refund": refund}
	if saleID != "" {
		resp["sale"] = sale
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) feedWS(w http.ResponseWriter, r *http.Request) {
	h.feed.HandleWS(w, r)
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
