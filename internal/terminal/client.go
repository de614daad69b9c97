// Package terminal proxies the card-payment provider's Terminal API:
// connection tokens, payment intents, reader registration, and refunds.
// Provider object shapes pass through largely unchanged; amounts are
// integer cents end to end.
package terminal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ConnectionToken lets the in-store reader SDK authenticate.
type ConnectionToken struct {
	Secret string `json:"secret"`
}

// PaymentIntent is the provider's payment object, reduced to the
// fields the back office uses.
type PaymentIntent struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// Reader is a registered card terminal.
type Reader struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	DeviceType string `json:"device_type"`
	Status     string `json:"status"`
	Location   string `json:"location"`
}

// Refund is the provider's refund object.
type Refund struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
}

type providerError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client calls the payment provider's API directly over HTTP with
// form-encoded bodies and secret-key bearer auth.
type Client struct {
	baseURL    string
	secretKey  string
	locationID string
	currency   string
	client     *http.Client
}

// NewClient creates a terminal client. baseURL is the provider API
// root (e.g. https://api.stripe.com/v1).
func NewClient(baseURL, secretKey, locationID, currency string) *Client {
	return &Client{
		baseURL:    baseURL,
		secretKey:  secretKey,
		locationID: locationID,
		currency:   currency,
		client:     &http.Client{},
	}
}

// LocationID returns the configured terminal location, empty when the
// deployment has not been assigned one.
func (c *Client) LocationID() string { return c.locationID }

// Currency returns the default charge currency.
func (c *Client) Currency() string { return c.currency }

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling payment provider: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var perr providerError
		if json.Unmarshal(data, &perr) == nil && perr.Error.Message != "" {
			return fmt.Errorf("payment provider error (%d): %s", resp.StatusCode, perr.Error.Message)
		}
		return fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}

// CreateConnectionToken mints a token for the reader SDK.
func (c *Client) CreateConnectionToken(ctx context.Context) (*ConnectionToken, error) {
	var t ConnectionToken
	if err := c.do(ctx, http.MethodPost, "/terminal/connection_tokens", url.Values{}, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreatePaymentIntent creates a card-present payment intent with
// manual capture.
func (c *Client) CreatePaymentIntent(ctx context.Context, amountCents int64, currency string) (*PaymentIntent, error) {
	if currency == "" {
		currency = c.currency
	}
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	form.Set("payment_method_types[]", "card_present")
	form.Set("capture_method", "manual")

	var pi PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payment_intents", form, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

// CapturePaymentIntent captures a confirmed intent.
func (c *Client) CapturePaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	var pi PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payment_intents/"+url.PathEscape(id)+"/capture", url.Values{}, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

// ConfirmPaymentIntent confirms an intent after the reader collects a
// payment method.
func (c *Client) ConfirmPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	var pi PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payment_intents/"+url.PathEscape(id)+"/confirm", url.Values{}, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

// CancelPaymentIntent cancels an intent.
func (c *Client) CancelPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	var pi PaymentIntent
	if err := c.do(ctx, http.MethodPost, "/payment_intents/"+url.PathEscape(id)+"/cancel", url.Values{}, &pi); err != nil {
		return nil, err
	}
	return &pi, nil
}

// RegisterReader registers a physical reader at the configured
// location using its pairing code.
func (c *Client) RegisterReader(ctx context.Context, registrationCode, label string) (*Reader, error) {
	form := url.Values{}
	form.Set("registration_code", registrationCode)
	form.Set("label", label)
	form.Set("location", c.locationID)

	var r Reader
	if err := c.do(ctx, http.MethodPost, "/terminal/readers", form, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ListReaders lists readers at the configured location.
func (c *Client) ListReaders(ctx context.Context) ([]Reader, error) {
	path := "/terminal/readers"
	if c.locationID != "" {
		path += "?location=" + url.QueryEscape(c.locationID)
	}
	var resp struct {
		Data []Reader `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateRefund refunds part or all of a payment intent.
func (c *Client) CreateRefund(ctx context.Context, paymentIntentID string, amountCents int64) (*Refund, error) {
	form := url.Values{}
	form.Set("payment_intent", paymentIntentID)
	form.Set("amount", strconv.FormatInt(amountCents, 10))

	var r Refund
	if err := c.do(ctx, http.MethodPost, "/refunds", form, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ForwardRefund satisfies the sales refund hook.
func (c *Client) ForwardRefund(ctx context.Context, paymentIntentID string, amountCents int64) error {
	_, err := c.CreateRefund(ctx, paymentIntentID, amountCents)
	return err
}
