package coinbase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"coinboard/models"
)

const (
	defaultBaseURL = "https://api.commerce.coinbase.com"
	apiVersion     = "2018-03-22"
	requestTimeout = 15 * time.Second
)

// Client talks to the Coinbase Commerce charges API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

type Price struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// ChargeMetadata is round-tripped through the gateway and echoed back
// verbatim on webhook events. All values are strings on the wire.
type ChargeMetadata struct {
	UserID        string                `json:"userId"`
	CoinCount     models.FlexibleString `json:"coinCount"`
	TransactionID string                `json:"transactionId"`
}

type CreateChargeRequest struct {
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	LocalPrice        Price          `json:"local_price"`
	PricingType       string         `json:"pricing_type"`
	SupportedNetworks []string       `json:"supported_networks,omitempty"`
	Metadata          ChargeMetadata `json:"metadata"`
	RedirectURL       string         `json:"redirect_url,omitempty"`
	CancelURL         string         `json:"cancel_url,omitempty"`
}

type TimelineEntry struct {
	Time   string `json:"time"`
	Status string `json:"status"`
}

type Charge struct {
	ID        string          `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	HostedURL string          `json:"hosted_url"`
	CreatedAt string          `json:"created_at"`
	Metadata  ChargeMetadata  `json:"metadata"`
	Timeline  []TimelineEntry `json:"timeline,omitempty"`
	Pricing   json.RawMessage `json:"pricing,omitempty"`
}

type chargeEnvelope struct {
	Data Charge `json:"data"`
}

func (c *Client) CreateCharge(ctx context.Context, req *CreateChargeRequest) (*Charge, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal charge request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/charges", bytes.NewReader(body))
}

func (c *Client) GetCharge(ctx context.Context, chargeID string) (*Charge, error) {
	return c.do(ctx, http.MethodGet, "/charges/"+url.PathEscape(chargeID), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*Charge, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-CC-Api-Key", c.APIKey)
	httpReq.Header.Set("X-CC-Version", apiVersion)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		var urlErr *url.Error
		if errors.Is(err, context.DeadlineExceeded) ||
			(errors.As(err, &urlErr) && urlErr.Timeout()) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrAuth
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var env chargeEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode charge response: %w", err)
	}
	return &env.Data, nil
}
