package coinbase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"coinboard/models"

	"github.com/stretchr/testify/require"
)

func TestCreateCharge(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	var gotBody CreateChargeRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-CC-Api-Key")
		gotVersion = r.Header.Get("X-CC-Version")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"id":         "charge-123",
				"hosted_url": "https://commerce.coinbase.com/charges/charge-123",
				"metadata":   gotBody.Metadata,
			},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret-key")
	charge, err := client.CreateCharge(context.Background(), &CreateChargeRequest{
		Name:        "100 Boosts",
		Description: "Boost pack",
		LocalPrice:  Price{Amount: "9.99", Currency: "USD"},
		PricingType: "fixed_price",
		Metadata: ChargeMetadata{
			UserID:        "u1",
			CoinCount:     models.FlexibleString("100"),
			TransactionID: "tx-1",
		},
	})
	require.NoError(t, err)

	require.Equal(t, "/charges", gotPath)
	require.Equal(t, "secret-key", gotKey)
	require.Equal(t, "2018-03-22", gotVersion)
	require.Equal(t, "9.99", gotBody.LocalPrice.Amount)

	require.Equal(t, "charge-123", charge.ID)
	require.Equal(t, "https://commerce.coinbase.com/charges/charge-123", charge.HostedURL)
	require.Equal(t, "tx-1", charge.Metadata.TransactionID)
}

func TestGetCharge(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/charges/charge-123", r.URL.Path)
		require.Equal(t, http.MethodGet, r.Method)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"id": "charge-123",
				"timeline": []map[string]string{
					{"time": "2026-01-01T00:00:00Z", "status": "NEW"},
					{"time": "2026-01-01T00:05:00Z", "status": "PENDING"},
				},
			},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "secret-key")
	charge, err := client.GetCharge(context.Background(), "charge-123")
	require.NoError(t, err)
	require.Len(t, charge.Timeline, 2)
	require.Equal(t, "PENDING", charge.Timeline[1].Status)
}

func TestErrorMapping(t *testing.T) {
	status := http.StatusOK
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "bad-key")

	status = http.StatusUnauthorized
	_, err := client.GetCharge(context.Background(), "x")
	require.ErrorIs(t, err, ErrAuth)

	status = http.StatusForbidden
	_, err = client.GetCharge(context.Background(), "x")
	require.ErrorIs(t, err, ErrForbidden)

	status = http.StatusTooManyRequests
	_, err = client.GetCharge(context.Background(), "x")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "key")
	client.HTTPClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := client.GetCharge(context.Background(), "x")
	require.ErrorIs(t, err, ErrTimeout)
}

func TestUnavailable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewClient(ts.URL, "key")
	_, err := client.GetCharge(context.Background(), "x")
	require.ErrorIs(t, err, ErrUnavailable)
}
