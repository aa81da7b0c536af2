package coinbase

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"type":"charge:confirmed","data":{"id":"c1"}}`)
	sig := ComputeSignature(secret, body)

	require.True(t, VerifySignature(secret, body, sig))

	// Tampered body: flip one byte.
	tampered := append([]byte(nil), body...)
	tampered[0] ^= 0x01
	require.False(t, VerifySignature(secret, tampered, sig))

	// Signature from a different secret.
	require.False(t, VerifySignature(secret, body, ComputeSignature("other", body)))

	// Malformed and missing signatures.
	require.False(t, VerifySignature(secret, body, "not-hex"))
	require.False(t, VerifySignature(secret, body, ""))

	// An unset secret must never verify.
	require.False(t, VerifySignature("", body, sig))
}

func TestWebhookEventDecoding(t *testing.T) {
	// coinCount arrives as a string from well-behaved senders and as a
	// number from older payloads; both must decode.
	payload := []byte(`{
		"id": "evt-1",
		"type": "charge:confirmed",
		"data": {
			"id": "charge-1",
			"metadata": {"userId": "u1", "coinCount": 25, "transactionId": "tx-1"}
		}
	}`)

	var ev WebhookEvent
	require.NoError(t, json.Unmarshal(payload, &ev))
	require.Equal(t, EventChargeConfirmed, ev.Type)

	coins, err := ev.Data.Metadata.CoinCount.ToInt64()
	require.NoError(t, err)
	require.Equal(t, int64(25), coins)
}
