package coinbase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"coinboard/models"
)

// SignatureHeader carries the hex HMAC-SHA256 digest of the raw body.
const SignatureHeader = "X-CC-Webhook-Signature"

const (
	EventChargeConfirmed = "charge:confirmed"
	EventChargeFailed    = "charge:failed"
	EventChargeDelayed   = "charge:delayed"
)

// WebhookEvent is the gateway's notification envelope. It is consumed
// per delivery and never persisted; the gateway may redeliver the same
// event, so the transaction row is the durable idempotency witness.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		ID       string        `json:"id"`
		Code     string        `json:"code"`
		Metadata EventMetadata `json:"metadata"`
	} `json:"data"`
}

type EventMetadata struct {
	UserID        string                `json:"userId"`
	CoinCount     models.FlexibleString `json:"coinCount"`
	TransactionID string                `json:"transactionId"`
}

// ComputeSignature returns the hex HMAC-SHA256 of body under secret.
func ComputeSignature(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a webhook signature over the exact raw body
// bytes, in constant time. An empty secret never verifies.
func VerifySignature(secret string, body []byte, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), provided)
}
