package services

import (
	"context"
	"errors"
	"log"
	"time"

	"coinboard/models"
	"coinboard/providers/coinbase"
	"coinboard/store"
)

// Ledger is the slice of the store the reconciler needs.
type Ledger interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error)
	SetTransactionStatus(ctx context.Context, transactionID, status string) (bool, error)
	CreditAndConfirm(ctx context.Context, transactionID, userID string, coinCount int64) (bool, error)
}

// Reconciler maps verified gateway events onto the ledger. It is the
// only writer of transaction status and payment balance credits.
type Reconciler struct {
	ledger      Ledger
	maxAttempts int
	backoff     time.Duration
}

func NewReconciler(ledger Ledger) *Reconciler {
	return &Reconciler{
		ledger:      ledger,
		maxAttempts: 3,
		backoff:     time.Second,
	}
}

// HandleEvent processes one verified webhook delivery. Unknown event
// types are acknowledged without error so new gateway event types do
// not break delivery.
func (r *Reconciler) HandleEvent(ctx context.Context, ev *coinbase.WebhookEvent) error {
	switch ev.Type {
	case coinbase.EventChargeConfirmed:
		return r.confirm(ctx, ev)
	case coinbase.EventChargeFailed:
		return r.mark(ctx, ev, models.TxStatusFailed)
	case coinbase.EventChargeDelayed:
		return r.mark(ctx, ev, models.TxStatusDelayed)
	default:
		log.Printf("⚠️ unhandled webhook event type %q (event=%s)", ev.Type, ev.ID)
		return nil
	}
}

func (r *Reconciler) confirm(ctx context.Context, ev *coinbase.WebhookEvent) error {
	meta := ev.Data.Metadata
	if meta.UserID == "" || meta.TransactionID == "" || meta.CoinCount == "" {
		return &ValidationError{Reason: "missing userId, coinCount, or transactionId in metadata"}
	}

	coins, err := meta.CoinCount.ToInt64()
	if err != nil || coins <= 0 {
		return &ValidationError{Reason: "coinCount must be a positive integer"}
	}

	trx, err := r.ledger.GetTransaction(ctx, meta.TransactionID)
	if errors.Is(err, store.ErrTransactionNotFound) {
		// No local intent to confirm; ack so the gateway stops
		// redelivering something we can never resolve.
		log.Printf("⚠️ confirmed event for unknown transaction %s (charge=%s)", meta.TransactionID, ev.Data.ID)
		return nil
	}
	if err != nil {
		return &StorageError{Err: err}
	}
	if trx.Status == models.TxStatusConfirmed {
		log.Printf("transaction %s already processed, skipping", meta.TransactionID)
		return nil
	}

	// The user may have been deleted between charge creation and the
	// webhook arriving, so existence is re-checked here.
	if _, err := r.ledger.GetUser(ctx, meta.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return &ValidationError{Reason: "user " + meta.UserID + " not found"}
		}
		return &StorageError{Err: err}
	}

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		applied, err := r.ledger.CreditAndConfirm(ctx, meta.TransactionID, meta.UserID, coins)
		if err == nil {
			if applied {
				log.Printf("✅ credited %d coins to user %s, transaction %s confirmed", coins, meta.UserID, meta.TransactionID)
			} else {
				log.Printf("transaction %s already processed, skipping", meta.TransactionID)
			}
			return nil
		}
		if errors.Is(err, store.ErrUserNotFound) {
			return &ValidationError{Reason: "user " + meta.UserID + " not found"}
		}

		lastErr = err
		log.Printf("❌ ledger update attempt %d/%d for transaction %s failed: %v", attempt, r.maxAttempts, meta.TransactionID, err)
		if attempt < r.maxAttempts {
			select {
			case <-ctx.Done():
				return &StorageError{Err: ctx.Err()}
			case <-time.After(r.backoff):
			}
		}
	}
	return &StorageError{Err: lastErr}
}

func (r *Reconciler) mark(ctx context.Context, ev *coinbase.WebhookEvent, status string) error {
	transactionID := ev.Data.Metadata.TransactionID
	if transactionID == "" {
		log.Printf("%s event without transactionId (charge=%s), nothing to update", ev.Type, ev.Data.ID)
		return nil
	}

	changed, err := r.ledger.SetTransactionStatus(ctx, transactionID, status)
	if err != nil {
		return &StorageError{Err: err}
	}
	if !changed {
		// Already confirmed, or no such row. Either way the event is
		// stale with respect to the ledger.
		log.Printf("⚠️ ignoring %s for transaction %s: no pending row to update", ev.Type, transactionID)
		return nil
	}
	log.Printf("transaction %s marked %s", transactionID, status)
	return nil
}
