package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"coinboard/database"
	"coinboard/models"
	"coinboard/providers/coinbase"
	"coinboard/store"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) (*store.Ledger, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return store.NewLedger(db), db
}

func newTestReconciler(ledger Ledger) *Reconciler {
	r := NewReconciler(ledger)
	r.backoff = time.Millisecond
	return r
}

func seed(t *testing.T, db *gorm.DB, balance int64) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		UserID:    "u1",
		Name:      "Alice",
		Email:     "alice@example.com",
		CoinCount: balance,
		IsActive:  true,
	}).Error)
	require.NoError(t, db.Create(&models.Transaction{
		TransactionID: "tx1",
		UserID:        "u1",
		CoinCount:     5,
		Status:        models.TxStatusPending,
	}).Error)
}

func event(eventType, transactionID, userID, coinCount string) *coinbase.WebhookEvent {
	ev := &coinbase.WebhookEvent{
		ID:   "evt-1",
		Type: eventType,
	}
	ev.Data.ID = "charge-1"
	ev.Data.Metadata = coinbase.EventMetadata{
		UserID:        userID,
		CoinCount:     models.FlexibleString(coinCount),
		TransactionID: transactionID,
	}
	return ev
}

func TestConfirmCreditsExactlyOnce(t *testing.T) {
	ledger, db := newTestStore(t)
	seed(t, db, 10)
	r := newTestReconciler(ledger)
	ctx := context.Background()

	ev := event(coinbase.EventChargeConfirmed, "tx1", "u1", "5")
	require.NoError(t, r.HandleEvent(ctx, ev))
	// Gateway redelivers the identical event.
	require.NoError(t, r.HandleEvent(ctx, ev))

	user, err := ledger.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(15), user.CoinCount)
}

func TestDelayedAfterConfirmedIsNoop(t *testing.T) {
	ledger, db := newTestStore(t)
	seed(t, db, 10)
	r := newTestReconciler(ledger)
	ctx := context.Background()

	require.NoError(t, r.HandleEvent(ctx, event(coinbase.EventChargeConfirmed, "tx1", "u1", "5")))
	require.NoError(t, r.HandleEvent(ctx, event(coinbase.EventChargeDelayed, "tx1", "u1", "5")))

	trx, err := ledger.GetTransaction(ctx, "tx1")
	require.NoError(t, err)
	require.Equal(t, models.TxStatusConfirmed, trx.Status)

	user, err := ledger.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(15), user.CoinCount)
}

func TestFailedAndDelayedMarkStatus(t *testing.T) {
	ledger, db := newTestStore(t)
	seed(t, db, 10)
	r := newTestReconciler(ledger)
	ctx := context.Background()

	require.NoError(t, r.HandleEvent(ctx, event(coinbase.EventChargeDelayed, "tx1", "u1", "5")))
	trx, err := ledger.GetTransaction(ctx, "tx1")
	require.NoError(t, err)
	require.Equal(t, models.TxStatusDelayed, trx.Status)

	require.NoError(t, r.HandleEvent(ctx, event(coinbase.EventChargeFailed, "tx1", "u1", "5")))
	trx, err = ledger.GetTransaction(ctx, "tx1")
	require.NoError(t, err)
	require.Equal(t, models.TxStatusFailed, trx.Status)

	// No balance effect from either.
	user, err := ledger.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(10), user.CoinCount)
}

func TestUnknownEventTypeIsAcknowledged(t *testing.T) {
	ledger, db := newTestStore(t)
	seed(t, db, 10)
	r := newTestReconciler(ledger)

	require.NoError(t, r.HandleEvent(context.Background(), event("charge:created", "tx1", "u1", "5")))

	trx, err := ledger.GetTransaction(context.Background(), "tx1")
	require.NoError(t, err)
	require.Equal(t, models.TxStatusPending, trx.Status)
}

func TestConfirmValidation(t *testing.T) {
	ledger, db := newTestStore(t)
	seed(t, db, 10)
	r := newTestReconciler(ledger)
	ctx := context.Background()

	cases := []struct {
		name string
		ev   *coinbase.WebhookEvent
	}{
		{"missing transactionId", event(coinbase.EventChargeConfirmed, "", "u1", "5")},
		{"missing userId", event(coinbase.EventChargeConfirmed, "tx1", "", "5")},
		{"missing coinCount", event(coinbase.EventChargeConfirmed, "tx1", "u1", "")},
		{"zero coinCount", event(coinbase.EventChargeConfirmed, "tx1", "u1", "0")},
		{"negative coinCount", event(coinbase.EventChargeConfirmed, "tx1", "u1", "-3")},
		{"non-numeric coinCount", event(coinbase.EventChargeConfirmed, "tx1", "u1", "abc")},
		{"unknown user", event(coinbase.EventChargeConfirmed, "tx1", "ghost", "5")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.HandleEvent(ctx, tc.ev)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	// None of the rejected events may have moved state.
	user, err := ledger.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(10), user.CoinCount)

	trx, err := ledger.GetTransaction(ctx, "tx1")
	require.NoError(t, err)
	require.Equal(t, models.TxStatusPending, trx.Status)
}

func TestConfirmUnknownTransactionIsAcknowledged(t *testing.T) {
	ledger, db := newTestStore(t)
	seed(t, db, 10)
	r := newTestReconciler(ledger)
	ctx := context.Background()

	require.NoError(t, r.HandleEvent(ctx, event(coinbase.EventChargeConfirmed, "no-such-tx", "u1", "5")))

	user, err := ledger.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(10), user.CoinCount)
}

// flakyLedger fails every credit attempt while delegating reads to the
// real store, to exercise the bounded retry.
type flakyLedger struct {
	*store.Ledger
	attempts int
}

func (f *flakyLedger) CreditAndConfirm(ctx context.Context, transactionID, userID string, coinCount int64) (bool, error) {
	f.attempts++
	return false, errors.New("disk on fire")
}

func TestConfirmRetriesThenGivesUp(t *testing.T) {
	ledger, db := newTestStore(t)
	seed(t, db, 10)
	flaky := &flakyLedger{Ledger: ledger}
	r := newTestReconciler(flaky)
	ctx := context.Background()

	err := r.HandleEvent(ctx, event(coinbase.EventChargeConfirmed, "tx1", "u1", "5"))
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 3, flaky.attempts)

	// The transaction stays pending so gateway redelivery can retry.
	trx, err := ledger.GetTransaction(ctx, "tx1")
	require.NoError(t, err)
	require.Equal(t, models.TxStatusPending, trx.Status)

	user, err := ledger.GetUser(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, int64(10), user.CoinCount)
}
