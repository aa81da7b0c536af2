package store

import (
	"context"
	"errors"
	"time"

	"coinboard/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Ledger wraps the database with the balance and payment-intent
// operations the rest of the app is allowed to perform. Balance
// mutations are in-place SQL increments inside a transaction, never
// read-then-write, so concurrent confirmations cannot lose updates.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

func (l *Ledger) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := l.db.WithContext(ctx).Where("user_id = ? AND is_active = true", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (l *Ledger) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := l.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (l *Ledger) GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error) {
	var trx models.Transaction
	err := l.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&trx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trx, nil
}

func (l *Ledger) CreateTransaction(ctx context.Context, trx *models.Transaction) error {
	return l.db.WithContext(ctx).Create(trx).Error
}

// AttachCharge records the gateway-assigned charge id and a pricing
// snapshot on an existing payment intent.
func (l *Ledger) AttachCharge(ctx context.Context, transactionID, chargeID string, snapshot []byte) error {
	updates := map[string]any{"charge_id": chargeID}
	if len(snapshot) > 0 {
		updates["pricing_snapshot"] = datatypes.JSON(snapshot)
	}
	res := l.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// SetTransactionStatus moves a payment intent to a non-confirmed status
// (failed, delayed). A transaction that is already confirmed is never
// downgraded; the returned bool reports whether the row changed.
func (l *Ledger) SetTransactionStatus(ctx context.Context, transactionID, status string) (bool, error) {
	res := l.db.WithContext(ctx).Model(&models.Transaction{}).
		Where("transaction_id = ? AND status <> ?", transactionID, models.TxStatusConfirmed).
		Update("status", status)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CreditAndConfirm applies a payment confirmation exactly once: the
// status-guarded UPDATE on the transaction row is the commit point, and
// the balance credit only happens in the same database transaction. A
// redelivered event finds the row already confirmed, affects zero rows
// and applies nothing. Returns whether the credit was applied.
func (l *Ledger) CreditAndConfirm(ctx context.Context, transactionID, userID string, coinCount int64) (bool, error) {
	applied := false
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Transaction{}).
			Where("transaction_id = ? AND status <> ?", transactionID, models.TxStatusConfirmed).
			Update("status", models.TxStatusConfirmed)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var user models.User
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("user_id = ?", userID).
			Update("coin_count", gorm.Expr("coin_count + ?", coinCount)).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.UserTransaction{
			UserID:        userID,
			TrxType:       models.TrxTypePurchase,
			Amount:        coinCount,
			BalanceBefore: user.CoinCount,
			BalanceAfter:  user.CoinCount + coinCount,
			Note:          "Boost purchase via payment gateway",
			RefID:         transactionID,
		}).Error; err != nil {
			return err
		}

		applied = true
		return nil
	})
	return applied, err
}

// StalePendingTransactions lists payment intents that have sat in
// pending longer than the cutoff, for the background sweep.
func (l *Ledger) StalePendingTransactions(ctx context.Context, olderThan time.Time) ([]models.Transaction, error) {
	var trxs []models.Transaction
	err := l.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", models.TxStatusPending, olderThan).
		Order("created_at ASC").
		Find(&trxs).Error
	if err != nil {
		return nil, err
	}
	return trxs, nil
}
