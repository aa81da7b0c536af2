package store

import (
	"context"
	"errors"

	"coinboard/models"

	"gorm.io/gorm"
)

func (l *Ledger) GetCoin(ctx context.Context, coinID string) (*models.Coin, error) {
	var coin models.Coin
	err := l.db.WithContext(ctx).Where("coin_id = ?", coinID).First(&coin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCoinNotFound
	}
	if err != nil {
		return nil, err
	}
	return &coin, nil
}

func (l *Ledger) ListCoins(ctx context.Context, status string) ([]models.Coin, error) {
	q := l.db.WithContext(ctx).Order("boosts DESC, votes DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var coins []models.Coin
	if err := q.Find(&coins).Error; err != nil {
		return nil, err
	}
	return coins, nil
}

// SpendCoins debits a user's boost balance and moves it onto a coin's
// boost counters. The debit is guarded by coin_count >= amount in the
// UPDATE itself, so two racing spends cannot drive the balance negative.
func (l *Ledger) SpendCoins(ctx context.Context, userID, coinID string, amount int64) (*models.User, *models.Coin, error) {
	var user models.User
	var coin models.Coin

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("coin_id = ?", coinID).First(&coin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCoinNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ? AND is_active = true", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		res := tx.Model(&models.User{}).
			Where("user_id = ? AND coin_count >= ?", userID, amount).
			Update("coin_count", gorm.Expr("coin_count - ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientBalance
		}

		if err := tx.Model(&models.Coin{}).
			Where("coin_id = ?", coinID).
			Updates(map[string]any{
				"boosts":       gorm.Expr("boosts + ?", amount),
				"daily_boosts": gorm.Expr("daily_boosts + ?", amount),
			}).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.UserTransaction{
			UserID:        userID,
			TrxType:       models.TrxTypeBoost,
			Amount:        amount,
			BalanceBefore: user.CoinCount,
			BalanceAfter:  user.CoinCount - amount,
			Note:          "Boost spent on coin " + coinID,
			RefID:         coinID,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			return err
		}
		return tx.Where("coin_id = ?", coinID).First(&coin).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &user, &coin, nil
}

// CreditUser applies an administrative credit.
func (l *Ledger) CreditUser(ctx context.Context, userID string, amount int64, note string) (*models.User, error) {
	var user models.User

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("user_id = ?", userID).
			Update("coin_count", gorm.Expr("coin_count + ?", amount)).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.UserTransaction{
			UserID:        userID,
			TrxType:       models.TrxTypeCredit,
			Amount:        amount,
			BalanceBefore: user.CoinCount,
			BalanceAfter:  user.CoinCount + amount,
			Note:          note,
		}).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).First(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetDailyBoosts zeroes the per-coin daily counters.
func (l *Ledger) ResetDailyBoosts(ctx context.Context) (int64, error) {
	res := l.db.WithContext(ctx).Model(&models.Coin{}).
		Where("daily_boosts > 0").
		Update("daily_boosts", 0)
	return res.RowsAffected, res.Error
}
