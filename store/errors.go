package store

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrCoinNotFound        = errors.New("coin not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
)
