package services

import "fmt"

// ValidationError rejects a webhook event whose metadata is unusable.
// Client-caused; never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StorageError means the ledger could not be updated even after the
// bounded retry. The transaction is left pending so the gateway's own
// redelivery provides the outer retry loop.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger update failed: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
