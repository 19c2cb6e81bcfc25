package repository

import "errors"

var (
	// ErrStockConflict signals a guarded stock write lost a race: stock
	// changed between validation and commit. Callers re-validate.
	ErrStockConflict = errors.New("stock changed concurrently")

	ErrCartNotFound  = errors.New("cart not found")
	ErrFailedToQuery = errors.New("failed to query")
	ErrFailedToExec  = errors.New("failed to execute statement")
)
