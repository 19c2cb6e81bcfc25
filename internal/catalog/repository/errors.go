package repository

import "errors"

var (
	ErrFailedToQuery = errors.New("failed to query products")
)
