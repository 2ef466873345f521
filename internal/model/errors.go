package model

import "errors"

var (
	ErrUnknownLottoType = errors.New("unknown lottery type")
	ErrNotConfigured    = errors.New("lottery type has no region configured")
	ErrInvalidDateRange = errors.New("invalid date range")
)
