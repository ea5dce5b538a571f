package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidEvent     = errors.New("invalid event")
	ErrInvalidReference = errors.New("invalid reference")
	ErrRateLimited      = errors.New("rate limited")
)
