package loginguard

import "errors"

var (
	ErrStoreRequired        = errors.New("store is required")
	ErrInvalidThreshold     = errors.New("invalid attempt threshold")
	ErrInvalidWindow        = errors.New("invalid attempt window")
	ErrInvalidBlockDuration = errors.New("invalid block duration")
)
