package trending

import "errors"

var (
	ErrStoreRequired = errors.New("store is required")
	ErrInvalidTTL    = errors.New("invalid bucket ttl")
	ErrInvalidLimit  = errors.New("invalid limit configuration")
)
