package validation

import "errors"

var (
	ErrEmptyURL         = errors.New("url is required")
	ErrInvalidURLFormat = errors.New("invalid url format")
	ErrUnsafeProtocol   = errors.New("url protocol not allowed")
	ErrURLTooLong       = errors.New("url exceeds maximum length")
	ErrPrivateHost      = errors.New("private ip addresses not allowed")
	ErrExpiryNotFuture  = errors.New("expiration date must be in the future")
	ErrLimitOutOfRange  = errors.New("limit must be between 1 and 100")
	ErrOffsetNegative   = errors.New("offset must be non-negative")
)
