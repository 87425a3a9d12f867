package validation

import "time"

const (
	MinLimit = 1
	MaxLimit = 100
)

// ValidateExpiry accepts a missing expiration; a provided one must be
// strictly in the future.
func ValidateExpiry(expiresAt *time.Time, now time.Time) error {
	if expiresAt == nil {
		return nil
	}
	if !expiresAt.After(now) {
		return ErrExpiryNotFuture
	}
	return nil
}

func ValidatePagination(limit, offset int) error {
	if limit < MinLimit || limit > MaxLimit {
		return ErrLimitOutOfRange
	}
	if offset < 0 {
		return ErrOffsetNegative
	}
	return nil
}
