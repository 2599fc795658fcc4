package application

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a business-rule violation: an unknown id
	// referenced in a request, a malformed id shape, or an unavailable album.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrInvalidOrderPrice is kept distinct from ErrInvalidInput so callers
	// can tell pricing problems from identity problems.
	ErrInvalidOrderPrice = errors.New("invalid order price")
)

func invalidInputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func invalidPricef(price float64) error {
	return fmt.Errorf("%w: Order price must be greater than 0: %v", ErrInvalidOrderPrice, price)
}
