package repository

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the backing store cannot accept or serve
// requests. Driver errors are wrapped alongside it.
var ErrUnavailable = errors.New("store unavailable")

// unavailable wraps a driver error so callers can match ErrUnavailable while
// the underlying cause stays in the chain for logging.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(ErrUnavailable, err))
}
