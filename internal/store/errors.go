package store

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the shared store cannot be reached.
// It is distinct from "record absent": an absent directory loads as empty and
// an absent conversation reads as an empty log, both successfully.
var ErrUnavailable = errors.New("store unavailable")

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
