// internal/domain/cart/errors.go
package cart

import (
	"errors"
	"fmt"
)

// LoadError reports that the backing store could not produce a cart snapshot.
// Callers receive an empty cart alongside it and may retry.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load cart %s: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// PersistError reports a failed cart write. The mutated state returned with it
// is still valid in memory; only durability is at risk.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist cart %s: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is (or wraps) a LoadError
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsPersistError reports whether err is (or wraps) a PersistError
func IsPersistError(err error) bool {
	var pe *PersistError
	return errors.As(err, &pe)
}
