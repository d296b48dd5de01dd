package repository

import (
	"errors"
	"fmt"
)

// ErrUnknownStatus is returned when a status label has no numeric code.
var ErrUnknownStatus = errors.New("unknown product status")

// StorageError reports a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
