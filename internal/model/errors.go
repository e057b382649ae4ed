package model

import (
	"errors"
	"fmt"
)

// Store and validation failures. Callers discriminate with errors.Is.
var (
	ErrNotFound = errors.New("not found")

	ErrDuplicateUsername  = errors.New("username already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidOldPassword = errors.New("current password is incorrect")

	ErrMissingFields      = errors.New("please fill in all fields")
	ErrInvalidEmailFormat = errors.New("please enter a valid email address")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password must be at least 6 characters long")
	ErrTermsNotAccepted   = errors.New("please agree to the terms and conditions")

	ErrStorage    = errors.New("storage error")
	ErrModelLoad  = errors.New("failed to load prediction model")
	ErrPrediction = errors.New("failed to generate prediction")

	ErrUnauthenticated   = errors.New("authentication required")
	ErrSessionExpired    = errors.New("session expired")
	ErrInvalidNavigation = errors.New("page is not available")
)

// StorageError wraps a persistence fault. It matches ErrStorage.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError wraps err for operation op.
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
