package apperrors

import "errors"

// Storage error codes.
const (
	CodeCorruptSave = iota + 1
	CodeUnknownBackend
	CodeArchiveDisabled
	CodeInvalidConfig
)

// StorageError is a persistence-side failure. The scoring core itself never
// returns errors; these only surface from loading and saving.
type StorageError struct {
	Code    int
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches any StorageError with the same code, so wrapped errors compare
// equal to the sentinels below.
func (e *StorageError) Is(target error) bool {
	var se *StorageError
	if !errors.As(target, &se) {
		return false
	}
	return se.Code == e.Code
}

// Wrap attaches a cause to a sentinel.
func Wrap(sentinel *StorageError, err error) *StorageError {
	return &StorageError{Code: sentinel.Code, Message: sentinel.Message, Err: err}
}

// Predefined errors
var (
	ErrCorruptSave     = &StorageError{Code: CodeCorruptSave, Message: "saved data is corrupt"}
	ErrUnknownBackend  = &StorageError{Code: CodeUnknownBackend, Message: "unknown storage backend"}
	ErrArchiveDisabled = &StorageError{Code: CodeArchiveDisabled, Message: "game archive is not configured"}
	ErrInvalidConfig   = &StorageError{Code: CodeInvalidConfig, Message: "invalid configuration"}
)
