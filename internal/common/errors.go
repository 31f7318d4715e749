package common

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidValue      = errors.New("invalid setting value")
	ErrUnknownSetting    = errors.New("unknown setting")
	ErrUnsupportedImage  = errors.New("unsupported image type")
	ErrNoFilesProvided   = errors.New("no files provided")
	ErrDirectoryRequired = errors.New("directory is required")
)

// SettingsError represents settings persistence errors
type SettingsError struct {
	Operation string
	Key       string
	Err       error
}

func (e *SettingsError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("settings %s failed for key %s: %v", e.Operation, e.Key, e.Err)
	}
	return fmt.Sprintf("settings %s failed: %v", e.Operation, e.Err)
}

func (e *SettingsError) Unwrap() error {
	return e.Err
}

// NewSettingsError creates a new settings error
func NewSettingsError(operation, key string, err error) *SettingsError {
	return &SettingsError{
		Operation: operation,
		Key:       key,
		Err:       err,
	}
}
