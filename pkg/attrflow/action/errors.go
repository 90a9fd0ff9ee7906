package action

import (
	"errors"
	"fmt"
)

// Sentinel errors for action configuration.
var (
	// ErrNoStates indicates a Children or Parent action without CheckState.
	ErrNoStates = errors.New("no check states configured")

	// ErrUnknownScope indicates an unrecognized CheckedObjects value.
	ErrUnknownScope = errors.New("unknown checked objects")
)

// ObjectError wraps an error with the object and step it occurred in.
type ObjectError struct {
	// ObjectID is the object being read or written.
	ObjectID string
	// Op is the step that failed ("reset", "set", "copy", "store", ...).
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ObjectError) Error() string {
	return fmt.Sprintf("object %s: %s: %v", e.ObjectID, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ObjectError) Unwrap() error {
	return e.Err
}

// ConfigError reports a configuration key that could not be decoded.
type ConfigError struct {
	Key string
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}
