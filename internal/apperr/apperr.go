// Package apperr defines the error taxonomy shared across the tool.
//
// ConfigError is fatal and terminates the process at startup. RemoteError,
// ParseError and TransportError are all recovered at the single fetch
// boundary: the failing target is recorded as an error sample and the batch
// continues.
package apperr

import "fmt"

// ConfigError reports an unusable configuration (missing or placeholder API
// key, unreadable config document, no URLs resolved).
type ConfigError struct {
	Message string
	Hint    string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

func NewConfig(msg, hint string) *ConfigError {
	return &ConfigError{Message: msg, Hint: hint}
}

func NewConfigWrap(msg string, err error) *ConfigError {
	return &ConfigError{Message: msg, Err: err}
}

// RemoteError is an error payload reported by the scoring API itself.
type RemoteError struct {
	URL     string
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error for %s (code %d): %s", e.URL, e.Code, e.Message)
}

// ParseError reports a response body that does not have the expected shape.
type ParseError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error for %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse error for %s: %s", e.URL, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// TransportError reports a network-level failure before any payload was read.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
