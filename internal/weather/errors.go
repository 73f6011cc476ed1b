package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork matches any NetworkError via errors.Is.
	ErrNetwork = errors.New("network error")
	// ErrProvider matches any ProviderError via errors.Is.
	ErrProvider = errors.New("provider error")
)

// NetworkError reports a request that could not complete: connectivity,
// timeout, cancellation or an open circuit.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, ErrNetwork)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, ErrNetwork, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ProviderError reports a completed request that the provider answered with a
// non-success status, or whose payload could not be mapped.
// StatusCode is zero for mapping failures.
type ProviderError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Op, ErrProvider)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }
