// ABOUTME: Error types for the gateway
// ABOUTME: Separates transport failures from tool-process failures
package gateway

import "fmt"

// TransportError reports a failed relay session. It triggers a reconnect and
// never reaches tool semantics.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProcessError reports a tool process that could not be started or kept
// running. It triggers a restart.
type ProcessError struct {
	Err error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("tool process: %v", e.Err)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
