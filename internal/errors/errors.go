// Package errors provides error definitions for the plugin's outer layers:
// the host transport, host delivery and configuration.
//
// The UI core itself never returns errors. Unknown events and unmet
// calculation preconditions are silent no-ops there; this package only
// describes faults at the boundary, such as a malformed frame from the host
// or a failed write of a render frame.
//
// # Error Types
//
//   - [TransportError]: an inbound frame could not be decoded or routed
//   - [DeliveryError]: an outbound frame could not be written to the host
//
// # Usage
//
//	err := errors.NewTransportError("decode failed", errors.ErrMalformedFrame).
//	    WithFrame(7).
//	    WithHook("on_ui_event")
//
//	if errors.Is(err, errors.ErrMalformedFrame) { ... }
//
//	var te *errors.TransportError
//	if errors.As(err, &te) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)

// Severity is the log level a fault should be reported at.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Transport sentinel errors
var (
	// ErrMalformedFrame indicates an inbound line was not a valid JSON frame.
	ErrMalformedFrame = New("malformed frame")
	// ErrUnknownHook indicates a frame named a hook the plugin does not export.
	ErrUnknownHook = New("unknown hook")
	// ErrUnknownEventType indicates an on_event frame with an unknown event type.
	ErrUnknownEventType = New("unknown event type")
	// ErrUnknownInteraction indicates an on_ui_event frame with an unknown interaction.
	ErrUnknownInteraction = New("unknown interaction")
	// ErrHostClosed indicates the host side of the transport went away.
	ErrHostClosed = New("host closed the transport")
)

// -----------------------------------------------------------------------------
// Base Error
// -----------------------------------------------------------------------------

type baseError struct {
	message   string
	cause     error
	severity  Severity
	retryable bool
}

func (e *baseError) Unwrap() error      { return e.cause }
func (e *baseError) Severity() Severity { return e.severity }
func (e *baseError) IsRetryable() bool  { return e.retryable }

func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// classified is implemented by every error type in this package.
type classified interface {
	error
	Severity() Severity
	IsRetryable() bool
}

// -----------------------------------------------------------------------------
// TransportError
// -----------------------------------------------------------------------------

// TransportError describes a frame the host sent that could not be handled.
// The transport answers it with an error frame and keeps serving.
type TransportError struct {
	baseError
	FrameID int64
	Hook    string
}

// NewTransportError creates a new TransportError.
func NewTransportError(message string, cause error) *TransportError {
	return &TransportError{
		baseError: baseError{message: message, cause: cause, severity: SeverityWarning},
	}
}

// WithFrame records the id of the offending frame.
func (e *TransportError) WithFrame(id int64) *TransportError {
	e.FrameID = id
	return e
}

// WithHook records the hook named by the offending frame.
func (e *TransportError) WithHook(hook string) *TransportError {
	e.Hook = hook
	return e
}

// Error returns the formatted error message.
func (e *TransportError) Error() string {
	var parts []string
	if e.FrameID != 0 {
		parts = append(parts, fmt.Sprintf("frame=%d", e.FrameID))
	}
	if e.Hook != "" {
		parts = append(parts, fmt.Sprintf("hook=%s", e.Hook))
	}
	return e.format("transport error", parts)
}

// -----------------------------------------------------------------------------
// DeliveryError
// -----------------------------------------------------------------------------

// DeliveryError describes an outbound frame that could not be written.
// Delivery failures are retryable: the next render carries the full tree.
type DeliveryError struct {
	baseError
	Target string
}

// NewDeliveryError creates a new DeliveryError.
func NewDeliveryError(message string, cause error) *DeliveryError {
	return &DeliveryError{
		baseError: baseError{message: message, cause: cause, severity: SeverityError, retryable: true},
	}
}

// WithTarget records the render target the frame was meant for.
func (e *DeliveryError) WithTarget(target string) *DeliveryError {
	e.Target = target
	return e
}

// Error returns the formatted error message.
func (e *DeliveryError) Error() string {
	var parts []string
	if e.Target != "" {
		parts = append(parts, fmt.Sprintf("target=%s", e.Target))
	}
	return e.format("delivery error", parts)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsRetryable returns true if err is marked retryable.
func IsRetryable(err error) bool {
	var c classified
	if As(err, &c) {
		return c.IsRetryable()
	}
	return false
}

// GetSeverity returns the severity of err, SeverityError for foreign errors
// and SeverityDebug for nil.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var c classified
	if As(err, &c) {
		return c.Severity()
	}
	return SeverityError
}
