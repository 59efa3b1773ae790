package lastfm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a service-reported error.
type ErrorKind int

// Error kinds. Codes the package does not know map to KindUnclassified.
const (
	KindUnclassified ErrorKind = iota
	KindInvalidInput
	KindServiceOffline
	KindRateLimitExceeded
)

// String returns a human readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindServiceOffline:
		return "service offline"
	case KindRateLimitExceeded:
		return "rate limit exceeded"
	default:
		return "unclassified"
	}
}

// kindByCode maps Last.fm error codes to kinds.
var kindByCode = map[int]ErrorKind{
	ErrCodeInvalidParameters: KindInvalidInput,
	ErrCodeServiceOffline:    KindServiceOffline,
	ErrCodeRateLimitExceeded: KindRateLimitExceeded,
}

// KindOf returns the kind for a Last.fm error code.
func KindOf(code int) ErrorKind {
	if k, ok := kindByCode[code]; ok {
		return k
	}
	return KindUnclassified
}

// Error represents a Last.fm API error.
//
// The Error type carries the raw Last.fm error code and message together
// with the Kind derived from the code. Unknown codes keep their raw code
// and message and have KindUnclassified.
type Error struct {
	Kind    ErrorKind // Classification derived from Code
	Code    int       // Last.fm error code
	Message string    // Error message from Last.fm
}

// newError builds an Error for a service-reported code.
func newError(code int, message string) *Error {
	return &Error{Kind: KindOf(code), Code: code, Message: message}
}

// Error returns the error message.
func (e *Error) Error() string {
	return fmt.Sprintf("lastfm: error %d (%s): %s", e.Code, e.Kind, e.Message)
}

// Is checks if the target error is a matching Last.fm error.
//
// A target with a zero Code (the Err* kind sentinels) matches on Kind;
// any other target matches on Code. This allows
// errors.Is(err, lastfm.ErrInvalidInput) and
// errors.Is(err, &lastfm.Error{Code: 10}) to work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code == 0 {
		return e.Kind == t.Kind
	}
	return e.Code == t.Code
}

// Temporary returns true if the error is temporary and the request
// could succeed later.
//
// The following Last.fm error codes are considered temporary:
//   - 11: Service Offline - temporarily unavailable
//   - 16: Service Temporarily Unavailable
//   - 29: Rate Limit Exceeded
//
// The client never retries on its own; this is a hint for callers.
func (e *Error) Temporary() bool {
	switch e.Code {
	case ErrCodeServiceOffline, ErrCodeTempUnavailable, ErrCodeRateLimitExceeded:
		return true
	default:
		return false
	}
}

// Common Last.fm error codes.
const (
	ErrCodeInvalidService       = 2
	ErrCodeInvalidMethod        = 3
	ErrCodeAuthenticationFailed = 4
	ErrCodeInvalidFormat        = 5
	ErrCodeInvalidParameters    = 6
	ErrCodeInvalidResourceSpec  = 7
	ErrCodeOperationFailed      = 8
	ErrCodeInvalidSessionKey    = 9
	ErrCodeInvalidAPIKey        = 10
	ErrCodeServiceOffline       = 11
	ErrCodeSubscribersOnly      = 12
	ErrCodeInvalidSignature     = 13
	ErrCodeUnauthorizedToken    = 14
	ErrCodeExpiredToken         = 15
	ErrCodeTempUnavailable      = 16
	ErrCodeSuspendedAPIKey      = 26
	ErrCodeRateLimitExceeded    = 29
)

// Kind sentinels for use with errors.Is.
var (
	// ErrInvalidInput matches code 6: the request matched nothing or its
	// identifying parameters were malformed.
	ErrInvalidInput = &Error{Kind: KindInvalidInput}

	// ErrServiceOffline matches code 11.
	ErrServiceOffline = &Error{Kind: KindServiceOffline}

	// ErrRateLimitExceeded matches code 29.
	ErrRateLimitExceeded = &Error{Kind: KindRateLimitExceeded}

	// ErrUnclassified matches any code without a dedicated kind.
	ErrUnclassified = &Error{Kind: KindUnclassified}
)

// Predefined errors for common cases.
var (
	// ErrInvalidConfig is returned when client configuration is invalid.
	ErrInvalidConfig = errors.New("lastfm: invalid configuration")

	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("lastfm: transport failure")
)

// TransportError reports a failure that is not a service-reported error:
// the request could not be sent, the status was unexpected, or the body
// could not be read or decoded.
type TransportError struct {
	Method     string // Last.fm method being called
	StatusCode int    // HTTP status, 0 if no response was received
	Err        error  // Underlying cause
}

// Error returns the error message.
func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("lastfm: %s: HTTP %d: %v", e.Method, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("lastfm: %s: %v", e.Method, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
