// Package apperr defines the error taxonomy shared by every internal
// layer. Persistence, catalog and coordinator code returns *Error
// values; only the transport edge (the service handlers and the auth
// interceptor) translates them to gRPC status codes, so nothing below
// that edge imports grpc.
package apperr

import "fmt"

// Kind classifies an error the way §7 of the specification requires.
type Kind int

const (
	// Internal covers database errors and catalog failures on read
	// paths that cannot be completed without the missing data.
	Internal Kind = iota
	// InvalidArgument covers handler precondition failures.
	InvalidArgument
	// Unauthenticated covers a missing, malformed or invalid bearer token.
	Unauthenticated
	// NotFound covers an empty chart for the requested filters.
	NotFound
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid_argument"
	case Unauthenticated:
		return "unauthenticated"
	case NotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is the application-level error type. Reason is safe to surface
// to a client; the wrapped Cause is not and is only written to logs.
type Error struct {
	Kind   Kind
	Reason string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an *Error with no underlying cause, for precondition
// failures that originate in the handler itself.
func New(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// Wrap annotates an underlying error (typically from store or catalog)
// with a client-safe reason and a kind, without leaking cause details.
func Wrap(kind Kind, reason string, cause error) *Error {
	return &Error{Kind: kind, Reason: reason, Cause: cause}
}

// Invalid is a convenience constructor for the common handler-validation case.
func Invalid(reason string) *Error { return New(InvalidArgument, reason) }

// Internalf wraps a cause as an Internal error, for database/catalog failures
// on read paths that cannot be completed without the missing result.
func Internalf(reason string, cause error) *Error {
	return Wrap(Internal, reason, cause)
}

// NotFoundf constructs a NotFound error, for an empty result set that
// nonetheless represents a valid query.
func NotFoundf(reason string) *Error { return New(NotFound, reason) }

// Unauthenticatedf wraps an authentication failure. The reason is
// intentionally generic; callers should never put token contents here.
func Unauthenticatedf(reason string) *Error { return New(Unauthenticated, reason) }

// As is a small helper mirroring errors.As for the common case of
// checking whether an error (possibly wrapped) is an *Error.
func As(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
