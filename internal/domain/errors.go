package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for the failure modes of the profile view.
var (
	// ErrAuthMissing means no identity could be resolved for the request.
	// Callers redirect to the login page instead of showing an error.
	ErrAuthMissing = errors.New("no authenticated identity")

	// ErrInvalidIdentity means a stored identity record cannot form a valid variant,
	// e.g. a member without a roll number.
	ErrInvalidIdentity = errors.New("invalid identity record")

	// ErrFetchFailed means the issue list could not be retrieved.
	ErrFetchFailed = errors.New("failed to fetch issues")

	// ErrReturnFailed means the issue backend did not accept a return.
	ErrReturnFailed = errors.New("failed to return item")

	// ErrMalformedDate means a timestamp could not be parsed.
	ErrMalformedDate = errors.New("malformed timestamp")

	// ErrNotReady means an operation was attempted outside the Ready state.
	ErrNotReady = errors.New("view is not ready")

	// ErrViewNotFound means no live view matched the request.
	ErrViewNotFound = errors.New("view not found")
)

// ReturnError carries the optional message the issue backend supplied when it
// rejected a return. It always matches ErrReturnFailed via errors.Is.
type ReturnError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ReturnError) Error() string {
	if e.Message != "" {
		return "return rejected: " + e.Message
	}
	if e.Err != nil {
		return "return rejected: " + e.Err.Error()
	}
	return "return rejected"
}

func (e *ReturnError) Is(target error) bool { return target == ErrReturnFailed }

func (e *ReturnError) Unwrap() error { return e.Err }
