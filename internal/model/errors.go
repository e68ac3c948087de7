package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidToken is the umbrella for every token failure.
var ErrInvalidToken = errors.New("invalid token")

var (
	ErrMissingToken   = fmt.Errorf("%w: missing", ErrInvalidToken)
	ErrMalformedToken = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTamperedToken  = fmt.Errorf("%w: signature mismatch", ErrInvalidToken)
	ErrExpiredToken   = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrConsumedToken  = fmt.Errorf("%w: already consumed", ErrInvalidToken)
)

var (
	ErrInvalidOTP     = errors.New("otp mismatch")
	ErrUploadRejected = errors.New("upload rejected")
)

// Dependencies reported through DependencyError.
const (
	DependencyHasher   = "hasher"
	DependencyCodes    = "codes"
	DependencyCodec    = "codec"
	DependencyNotifier = "notifier"
	DependencyStorage  = "storage"
	DependencyGuard    = "guard"
)

// ValidationError reports client-correctable input problems.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// NewValidationError creates a ValidationError for the given fields.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

// DependencyError reports a failure of a collaborator the client cannot fix.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

// NewDependencyError wraps err as a failure of dependency.
func NewDependencyError(dependency string, err error) *DependencyError {
	return &DependencyError{Dependency: dependency, Err: err}
}

// UploadRejection explains why an uploaded file was refused.
// It matches ErrUploadRejected with errors.Is.
type UploadRejection struct {
	Reason string
}

func (e *UploadRejection) Error() string {
	return e.Reason
}

func (e *UploadRejection) Is(target error) bool {
	return target == ErrUploadRejected
}
