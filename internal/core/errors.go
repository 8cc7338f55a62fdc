package core

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput matches a ValidationError for blank input
	ErrEmptyInput = errors.New("empty input")
	// ErrTooShort matches a ValidationError for input under the minimum length
	ErrTooShort = errors.New("input too short")
)

// ValidationReason identifies why input was rejected
type ValidationReason int

const (
	ReasonEmpty ValidationReason = iota
	ReasonTooShort
)

// ValidationError is returned when the submitted text cannot be analyzed
type ValidationError struct {
	Reason    ValidationReason
	MinLength int
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmpty:
		return ErrEmptyInput.Error()
	default:
		return fmt.Sprintf("%s: minimum is %d characters", ErrTooShort, e.MinLength)
	}
}

// Is lets errors.Is match the reason sentinels
func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrEmptyInput:
		return e.Reason == ReasonEmpty
	case ErrTooShort:
		return e.Reason == ReasonTooShort
	}
	return false
}

// UserMessage is the corrective message shown to the user
func (e *ValidationError) UserMessage() string {
	if e.Reason == ReasonEmpty {
		return "❌ Please enter some news content to analyze."
	}
	return fmt.Sprintf("❌ Please provide more substantial news content (at least %d characters).", e.MinLength)
}

// ClassificationError wraps any failure of the classifier call
type ClassificationError struct {
	Model string
	Err   error
}

func (e *ClassificationError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("classification failed: %v", e.Err)
	}
	return fmt.Sprintf("classification with %s failed: %v", e.Model, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// RetrievalError wraps a similarity lookup failure. The engine never
// surfaces it to callers.
type RetrievalError struct {
	Err error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("similarity lookup failed: %v", e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// UnmappedLabelError is returned when a classifier emits a label that the
// configured label map does not cover
type UnmappedLabelError struct {
	Label string
}

func (e *UnmappedLabelError) Error() string {
	return fmt.Sprintf("label %q is not mapped to a category", e.Label)
}
