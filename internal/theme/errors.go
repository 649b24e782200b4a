package theme

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidRecord is wrapped by every ValidationError.
	ErrInvalidRecord = errors.New("invalid theme record")
	// ErrInvalidSchema is returned when the validator configuration itself is malformed.
	ErrInvalidSchema = errors.New("invalid theme schema")
	// ErrNotFound is returned when exact-name resolution finds no theme.
	ErrNotFound = errors.New("theme not found")
	// ErrNoMatch is returned when intent resolution finds no theme.
	ErrNoMatch = errors.New("no theme matches intent")
)

// Issue is a single violated constraint on one field of a theme document.
type Issue struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
}

func (i Issue) String() string {
	if i.Field == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// ValidationError describes every problem found in a theme document.
type ValidationError struct {
	ID     string // empty when the id itself was unusable
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	if e.ID != "" {
		return fmt.Sprintf("theme %q: %s", e.ID, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("theme: %s", strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// HasField reports whether any issue concerns the given field.
func (e *ValidationError) HasField(field string) bool {
	for _, issue := range e.Issues {
		if issue.Field == field {
			return true
		}
	}
	return false
}

// NotFoundError is returned when no theme has the requested id, name or alias.
type NotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("design %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NoMatchError is returned when an intent scores zero against every theme.
type NoMatchError struct {
	Intent string
	// Reason is "no-keywords" when tokenization left nothing to score.
	Reason string
}

func (e *NoMatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("no design found matching intent %q (%s)", e.Intent, e.Reason)
	}
	return fmt.Sprintf("no design found matching intent %q", e.Intent)
}

func (e *NoMatchError) Unwrap() error {
	return ErrNoMatch
}
