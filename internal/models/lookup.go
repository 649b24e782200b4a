// Package models defines the persisted types shared by vibeui packages.
package models

import (
	"fmt"
	"strings"
	"time"
)

// LookupKind is the facade operation that produced a lookup.
type LookupKind string

const (
	LookupKindList   LookupKind = "list"
	LookupKindName   LookupKind = "name"
	LookupKindIntent LookupKind = "intent"
)

// ParseLookupKind parses a kind name as used on the command line.
func ParseLookupKind(s string) (LookupKind, error) {
	switch k := LookupKind(strings.ToLower(strings.TrimSpace(s))); k {
	case LookupKindList, LookupKindName, LookupKindIntent:
		return k, nil
	default:
		return "", fmt.Errorf("unknown lookup kind %q (want list, name or intent)", s)
	}
}

// LookupOutcome is how a lookup ended.
type LookupOutcome string

const (
	OutcomeMatched       LookupOutcome = "matched"
	OutcomeNotFound      LookupOutcome = "not_found"
	OutcomeNoMatch       LookupOutcome = "no_match"
	OutcomeInvalidFormat LookupOutcome = "invalid_format"
)

// Lookup is one recorded facade call.
type Lookup struct {
	// ID is the unique identifier for the lookup.
	ID string `json:"id"`

	// Timestamp is when the lookup was served.
	Timestamp time.Time `json:"timestamp"`

	Kind LookupKind `json:"kind"`

	// Query is the name or intent text as the caller sent it.
	Query string `json:"query,omitempty"`

	// Format is the requested response format.
	Format string `json:"format"`

	Outcome LookupOutcome `json:"outcome"`

	// ThemeID is the resolved theme, empty unless Outcome is matched.
	ThemeID string `json:"theme_id,omitempty"`

	// Score is the intent score of the resolved theme.
	Score int `json:"score,omitempty"`

	// Metadata holds extra context such as suggestions.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Validate checks that the required fields are set.
func (l *Lookup) Validate() error {
	if l.Kind == "" {
		return fmt.Errorf("lookup kind is required")
	}
	if l.Outcome == "" {
		return fmt.Errorf("lookup outcome is required")
	}
	if l.Outcome == OutcomeMatched && l.Kind != LookupKindList && l.ThemeID == "" {
		return fmt.Errorf("matched lookup requires a theme id")
	}
	return nil
}
