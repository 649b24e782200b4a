// Package theme defines design theme records and validates raw theme documents.
package theme

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Record is a validated design theme. Records are shared read-only after load.
type Record struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	Tags             []string             `json:"tags"`
	Aliases          []string             `json:"aliases,omitempty"`
	Tokens           OrderedMap[string]   `json:"tokens"`
	FontFamilies     OrderedMap[[]string] `json:"fontFamilies,omitzero"`
	Keyframes        OrderedMap[string]   `json:"keyframes,omitzero"`
	Patterns         OrderedMap[string]   `json:"patterns,omitzero"`
	Fonts            []Font               `json:"fonts,omitempty"`
	Description      string               `json:"description,omitempty"`
	BuiltInThemeHint string               `json:"builtInThemeHint,omitempty"`
	Notes            string               `json:"notes,omitempty"`
	Version          string               `json:"version,omitempty"`
	Extended         map[string]any       `json:"extended,omitempty"`
	Source           string               `json:"-"` // file path or "builtin"
}

// Font is a web font package the theme expects to be installed.
type Font struct {
	Package  string    `json:"package" yaml:"package"`
	Weights  []float64 `json:"weights" yaml:"weights"`
	Styles   []string  `json:"styles,omitempty" yaml:"styles,omitempty"`
	Variable *bool     `json:"variable,omitempty" yaml:"variable,omitempty"`
}

// document is the canonical serialized shape of a Record.
type document struct {
	Version      string               `yaml:"version,omitempty"`
	ID           string               `yaml:"id"`
	Name         string               `yaml:"name"`
	Tags         []string             `yaml:"tags"`
	Aliases      []string             `yaml:"aliases,omitempty"`
	Tokens       OrderedMap[string]   `yaml:"tokens"`
	FontFamilies OrderedMap[[]string] `yaml:"fontFamilies,omitempty"`
	Keyframes    OrderedMap[string]   `yaml:"keyframes,omitempty"`
	Patterns     OrderedMap[string]   `yaml:"patterns,omitempty"`
	Fonts        []Font               `yaml:"fonts,omitempty"`
	Description  string               `yaml:"description,omitempty"`
	Notes        string               `yaml:"notes,omitempty"`
	Metadata     *documentMetadata    `yaml:"metadata,omitempty"`
	Extended     map[string]any       `yaml:"extended,omitempty"`
}

type documentMetadata struct {
	BuiltInThemeHint string `yaml:"builtInThemeHint"`
}

// Raw encodes the record back into an untyped document node in canonical
// form. Validating the result yields a record equal to r (minus Source).
func (r *Record) Raw() (*yaml.Node, error) {
	doc := document{
		Version:      r.Version,
		ID:           r.ID,
		Name:         r.Name,
		Tags:         r.Tags,
		Aliases:      r.Aliases,
		Tokens:       r.Tokens,
		FontFamilies: r.FontFamilies,
		Keyframes:    r.Keyframes,
		Patterns:     r.Patterns,
		Fonts:        r.Fonts,
		Description:  r.Description,
		Notes:        r.Notes,
		Extended:     r.Extended,
	}
	if doc.Tags == nil {
		doc.Tags = []string{}
	}
	if r.BuiltInThemeHint != "" {
		doc.Metadata = &documentMetadata{BuiltInThemeHint: r.BuiltInThemeHint}
	}

	var node yaml.Node
	if err := node.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode theme %s: %w", r.ID, err)
	}
	return &node, nil
}

// Summary is the compact listing form of a record.
type Summary struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Summary returns the listing form of the record.
func (r *Record) Summary() Summary {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return Summary{ID: r.ID, Name: r.Name, Tags: tags}
}
