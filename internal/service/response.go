package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/opencode-ai/vibeui/internal/render"
	"github.com/opencode-ai/vibeui/internal/theme"
)

// Format selects how much of a record a response carries.
type Format string

const (
	FormatSummary  Format = "summary"
	FormatDetailed Format = "detailed"
)

// ParseFormat parses a format argument. An empty string yields def.
func ParseFormat(s string, def Format) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return def, nil
	case FormatSummary, FormatDetailed:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want summary or detailed)", s)
	}
}

// Envelope is the uniform result of every facade operation.
type Envelope struct {
	// Text is 2-space indented JSON.
	Text    string `json:"text"`
	IsError bool   `json:"isError"`
}

// Decode unmarshals the envelope text into v.
func (e Envelope) Decode(v any) error {
	return json.Unmarshal([]byte(e.Text), v)
}

type listSummary struct {
	Count  int      `json:"count"`
	Themes []string `json:"themes"`
}

type listDetailed struct {
	Designs []theme.Summary `json:"designs"`
}

type designResponse struct {
	ID        string                   `json:"id"`
	Name      string                   `json:"name"`
	Tags      []string                 `json:"tags,omitzero"`
	MatchedBy string                   `json:"matchedBy,omitempty"`
	Score     int                      `json:"score,omitempty"`
	Tokens    theme.OrderedMap[string] `json:"tokens"`
	CSS       string                   `json:"css"`
	Config    *render.FrameworkConfig  `json:"config,omitempty"`
	Design    *designDetail            `json:"design,omitempty"`
}

type designDetail struct {
	Aliases          []string                   `json:"aliases,omitempty"`
	Description      string                     `json:"description,omitempty"`
	Notes            string                     `json:"notes,omitempty"`
	FontFamilies     theme.OrderedMap[[]string] `json:"fontFamilies,omitzero"`
	Keyframes        theme.OrderedMap[string]   `json:"keyframes,omitzero"`
	Patterns         theme.OrderedMap[string]   `json:"patterns,omitzero"`
	Fonts            []theme.Font               `json:"fonts,omitempty"`
	BuiltInThemeHint string                     `json:"builtInThemeHint,omitempty"`
	Version          string                     `json:"version,omitempty"`
	Extended         map[string]any             `json:"extended,omitempty"`
	Source           string                     `json:"source,omitempty"`
}

type internalResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type notFoundResponse struct {
	Error       string   `json:"error"`
	Message     string   `json:"message"`
	Name        string   `json:"name"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type noMatchResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Intent  string `json:"intent"`
	Reason  string `json:"reason,omitempty"`
}

type invalidFormatResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Format  string   `json:"format"`
	Allowed []Format `json:"allowed"`
}

type helpResponse struct {
	Profile    theme.Profile   `json:"profile"`
	Formats    []Format        `json:"formats"`
	Operations []operationHelp `json:"operations"`
	Tokens     tokenHelp       `json:"tokens"`
}

type operationHelp struct {
	Name          string `json:"name"`
	Input         string `json:"input"`
	Output        string `json:"output"`
	DefaultFormat Format `json:"defaultFormat,omitempty"`
}

type tokenHelp struct {
	Mode     theme.Mode `json:"mode"`
	Required []string   `json:"required,omitempty"`
	Notes    []string   `json:"notes"`
}

// encode renders v as 2-space indented JSON without HTML escaping, so CSS
// selectors survive intact.
func encode(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
