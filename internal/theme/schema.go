package theme

import (
	"fmt"
	"strings"
)

// Mode controls how the validator treats token keys.
type Mode string

const (
	// ModeClosed requires exactly the configured token vocabulary.
	ModeClosed Mode = "closed"
	// ModeOpen accepts any token keys.
	ModeOpen Mode = "open"
)

// Schema configures the validator.
type Schema struct {
	Mode           Mode
	RequiredTokens []string
}

// DaisyVars are the DaisyUI v5 theme variables, in canonical order.
var DaisyVars = []string{
	"--color-base-100",
	"--color-base-200",
	"--color-base-300",
	"--color-base-content",
	"--color-primary",
	"--color-primary-content",
	"--color-secondary",
	"--color-secondary-content",
	"--color-accent",
	"--color-accent-content",
	"--color-neutral",
	"--color-neutral-content",
	"--color-info",
	"--color-info-content",
	"--color-success",
	"--color-success-content",
	"--color-warning",
	"--color-warning-content",
	"--color-error",
	"--color-error-content",
	"--radius-selector",
	"--radius-field",
	"--radius-box",
	"--size-selector",
	"--size-field",
	"--border",
	"--depth",
	"--noise",
}

// DaisySchema is the closed DaisyUI v5 vocabulary.
func DaisySchema() Schema {
	required := make([]string, len(DaisyVars))
	copy(required, DaisyVars)
	return Schema{Mode: ModeClosed, RequiredTokens: required}
}

// TailwindSchema accepts any token keys.
func TailwindSchema() Schema {
	return Schema{Mode: ModeOpen}
}

// Profile selects the output shape a deployment serves.
type Profile string

const (
	// ProfileDaisy serves DaisyUI theme variables in [data-theme] blocks.
	ProfileDaisy Profile = "daisy"
	// ProfileTailwind serves Tailwind v4 @theme blocks and config objects.
	ProfileTailwind Profile = "tailwind"
)

// ParseProfile parses a profile name.
func ParseProfile(s string) (Profile, error) {
	switch Profile(strings.ToLower(strings.TrimSpace(s))) {
	case ProfileDaisy:
		return ProfileDaisy, nil
	case ProfileTailwind:
		return ProfileTailwind, nil
	default:
		return "", fmt.Errorf("unknown profile %q (want daisy or tailwind)", s)
	}
}

// Schema returns the validator schema a profile uses by default.
func (p Profile) Schema() Schema {
	if p == ProfileDaisy {
		return DaisySchema()
	}
	return TailwindSchema()
}
