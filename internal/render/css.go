// Package render turns theme records into CSS text and framework config.
//
// Every function here is pure: the same record always renders to the same
// bytes, because all iteration follows the record's ordered mappings.
package render

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/vibeui/internal/theme"
)

// Renderer renders records in the shape of one profile.
type Renderer struct {
	profile theme.Profile
}

// New returns a renderer for profile. Unknown profiles render as Tailwind.
func New(profile theme.Profile) Renderer {
	return Renderer{profile: profile}
}

// Profile returns the profile the renderer targets.
func (r Renderer) Profile() theme.Profile {
	return r.profile
}

// CSS renders the complete stylesheet: header comment, variable block and,
// when the record has any, the keyframe blocks.
func (r Renderer) CSS(rec *theme.Record) string {
	var b strings.Builder
	b.WriteString(r.header(rec))
	b.WriteByte('\n')
	b.WriteString(r.Block(rec))

	if keyframes := Keyframes(rec); keyframes != "" {
		b.WriteString("\n\n/* Animations */\n")
		b.WriteString(keyframes)
	}
	return b.String()
}

// Block renders only the variable block wrapped in the profile's selector.
func (r Renderer) Block(rec *theme.Record) string {
	var b strings.Builder
	b.WriteString(r.selector(rec))
	b.WriteString(" {\n")
	for key, value := range rec.Tokens.All() {
		fmt.Fprintf(&b, "  %s: %s;\n", key, value)
	}
	for role, fonts := range rec.FontFamilies.All() {
		fmt.Fprintf(&b, "  --font-%s: %s;\n", role, FontList(fonts))
	}
	b.WriteString("}")
	return b.String()
}

func (r Renderer) header(rec *theme.Record) string {
	if r.profile == theme.ProfileDaisy {
		return fmt.Sprintf("/* DaisyUI v5 theme variables for %s */", rec.ID)
	}
	return fmt.Sprintf("/* %s Theme */", rec.Name)
}

func (r Renderer) selector(rec *theme.Record) string {
	if r.profile == theme.ProfileDaisy {
		return fmt.Sprintf("[data-theme=%q]", rec.ID)
	}
	return "@theme"
}

// Keyframes renders one @keyframes block per entry, separated by blank
// lines. It returns "" when the record has no keyframes.
func Keyframes(rec *theme.Record) string {
	if rec.Keyframes.Len() == 0 {
		return ""
	}
	blocks := make([]string, 0, rec.Keyframes.Len())
	for name, body := range rec.Keyframes.All() {
		blocks = append(blocks, fmt.Sprintf("@keyframes %s {\n%s\n}", name, strings.TrimRight(body, "\n")))
	}
	return strings.Join(blocks, "\n\n")
}

// FontList joins font names for a CSS font-family value, quoting names
// that contain spaces.
func FontList(fonts []string) string {
	parts := make([]string, len(fonts))
	for i, f := range fonts {
		if strings.Contains(f, " ") {
			parts[i] = `"` + f + `"`
		} else {
			parts[i] = f
		}
	}
	return strings.Join(parts, ", ")
}
