package theme

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// tokenFields lists the document fields that may carry tokens, in lookup order.
var tokenFields = []string{"tokens", "daisyThemeVars", "tailwind"}

// Validator turns raw theme documents into Records.
type Validator struct {
	schema   Schema
	required map[string]struct{}
}

// NewValidator checks the schema configuration and builds a validator.
// A malformed schema is a programming error and should abort startup.
func NewValidator(schema Schema) (*Validator, error) {
	switch schema.Mode {
	case ModeClosed:
		if len(schema.RequiredTokens) == 0 {
			return nil, fmt.Errorf("%w: closed mode needs at least one required token", ErrInvalidSchema)
		}
	case ModeOpen:
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrInvalidSchema, schema.Mode)
	}

	required := make(map[string]struct{}, len(schema.RequiredTokens))
	for i, key := range schema.RequiredTokens {
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w: required token %d is blank", ErrInvalidSchema, i)
		}
		if _, dup := required[key]; dup {
			return nil, fmt.Errorf("%w: required token %q listed twice", ErrInvalidSchema, key)
		}
		required[key] = struct{}{}
	}

	return &Validator{schema: schema, required: required}, nil
}

// Schema returns the schema the validator enforces.
func (v *Validator) Schema() Schema {
	return v.schema
}

// Validate checks a raw document and returns the record it describes.
// The returned error is always a *ValidationError.
func (v *Validator) Validate(raw *yaml.Node) (*Record, error) {
	c := &checker{}

	root := deref(raw)
	if root != nil && root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			root = nil
		} else {
			root = deref(root.Content[0])
		}
	}
	if root == nil {
		c.add("", "required", "document is empty")
		return nil, c.err("")
	}
	if root.Kind != yaml.MappingNode {
		c.add("", "type", "document must be a mapping")
		return nil, c.err("")
	}

	fields := c.fields(root, "")
	rec := &Record{}

	rec.ID = c.requiredString(fields, "id")
	if rec.ID != "" && !idPattern.MatchString(rec.ID) {
		c.add("id", "format", "must be lowercase letters and digits separated by single hyphens")
	}
	rec.Name = c.requiredString(fields, "name")
	rec.Tags = c.stringList(fields["tags"], "tags", true)
	rec.Aliases = c.stringList(fields["aliases"], "aliases", false)
	rec.Version = c.optionalString(fields["version"], "version")
	rec.Notes = c.optionalString(fields["notes"], "notes")

	var tailwindFonts OrderedMap[[]string]
	rec.Tokens, tailwindFonts = v.tokens(c, fields)

	if node, ok := fields["fontFamilies"]; ok {
		rec.FontFamilies = c.fontMap(node, "fontFamilies")
	} else {
		rec.FontFamilies = tailwindFonts
	}

	var extended map[string]*yaml.Node
	if node, ok := fields["extended"]; ok {
		if node.Kind != yaml.MappingNode {
			c.add("extended", "type", "must be a mapping")
		} else {
			extended = c.fields(node, "extended")
			var decoded map[string]any
			if err := node.Decode(&decoded); err != nil {
				c.add("extended", "type", "%s", err)
			} else if len(decoded) > 0 {
				rec.Extended = decoded
			}
		}
	}

	if node, ok := fields["keyframes"]; ok {
		rec.Keyframes = c.stringMap(node, "keyframes")
	} else if node, ok := extended["keyframes"]; ok {
		rec.Keyframes = c.stringMap(node, "extended.keyframes")
	}

	if node, ok := fields["patterns"]; ok {
		rec.Patterns = c.stringMap(node, "patterns")
	}
	rec.Fonts = c.fonts(fields["fonts"])

	var meta map[string]*yaml.Node
	if node, ok := fields["metadata"]; ok {
		if node.Kind != yaml.MappingNode {
			c.add("metadata", "type", "must be a mapping")
		} else {
			meta = c.fields(node, "metadata")
			rec.BuiltInThemeHint = c.optionalString(meta["builtInThemeHint"], "metadata.builtInThemeHint")
		}
	}
	if node, ok := fields["description"]; ok {
		rec.Description = c.optionalString(node, "description")
	} else {
		rec.Description = c.optionalString(meta["description"], "metadata.description")
	}

	if len(c.issues) > 0 {
		return nil, c.err(rec.ID)
	}
	return rec, nil
}

// tokens reads the first token-bearing field present and applies the
// vocabulary rule. Tailwind documents may also carry font families.
func (v *Validator) tokens(c *checker, fields map[string]*yaml.Node) (OrderedMap[string], OrderedMap[[]string]) {
	var (
		tokens OrderedMap[string]
		fonts  OrderedMap[[]string]
		field  string
	)

	for _, name := range tokenFields {
		node, ok := fields[name]
		if !ok {
			continue
		}
		field = name
		if name == "tailwind" {
			tokens, fonts = c.tailwind(node)
		} else {
			tokens = c.stringMap(node, name)
		}
		break
	}

	if field == "" {
		c.add("tokens", "required", "tokens are required (tokens, daisyThemeVars or tailwind)")
		return tokens, fonts
	}

	var missing []string
	for _, key := range v.schema.RequiredTokens {
		if !tokens.Has(key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		c.add(field, "required-keys", "missing %s", strings.Join(missing, ", "))
	}

	if v.schema.Mode == ModeClosed {
		var unknown []string
		for key := range tokens.All() {
			if _, ok := v.required[key]; !ok {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		for _, key := range unknown {
			c.add(field+"."+key, "unknown-key", "not part of the closed token vocabulary")
		}
	}

	return tokens, fonts
}

type checker struct {
	issues []Issue
}

func (c *checker) add(field, constraint, format string, args ...any) {
	c.issues = append(c.issues, Issue{
		Field:      field,
		Constraint: constraint,
		Message:    fmt.Sprintf(format, args...),
	})
}

func (c *checker) err(id string) *ValidationError {
	return &ValidationError{ID: id, Issues: c.issues}
}

// fields indexes a mapping node by key, flagging duplicate keys.
func (c *checker) fields(node *yaml.Node, prefix string) map[string]*yaml.Node {
	out := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, dup := out[key]; dup {
			c.add(join(prefix, key), "duplicate", "key appears more than once")
			continue
		}
		out[key] = deref(node.Content[i+1])
	}
	return out
}

func (c *checker) requiredString(fields map[string]*yaml.Node, key string, prefix ...string) string {
	field := key
	if len(prefix) > 0 {
		field = join(prefix[0], key)
	}
	node, ok := fields[key]
	if !ok {
		c.add(field, "required", "is required")
		return ""
	}
	if !isString(node) {
		c.add(field, "type", "must be a string")
		return ""
	}
	value := strings.TrimSpace(node.Value)
	if value == "" {
		c.add(field, "required", "must not be empty")
	}
	return value
}

func (c *checker) optionalString(node *yaml.Node, field string) string {
	if node == nil {
		return ""
	}
	if !isString(node) {
		c.add(field, "type", "must be a string")
		return ""
	}
	return node.Value
}

// stringList reads a sequence of strings. Optional empty lists come back nil.
func (c *checker) stringList(node *yaml.Node, field string, required bool) []string {
	if node == nil {
		if required {
			c.add(field, "required", "is required")
		}
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		c.add(field, "type", "must be a sequence of strings")
		return nil
	}

	out := make([]string, 0, len(node.Content))
	for i, item := range node.Content {
		item = deref(item)
		if !isString(item) {
			c.add(fmt.Sprintf("%s[%d]", field, i), "type", "must be a string")
			continue
		}
		out = append(out, item.Value)
	}
	if len(out) == 0 && !required {
		return nil
	}
	return out
}

func (c *checker) stringMap(node *yaml.Node, field string) OrderedMap[string] {
	var out OrderedMap[string]
	if node.Kind != yaml.MappingNode {
		c.add(field, "type", "must be a mapping of strings")
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := deref(node.Content[i+1])
		path := join(field, key)
		if out.Has(key) {
			c.add(path, "duplicate", "key appears more than once")
			continue
		}
		if !isString(value) {
			c.add(path, "type", "must be a string")
			continue
		}
		out.Set(key, value.Value)
	}
	return out
}

func (c *checker) fontMap(node *yaml.Node, field string) OrderedMap[[]string] {
	var out OrderedMap[[]string]
	if node.Kind != yaml.MappingNode {
		c.add(field, "type", "must be a mapping of string sequences")
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		path := join(field, key)
		if out.Has(key) {
			c.add(path, "duplicate", "key appears more than once")
			continue
		}
		fonts := c.stringList(deref(node.Content[i+1]), path, true)
		if fonts != nil {
			out.Set(key, fonts)
		}
	}
	return out
}

// fonts reads a sequence of {package, weights, styles?, variable?} mappings.
func (c *checker) fonts(node *yaml.Node) []Font {
	if node == nil {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		c.add("fonts", "type", "must be a sequence of font packages")
		return nil
	}

	var out []Font
	for i, item := range node.Content {
		item = deref(item)
		path := fmt.Sprintf("fonts[%d]", i)
		if item.Kind != yaml.MappingNode {
			c.add(path, "type", "must be a mapping")
			continue
		}
		fields := c.fields(item, path)
		font := Font{
			Package: c.requiredString(fields, "package", path),
			Styles:  c.stringList(fields["styles"], path+".styles", false),
		}

		weights := fields["weights"]
		switch {
		case weights == nil:
			c.add(path+".weights", "required", "is required")
		case weights.Kind != yaml.SequenceNode:
			c.add(path+".weights", "type", "must be a sequence of numbers")
		default:
			font.Weights = make([]float64, 0, len(weights.Content))
			for j, w := range weights.Content {
				w = deref(w)
				var value float64
				if w.Kind != yaml.ScalarNode || (w.ShortTag() != "!!int" && w.ShortTag() != "!!float") || w.Decode(&value) != nil {
					c.add(fmt.Sprintf("%s.weights[%d]", path, j), "type", "must be a number")
					continue
				}
				font.Weights = append(font.Weights, value)
			}
		}

		if v := fields["variable"]; v != nil {
			var variable bool
			if v.Kind != yaml.ScalarNode || v.ShortTag() != "!!bool" || v.Decode(&variable) != nil {
				c.add(path+".variable", "type", "must be a boolean")
			} else {
				font.Variable = &variable
			}
		}
		out = append(out, font)
	}
	return out
}

// tailwind flattens a {colors, borderRadius, fontFamily} object into tokens.
func (c *checker) tailwind(node *yaml.Node) (OrderedMap[string], OrderedMap[[]string]) {
	var (
		tokens OrderedMap[string]
		fonts  OrderedMap[[]string]
	)
	if node.Kind != yaml.MappingNode {
		c.add("tailwind", "type", "must be a mapping")
		return tokens, fonts
	}

	fields := c.fields(node, "tailwind")
	groups := []struct {
		field  string
		prefix string
	}{
		{field: "colors", prefix: "--color-"},
		{field: "borderRadius", prefix: "--radius-"},
	}
	for _, g := range groups {
		child, ok := fields[g.field]
		if !ok {
			c.add("tailwind."+g.field, "required", "is required")
			continue
		}
		values := c.stringMap(child, "tailwind."+g.field)
		for key, value := range values.All() {
			tokens.Set(g.prefix+key, value)
		}
	}

	if child, ok := fields["fontFamily"]; ok {
		fonts = c.fontMap(child, "tailwind.fontFamily")
	}
	return tokens, fonts
}

func isString(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!str"
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
