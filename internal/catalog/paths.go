package catalog

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// SearchPaths returns theme directories in precedence order.
func SearchPaths(projectDir string) []string {
	paths := make([]string, 0, 2+len(xdg.DataDirs))
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".vibeui", "themes"))
	}
	if xdg.ConfigHome != "" {
		paths = append(paths, filepath.Join(xdg.ConfigHome, "vibeui", "themes"))
	}
	for _, dir := range xdg.DataDirs {
		paths = append(paths, filepath.Join(dir, "vibeui", "themes"))
	}
	return paths
}

// SearchPathSource chains an explicit directory, the search paths and the
// builtin themes. Records are yielded in that order, so with the catalog's
// first-wins policy user themes shadow builtins of the same id.
type SearchPathSource struct {
	// Dir is an explicitly configured directory; unlike search paths it is
	// reported when missing.
	Dir        string
	ProjectDir string
	Builtin    bool
}

// Records implements Source.
func (s SearchPathSource) Records() ([]RawRecord, error) {
	var (
		records []RawRecord
		errs    []error
	)

	if strings.TrimSpace(s.Dir) != "" {
		found, err := DirSource{Dir: s.Dir}.Records()
		if err != nil {
			errs = append(errs, err)
		}
		records = append(records, found...)
	}

	for _, path := range SearchPaths(s.ProjectDir) {
		found, err := DirSource{Dir: path}.Records()
		if err != nil {
			// Search paths are optional.
			continue
		}
		records = append(records, found...)
	}

	if s.Builtin {
		found, err := BuiltinSource{}.Records()
		if err != nil {
			errs = append(errs, err)
		}
		records = append(records, found...)
	}

	return records, errors.Join(errs...)
}
