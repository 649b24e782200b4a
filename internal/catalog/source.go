package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RawRecord is one undecoded theme document as yielded by a Source.
type RawRecord struct {
	Origin string     // file path, or "builtin:<file>"
	Node   *yaml.Node // nil when Err is set
	Err    error      // read or parse failure for this document
}

// Source enumerates raw theme documents. Implementations return records in
// their own enumeration order; the catalog never assumes it is sorted.
type Source interface {
	Records() ([]RawRecord, error)
}

// SourceUnavailableError reports a record source that could not be read.
// The catalog treats it as zero records.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("theme source %s unavailable: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// StaticSource serves a fixed list of raw records. Useful for fixtures.
type StaticSource []RawRecord

// Records implements Source.
func (s StaticSource) Records() ([]RawRecord, error) {
	out := make([]RawRecord, len(s))
	copy(out, s)
	return out, nil
}

// DirSource reads one theme per .json, .yaml or .yml file in Dir.
type DirSource struct {
	Dir string
}

// Records implements Source. A missing directory is reported as a
// *SourceUnavailableError with no records.
func (s DirSource) Records() ([]RawRecord, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return nil, &SourceUnavailableError{Path: s.Dir, Err: errors.New("directory is required")}
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, &SourceUnavailableError{Path: s.Dir, Err: err}
	}

	records := make([]RawRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isThemeFile(entry.Name()) {
			continue
		}
		path := filepath.Join(s.Dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			records = append(records, RawRecord{Origin: path, Err: fmt.Errorf("read theme %s: %w", path, err)})
			continue
		}
		records = append(records, decodeRecord(path, data))
	}
	return records, nil
}

// fsSource reads theme files from a directory of an fs.FS.
func fsSource(fsys fs.FS, dir, originPrefix string) ([]RawRecord, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read %s themes: %w", originPrefix, err)
	}

	records := make([]RawRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isThemeFile(entry.Name()) {
			continue
		}
		origin := originPrefix + ":" + entry.Name()
		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			records = append(records, RawRecord{Origin: origin, Err: fmt.Errorf("read theme %s: %w", origin, err)})
			continue
		}
		records = append(records, decodeRecord(origin, data))
	}
	return records, nil
}

// ParseDocument decodes a single YAML or JSON theme document.
func ParseDocument(data []byte) (*yaml.Node, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if node.Kind == 0 || (node.Kind == yaml.DocumentNode && len(node.Content) == 0) {
		return nil, errors.New("empty document")
	}
	return &node, nil
}

func decodeRecord(origin string, data []byte) RawRecord {
	node, err := ParseDocument(data)
	if err != nil {
		return RawRecord{Origin: origin, Err: fmt.Errorf("parse theme %s: %w", origin, err)}
	}
	return RawRecord{Origin: origin, Node: node}
}

func isThemeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
