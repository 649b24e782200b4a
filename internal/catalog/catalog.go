// Package catalog loads validated design themes and serves them from memory.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/rs/zerolog"
)

// Rejection records a document that did not enter the catalog.
type Rejection struct {
	Origin string
	Err    error
}

// LoadResult summarizes a catalog load.
type LoadResult struct {
	// Accepted holds records in source enumeration order.
	Accepted []*theme.Record
	Rejected []Rejection
	// Warnings holds non-fatal notes such as dropped duplicate ids.
	Warnings []string
	// SourceErr is set when the source was partly or fully unavailable.
	SourceErr error
}

// Catalog is a read-only, load-once set of theme records keyed by id.
type Catalog struct {
	source    Source
	validator *theme.Validator
	logger    zerolog.Logger

	once    sync.Once
	result  *LoadResult
	byID    map[string]*theme.Record
	ordered []*theme.Record
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the catalog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// New creates a catalog. Nothing is read until Load, List or Get is called.
func New(source Source, validator *theme.Validator, opts ...Option) *Catalog {
	c := &Catalog{
		source:    source,
		validator: validator,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads and validates the source once. Later calls, including
// concurrent ones, wait for the first load and return its result.
func (c *Catalog) Load() *LoadResult {
	c.once.Do(c.load)
	return c.result
}

func (c *Catalog) load() {
	result := &LoadResult{}
	c.byID = make(map[string]*theme.Record)
	c.result = result

	if c.source == nil {
		result.SourceErr = &SourceUnavailableError{Path: "<none>", Err: errors.New("no source configured")}
		c.logger.Warn().Err(result.SourceErr).Msg("theme catalog is empty")
		return
	}

	raws, err := c.source.Records()
	if err != nil {
		result.SourceErr = err
		c.logger.Warn().Err(err).Msg("theme source unavailable, continuing with what was read")
	}

	for _, raw := range raws {
		if raw.Err != nil {
			c.reject(result, raw.Origin, raw.Err)
			continue
		}

		rec, err := c.validator.Validate(raw.Node)
		if err != nil {
			c.reject(result, raw.Origin, err)
			continue
		}
		rec.Source = raw.Origin

		if existing, dup := c.byID[rec.ID]; dup {
			warning := fmt.Sprintf("duplicate theme id %q in %s ignored; keeping %s", rec.ID, raw.Origin, existing.Source)
			result.Warnings = append(result.Warnings, warning)
			c.logger.Warn().
				Str("id", rec.ID).
				Str("origin", raw.Origin).
				Str("kept", existing.Source).
				Msg("duplicate theme id ignored")
			continue
		}

		c.byID[rec.ID] = rec
		result.Accepted = append(result.Accepted, rec)
	}

	c.ordered = slices.Clone(result.Accepted)
	slices.SortFunc(c.ordered, compareRecords)

	c.logger.Info().
		Int("accepted", len(result.Accepted)).
		Int("rejected", len(result.Rejected)).
		Msg("theme catalog loaded")
}

func (c *Catalog) reject(result *LoadResult, origin string, err error) {
	result.Rejected = append(result.Rejected, Rejection{Origin: origin, Err: err})
	c.logger.Warn().Str("origin", origin).Err(err).Msg("skipping invalid theme")
}

// compareRecords orders by case-insensitive name, then id.
func compareRecords(a, b *theme.Record) int {
	if n := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); n != 0 {
		return n
	}
	return strings.Compare(a.ID, b.ID)
}

// List returns all records sorted by name, case-insensitively.
func (c *Catalog) List() []*theme.Record {
	c.Load()
	return slices.Clone(c.ordered)
}

// Get returns the record with exactly this id.
func (c *Catalog) Get(id string) (*theme.Record, bool) {
	c.Load()
	rec, ok := c.byID[id]
	return rec, ok
}

// Len returns the number of accepted records.
func (c *Catalog) Len() int {
	c.Load()
	return len(c.ordered)
}
