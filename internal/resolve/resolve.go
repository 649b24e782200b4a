// Package resolve finds themes by exact name or by free-text intent.
package resolve

import (
	"strings"

	"github.com/opencode-ai/vibeui/internal/theme"
)

// Lister enumerates candidate records in a stable order.
// *catalog.Catalog satisfies it.
type Lister interface {
	List() []*theme.Record
}

// Points awarded per query keyword.
const (
	ExactPoints     = 3
	SubstringPoints = 1
)

// minKeywordLen is the shortest keyword kept by Tokenize.
const minKeywordLen = 3

// Resolver runs both resolution strategies over a Lister.
// It holds no state of its own and is safe for concurrent use.
type Resolver struct {
	themes Lister
}

// New creates a Resolver.
func New(themes Lister) *Resolver {
	return &Resolver{themes: themes}
}

// Match is the result of intent resolution.
type Match struct {
	Record *theme.Record
	Score  int
}

// Normalize trims, lower-cases and joins whitespace runs with a hyphen.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// Tokenize lower-cases s, splits it on non-alphanumeric runs and drops
// keywords shorter than three characters.
func Tokenize(s string) []string {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !isASCIIAlnum(r)
	})
	out := words[:0]
	for _, w := range words {
		if len(w) >= minKeywordLen {
			out = append(out, w)
		}
	}
	return out
}

func isASCIIAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= '0' && r <= '9'
}

// ByName returns the first record, in list order, whose id, name or any
// alias normalizes to the same string as query. When aliases collide the
// earlier record wins.
func (r *Resolver) ByName(query string) (*theme.Record, bool) {
	target := Normalize(query)
	if target == "" {
		return nil, false
	}

	for _, rec := range r.themes.List() {
		if Normalize(rec.ID) == target || Normalize(rec.Name) == target {
			return rec, true
		}
		for _, alias := range rec.Aliases {
			if Normalize(alias) == target {
				return rec, true
			}
		}
	}
	return nil, false
}

// ByIntent scores every record against the query keywords and returns the
// strictly best one. Ties keep the record seen first in list order.
func (r *Resolver) ByIntent(query string) (Match, bool) {
	words := Tokenize(query)
	if len(words) == 0 {
		return Match{}, false
	}

	var best Match
	for _, rec := range r.themes.List() {
		score := Score(rec, words)
		if score > best.Score {
			best = Match{Record: rec, Score: score}
		}
	}
	if best.Record == nil {
		return Match{}, false
	}
	return best, true
}

// Lookup is ByName with a typed error for the not-found case.
func (r *Resolver) Lookup(query string) (*theme.Record, error) {
	rec, ok := r.ByName(query)
	if !ok {
		return nil, &theme.NotFoundError{Name: query, Suggestions: r.Suggest(query, 3)}
	}
	return rec, nil
}

// Infer is ByIntent with a typed error for the no-match case.
func (r *Resolver) Infer(query string) (Match, error) {
	if len(Tokenize(query)) == 0 {
		return Match{}, &theme.NoMatchError{Intent: query, Reason: "no-keywords"}
	}
	m, ok := r.ByIntent(query)
	if !ok {
		return Match{}, &theme.NoMatchError{Intent: query}
	}
	return m, nil
}

// Score computes the intent score of rec for already tokenized keywords.
func Score(rec *theme.Record, words []string) int {
	bag := searchable(rec)
	exact := exactTerms(rec)

	score := 0
	for _, w := range words {
		switch {
		case exact[w]:
			score += ExactPoints
		case strings.Contains(bag, w):
			score += SubstringPoints
		}
	}
	return score
}

// searchable joins the lower-cased text fields that intent keywords may hit.
func searchable(rec *theme.Record) string {
	parts := make([]string, 0, 3+len(rec.Aliases)+len(rec.Tags))
	parts = append(parts, rec.ID, rec.Name)
	parts = append(parts, rec.Aliases...)
	parts = append(parts, rec.Tags...)
	parts = append(parts, rec.Description)
	return strings.ToLower(strings.Join(parts, " "))
}

// exactTerms are the whole values that earn full points: tags, id, aliases.
func exactTerms(rec *theme.Record) map[string]bool {
	terms := make(map[string]bool, 1+len(rec.Tags)+len(rec.Aliases))
	terms[strings.ToLower(rec.ID)] = true
	for _, tag := range rec.Tags {
		terms[strings.ToLower(tag)] = true
	}
	for _, alias := range rec.Aliases {
		terms[strings.ToLower(alias)] = true
	}
	return terms
}
