package resolve

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Suggest returns up to n theme ids that fuzzily resemble query, best first.
// It never affects resolution; callers use it to enrich not-found replies.
func (r *Resolver) Suggest(query string, n int) []string {
	pattern := strings.ReplaceAll(Normalize(query), "-", "")
	if pattern == "" || n <= 0 {
		return nil
	}

	recs := r.themes.List()
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}

	matches := fuzzy.Find(pattern, ids)
	if len(matches) > n {
		matches = matches[:n]
	}

	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
