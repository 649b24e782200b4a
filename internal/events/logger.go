// Package events provides helper functions for recording theme lookups.
package events

import (
	"context"
	"fmt"

	"github.com/opencode-ai/vibeui/internal/models"
)

// Repository is the minimal interface needed to write lookups.
type Repository interface {
	Create(ctx context.Context, lookup *models.Lookup) error
}

// LogListed records a catalog listing.
func LogListed(ctx context.Context, repo Repository, format string, count int) error {
	return create(ctx, repo, &models.Lookup{
		Kind:     models.LookupKindList,
		Format:   format,
		Outcome:  models.OutcomeMatched,
		Metadata: map[string]any{"count": count},
	})
}

// LogNameLookup records an exact-name resolution. An empty themeID means
// nothing matched.
func LogNameLookup(ctx context.Context, repo Repository, name, format, themeID string, suggestions []string) error {
	lookup := &models.Lookup{
		Kind:    models.LookupKindName,
		Query:   name,
		Format:  format,
		ThemeID: themeID,
		Outcome: models.OutcomeMatched,
	}
	if themeID == "" {
		lookup.Outcome = models.OutcomeNotFound
		if len(suggestions) > 0 {
			lookup.Metadata = map[string]any{"suggestions": suggestions}
		}
	}
	return create(ctx, repo, lookup)
}

// LogIntentLookup records an intent resolution. An empty themeID means
// nothing matched.
func LogIntentLookup(ctx context.Context, repo Repository, intent, format, themeID string, score int) error {
	lookup := &models.Lookup{
		Kind:    models.LookupKindIntent,
		Query:   intent,
		Format:  format,
		ThemeID: themeID,
		Score:   score,
		Outcome: models.OutcomeMatched,
	}
	if themeID == "" {
		lookup.Outcome = models.OutcomeNoMatch
	}
	return create(ctx, repo, lookup)
}

// LogInvalidFormat records a call rejected for its format argument.
func LogInvalidFormat(ctx context.Context, repo Repository, kind models.LookupKind, query, format string) error {
	return create(ctx, repo, &models.Lookup{
		Kind:    kind,
		Query:   query,
		Format:  format,
		Outcome: models.OutcomeInvalidFormat,
	})
}

func create(ctx context.Context, repo Repository, lookup *models.Lookup) error {
	if repo == nil {
		return fmt.Errorf("lookup repository is required")
	}
	return repo.Create(ctx, lookup)
}
