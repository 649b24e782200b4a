package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencode-ai/vibeui/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLookups(t *testing.T) (*LookupRepository, context.Context) {
	t.Helper()
	ctx := context.Background()

	database, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.MigrateUp(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewLookupRepository(database), ctx
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	ctx := context.Background()
	database, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	defer database.Close()

	first, err := database.MigrateUp(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first)

	second, err := database.MigrateUp(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, second)
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestLookupRepositoryCreateAndGet(t *testing.T) {
	repo, ctx := setupLookups(t)

	lookup := &models.Lookup{
		Kind:     models.LookupKindIntent,
		Query:    "dark futuristic neon",
		Format:   "detailed",
		Outcome:  models.OutcomeMatched,
		ThemeID:  "cyberpunk",
		Score:    9,
		Metadata: map[string]any{"profile": "daisy"},
	}
	require.NoError(t, repo.Create(ctx, lookup))
	require.NotEmpty(t, lookup.ID)
	require.False(t, lookup.Timestamp.IsZero())

	got, err := repo.Get(ctx, lookup.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LookupKindIntent, got.Kind)
	assert.Equal(t, "dark futuristic neon", got.Query)
	assert.Equal(t, "cyberpunk", got.ThemeID)
	assert.Equal(t, 9, got.Score)
	assert.Equal(t, "daisy", got.Metadata["profile"])
	assert.True(t, lookup.Timestamp.Equal(got.Timestamp))
}

func TestLookupRepositoryGetMissing(t *testing.T) {
	repo, ctx := setupLookups(t)
	_, err := repo.Get(ctx, "nope")
	assert.True(t, errors.Is(err, ErrLookupNotFound))
}

func TestLookupRepositoryRejectsInvalid(t *testing.T) {
	repo, ctx := setupLookups(t)

	tests := []struct {
		name   string
		lookup models.Lookup
	}{
		{name: "missing kind", lookup: models.Lookup{Outcome: models.OutcomeMatched}},
		{name: "missing outcome", lookup: models.Lookup{Kind: models.LookupKindName}},
		{name: "matched without theme", lookup: models.Lookup{Kind: models.LookupKindName, Outcome: models.OutcomeMatched}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, &tt.lookup)
			assert.ErrorIs(t, err, ErrInvalidLookup)
		})
	}
}

func TestLookupRepositoryQueryFiltersAndPages(t *testing.T) {
	repo, ctx := setupLookups(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []models.Lookup{
		{Kind: models.LookupKindName, Query: "cyberpunk", Outcome: models.OutcomeMatched, ThemeID: "cyberpunk"},
		{Kind: models.LookupKindName, Query: "Cyber Punk", Outcome: models.OutcomeNotFound},
		{Kind: models.LookupKindIntent, Query: "dark neon", Outcome: models.OutcomeMatched, ThemeID: "cyberpunk", Score: 6},
		{Kind: models.LookupKindIntent, Query: "soft glass", Outcome: models.OutcomeMatched, ThemeID: "glassmorphic", Score: 3},
		{Kind: models.LookupKindList, Outcome: models.OutcomeMatched},
	}
	for i := range entries {
		entries[i].Timestamp = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, &entries[i]))
	}

	page, err := repo.Query(ctx, LookupQuery{})
	require.NoError(t, err)
	require.Len(t, page.Lookups, 5)
	assert.Equal(t, models.LookupKindList, page.Lookups[0].Kind, "newest first")
	assert.Empty(t, page.NextCursor)

	kind := models.LookupKindIntent
	page, err = repo.Query(ctx, LookupQuery{Kind: &kind})
	require.NoError(t, err)
	require.Len(t, page.Lookups, 2)
	assert.Equal(t, "soft glass", page.Lookups[0].Query)

	outcome := models.OutcomeNotFound
	page, err = repo.Query(ctx, LookupQuery{Outcome: &outcome})
	require.NoError(t, err)
	require.Len(t, page.Lookups, 1)
	assert.Equal(t, "Cyber Punk", page.Lookups[0].Query)

	themeID := "cyberpunk"
	page, err = repo.Query(ctx, LookupQuery{ThemeID: &themeID})
	require.NoError(t, err)
	assert.Len(t, page.Lookups, 2)

	since := base.Add(3 * time.Second)
	page, err = repo.Query(ctx, LookupQuery{Since: &since})
	require.NoError(t, err)
	assert.Len(t, page.Lookups, 2)

	first, err := repo.Query(ctx, LookupQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first.Lookups, 3)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.Query(ctx, LookupQuery{Limit: 3, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Lookups, 2)
	assert.Equal(t, "Cyber Punk", second.Lookups[0].Query)
	assert.Empty(t, second.NextCursor)
}

func TestLookupRepositoryTopThemesAndPrune(t *testing.T) {
	repo, ctx := setupLookups(t)
	old := time.Now().Add(-48 * time.Hour)

	for _, l := range []models.Lookup{
		{Kind: models.LookupKindName, Outcome: models.OutcomeMatched, ThemeID: "minimalist", Timestamp: old},
		{Kind: models.LookupKindName, Outcome: models.OutcomeMatched, ThemeID: "cyberpunk"},
		{Kind: models.LookupKindIntent, Outcome: models.OutcomeMatched, ThemeID: "cyberpunk", Score: 3},
		{Kind: models.LookupKindIntent, Outcome: models.OutcomeNoMatch, Query: "pastel"},
	} {
		l := l
		require.NoError(t, repo.Create(ctx, &l))
	}

	counts, err := repo.TopThemes(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []ThemeCount{{ThemeID: "cyberpunk", Count: 2}, {ThemeID: "minimalist", Count: 1}}, counts)

	removed, err := repo.Prune(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	page, err := repo.Query(ctx, LookupQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Lookups, 3)
}
