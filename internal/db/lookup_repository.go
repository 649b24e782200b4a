package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opencode-ai/vibeui/internal/models"
)

// Lookup repository errors.
var (
	ErrLookupNotFound = errors.New("lookup not found")
	ErrInvalidLookup  = errors.New("invalid lookup")
)

// timestampLayout is fixed width so text order matches time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// LookupRepository persists facade lookups.
type LookupRepository struct {
	db *DB
}

// NewLookupRepository creates a new LookupRepository.
func NewLookupRepository(db *DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// LookupQuery defines filters for querying lookups.
type LookupQuery struct {
	Kind    *models.LookupKind    // Filter by kind
	Outcome *models.LookupOutcome // Filter by outcome
	ThemeID *string               // Filter by resolved theme
	Since   *time.Time            // Lookups at or after this time (inclusive)
	Cursor  string                // Pagination cursor (lookup ID)
	Limit   int                   // Max results to return
}

// LookupPage represents a page of query results.
type LookupPage struct {
	Lookups    []*models.Lookup `json:"lookups"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ThemeCount is a resolved theme with how often it was served.
type ThemeCount struct {
	ThemeID string `json:"theme_id"`
	Count   int    `json:"count"`
}

// Create records a lookup, assigning an ID and timestamp when missing.
func (r *LookupRepository) Create(ctx context.Context, lookup *models.Lookup) error {
	if err := lookup.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLookup, err)
	}

	if lookup.ID == "" {
		lookup.ID = uuid.New().String()
	}
	if lookup.Timestamp.IsZero() {
		lookup.Timestamp = time.Now().UTC()
	} else {
		lookup.Timestamp = lookup.Timestamp.UTC()
	}

	var metadataJSON *string
	if lookup.Metadata != nil {
		data, err := json.Marshal(lookup.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
		s := string(data)
		metadataJSON = &s
	}

	var themeID *string
	if lookup.ThemeID != "" {
		themeID = &lookup.ThemeID
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO lookups (
			id, timestamp, kind, query, format, outcome, theme_id, score, metadata_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		lookup.ID,
		lookup.Timestamp.Format(timestampLayout),
		string(lookup.Kind),
		lookup.Query,
		lookup.Format,
		string(lookup.Outcome),
		themeID,
		lookup.Score,
		metadataJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert lookup: %w", err)
	}
	return nil
}

// Get retrieves a lookup by ID.
func (r *LookupRepository) Get(ctx context.Context, id string) (*models.Lookup, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, timestamp, kind, query, format, outcome, theme_id, score, metadata_json
		FROM lookups WHERE id = ?
	`, id)

	lookup, err := r.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLookupNotFound
	}
	return lookup, err
}

// Query retrieves lookups, newest first, with cursor-based pagination.
func (r *LookupRepository) Query(ctx context.Context, q LookupQuery) (*LookupPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, timestamp, kind, query, format, outcome, theme_id, score, metadata_json FROM lookups WHERE 1=1`
	args := []any{}

	if q.Kind != nil {
		query += ` AND kind = ?`
		args = append(args, string(*q.Kind))
	}
	if q.Outcome != nil {
		query += ` AND outcome = ?`
		args = append(args, string(*q.Outcome))
	}
	if q.ThemeID != nil {
		query += ` AND theme_id = ?`
		args = append(args, *q.ThemeID)
	}
	if q.Since != nil {
		query += ` AND timestamp >= ?`
		args = append(args, q.Since.UTC().Format(timestampLayout))
	}
	if q.Cursor != "" {
		query += ` AND (timestamp, id) < (SELECT timestamp, id FROM lookups WHERE id = ?)`
		args = append(args, q.Cursor)
	}

	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer rows.Close()

	var lookups []*models.Lookup
	for rows.Next() {
		lookup, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, lookup)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lookups: %w", err)
	}

	page := &LookupPage{Lookups: lookups}
	if len(lookups) > limit {
		page.Lookups = lookups[:limit]
		page.NextCursor = lookups[limit-1].ID
	}
	return page, nil
}

// TopThemes returns the most often matched themes, most frequent first.
func (r *LookupRepository) TopThemes(ctx context.Context, limit int) ([]ThemeCount, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT theme_id, COUNT(*) AS n
		FROM lookups
		WHERE outcome = ? AND theme_id IS NOT NULL
		GROUP BY theme_id
		ORDER BY n DESC, theme_id
		LIMIT ?
	`, string(models.OutcomeMatched), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to count themes: %w", err)
	}
	defer rows.Close()

	var counts []ThemeCount
	for rows.Next() {
		var c ThemeCount
		if err := rows.Scan(&c.ThemeID, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan theme count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating theme counts: %w", err)
	}
	return counts, nil
}

// Prune deletes lookups older than before and returns how many went.
func (r *LookupRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lookups WHERE timestamp < ?`, before.UTC().Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune lookups: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func (r *LookupRepository) scan(row scanner) (*models.Lookup, error) {
	var lookup models.Lookup
	var timestamp, kind, outcome string
	var themeID, metadataJSON sql.NullString

	err := row.Scan(
		&lookup.ID,
		&timestamp,
		&kind,
		&lookup.Query,
		&lookup.Format,
		&outcome,
		&themeID,
		&lookup.Score,
		&metadataJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan lookup: %w", err)
	}

	lookup.Kind = models.LookupKind(kind)
	lookup.Outcome = models.LookupOutcome(outcome)
	lookup.ThemeID = themeID.String

	if t, err := time.Parse(timestampLayout, timestamp); err == nil {
		lookup.Timestamp = t
	}
	if metadataJSON.Valid {
		if err := json.Unmarshal([]byte(metadataJSON.String), &lookup.Metadata); err != nil {
			r.db.logger.Warn().Err(err).Str("lookup_id", lookup.ID).Msg("failed to parse lookup metadata")
		}
	}
	return &lookup, nil
}
