package cli

import (
	"context"
	"fmt"

	"github.com/opencode-ai/vibeui/internal/catalog"
	"github.com/opencode-ai/vibeui/internal/config"
	"github.com/opencode-ai/vibeui/internal/db"
	"github.com/opencode-ai/vibeui/internal/logging"
	"github.com/opencode-ai/vibeui/internal/service"
	"github.com/opencode-ai/vibeui/internal/theme"
)

// app holds the objects a command needs, built from the loaded config.
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	service *service.Service

	database *db.DB
	history  *db.LookupRepository
}

func newValidator(cfg *config.Config) (*theme.Validator, error) {
	validator, err := theme.NewValidator(cfg.ThemeProfile().Schema())
	if err != nil {
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}
	return validator, nil
}

// openApp builds the catalog and facade. When history is enabled in config
// the lookup database is opened and migrated, and the caller must Close.
func openApp(ctx context.Context) (*app, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, fmt.Errorf("config not loaded")
	}

	validator, err := newValidator(cfg)
	if err != nil {
		return nil, err
	}

	source := catalog.SearchPathSource{
		Dir:        cfg.ThemesDir,
		ProjectDir: cfg.ProjectDir,
		Builtin:    cfg.IncludeBuiltin,
	}
	cat := catalog.New(source, validator, catalog.WithLogger(logging.Component("catalog")))

	a := &app{cfg: cfg, catalog: cat}
	opts := []service.Option{service.WithLogger(logging.Component("service"))}
	if cfg.History.Enabled {
		if err := a.openHistory(ctx); err != nil {
			return nil, err
		}
		opts = append(opts, service.WithHistory(a.history))
	}
	a.service = service.New(cat, cfg.ThemeProfile(), opts...)
	return a, nil
}

func (a *app) openHistory(ctx context.Context) error {
	database, err := openDatabase(ctx, a.cfg.History.Path)
	if err != nil {
		return err
	}
	a.database = database
	a.history = db.NewLookupRepository(database)
	return nil
}

// Close releases the history database, if open.
func (a *app) Close() error {
	if a == nil || a.database == nil {
		return nil
	}
	return a.database.Close()
}

func openDatabase(ctx context.Context, path string) (*db.DB, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := database.MigrateUp(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}
	return database, nil
}
