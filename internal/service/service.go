// Package service exposes the theme catalog as a small set of
// request/response operations with JSON text results.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/opencode-ai/vibeui/internal/events"
	"github.com/opencode-ai/vibeui/internal/models"
	"github.com/opencode-ai/vibeui/internal/render"
	"github.com/opencode-ai/vibeui/internal/resolve"
	"github.com/opencode-ai/vibeui/internal/theme"
	"github.com/rs/zerolog"
)

// Service is the facade over catalog, resolver and renderer.
type Service struct {
	themes   resolve.Lister
	resolver *resolve.Resolver
	renderer render.Renderer
	history  events.Repository
	logger   zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithHistory records every lookup to repo.
func WithHistory(repo events.Repository) Option {
	return func(s *Service) {
		s.history = repo
	}
}

// WithLogger sets the service logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a facade over themes rendering in the given profile.
// A *catalog.Catalog is the usual Lister.
func New(themes resolve.Lister, profile theme.Profile, opts ...Option) *Service {
	s := &Service{
		themes:   themes,
		resolver: resolve.New(themes),
		renderer: render.New(profile),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Profile returns the profile responses are rendered in.
func (s *Service) Profile() theme.Profile {
	return s.renderer.Profile()
}

// Resolver returns the resolver the facade uses.
func (s *Service) Resolver() *resolve.Resolver {
	return s.resolver
}

// Renderer returns the renderer the facade uses.
func (s *Service) Renderer() render.Renderer {
	return s.renderer
}

// List enumerates the catalog. The default format is summary.
func (s *Service) List(ctx context.Context, format string) Envelope {
	f, err := ParseFormat(format, FormatSummary)
	if err != nil {
		s.record(events.LogInvalidFormat(ctx, s.history, models.LookupKindList, "", format))
		return s.invalidFormat(format)
	}

	records := s.themes.List()
	s.record(events.LogListed(ctx, s.history, string(f), len(records)))

	if f == FormatDetailed {
		designs := make([]theme.Summary, 0, len(records))
		for _, rec := range records {
			designs = append(designs, rec.Summary())
		}
		return s.ok(listDetailed{Designs: designs})
	}

	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	return s.ok(listSummary{Count: len(ids), Themes: ids})
}

// GetByName resolves name exactly. The default format is detailed.
func (s *Service) GetByName(ctx context.Context, name, format string) Envelope {
	f, err := ParseFormat(format, FormatDetailed)
	if err != nil {
		s.record(events.LogInvalidFormat(ctx, s.history, models.LookupKindName, name, format))
		return s.invalidFormat(format)
	}

	rec, err := s.resolver.Lookup(name)
	if err != nil {
		var nf *theme.NotFoundError
		if !errors.As(err, &nf) {
			return s.internal(err)
		}
		s.record(events.LogNameLookup(ctx, s.history, name, string(f), "", nf.Suggestions))
		return s.fail(notFoundResponse{
			Error:       "not_found",
			Message:     fmt.Sprintf("Design %q not found", name),
			Name:        name,
			Suggestions: nf.Suggestions,
		})
	}

	s.record(events.LogNameLookup(ctx, s.history, name, string(f), rec.ID, nil))
	return s.ok(s.design(rec, f))
}

// GetByIntent resolves free-text intent. The default format is detailed.
func (s *Service) GetByIntent(ctx context.Context, intent, format string) Envelope {
	f, err := ParseFormat(format, FormatDetailed)
	if err != nil {
		s.record(events.LogInvalidFormat(ctx, s.history, models.LookupKindIntent, intent, format))
		return s.invalidFormat(format)
	}

	match, err := s.resolver.Infer(intent)
	if err != nil {
		var nm *theme.NoMatchError
		if !errors.As(err, &nm) {
			return s.internal(err)
		}
		s.record(events.LogIntentLookup(ctx, s.history, intent, string(f), "", 0))
		return s.fail(noMatchResponse{
			Error:   "no_match",
			Message: fmt.Sprintf("No design found matching intent: %q", intent),
			Intent:  intent,
			Reason:  nm.Reason,
		})
	}

	s.record(events.LogIntentLookup(ctx, s.history, intent, string(f), match.Record.ID, match.Score))
	resp := s.design(match.Record, f)
	resp.MatchedBy = "intent"
	resp.Score = match.Score
	return s.ok(resp)
}

// Help describes the operations and the token vocabulary of the profile.
func (s *Service) Help() Envelope {
	schema := s.Profile().Schema()
	notes := []string{
		"Token keys are CSS custom properties and keep their document order.",
		"fontFamilies entries render as --font-<role> lines.",
	}
	if schema.Mode == theme.ModeClosed {
		notes = append(notes, "Every required key must be present and no other keys are accepted.")
	} else {
		notes = append(notes, "--color-*, --radius-* and --size-* tokens project into colors, borderRadius and spacing.")
	}

	return s.ok(helpResponse{
		Profile: s.Profile(),
		Formats: []Format{FormatSummary, FormatDetailed},
		Operations: []operationHelp{
			{Name: "list", Input: "format?", Output: "summary: {count, themes}; detailed: {designs: [{id, name, tags}]}", DefaultFormat: FormatSummary},
			{Name: "get_by_name", Input: "name, format?", Output: "design with tokens and css, or not_found", DefaultFormat: FormatDetailed},
			{Name: "get_by_intent", Input: "intent, format?", Output: "best scoring design with matchedBy and score, or no_match", DefaultFormat: FormatDetailed},
			{Name: "help", Input: "", Output: "this guide"},
		},
		Tokens: tokenHelp{Mode: schema.Mode, Required: schema.RequiredTokens, Notes: notes},
	})
}

func (s *Service) design(rec *theme.Record, f Format) designResponse {
	resp := designResponse{
		ID:     rec.ID,
		Name:   rec.Name,
		Tokens: rec.Tokens,
		CSS:    s.renderer.CSS(rec),
	}
	if s.Profile() == theme.ProfileTailwind {
		cfg := render.Config(rec)
		resp.Config = &cfg
	}
	if f == FormatDetailed {
		resp.Tags = rec.Summary().Tags
		resp.Design = &designDetail{
			Aliases:          rec.Aliases,
			Description:      rec.Description,
			Notes:            rec.Notes,
			FontFamilies:     rec.FontFamilies,
			Keyframes:        rec.Keyframes,
			Patterns:         rec.Patterns,
			Fonts:            rec.Fonts,
			BuiltInThemeHint: rec.BuiltInThemeHint,
			Version:          rec.Version,
			Extended:         rec.Extended,
			Source:           rec.Source,
		}
	}
	return resp
}

func (s *Service) ok(v any) Envelope {
	text, err := encode(v)
	if err != nil {
		return s.internal(err)
	}
	return Envelope{Text: text}
}

func (s *Service) fail(v any) Envelope {
	text, err := encode(v)
	if err != nil {
		return s.internal(err)
	}
	return Envelope{Text: text, IsError: true}
}

func (s *Service) invalidFormat(format string) Envelope {
	return s.fail(invalidFormatResponse{
		Error:   "invalid_format",
		Message: fmt.Sprintf("Unknown format %q", format),
		Format:  format,
		Allowed: []Format{FormatSummary, FormatDetailed},
	})
}

func (s *Service) internal(err error) Envelope {
	s.logger.Error().Err(err).Msg("failed to build response")
	text, merr := encode(internalResponse{Error: "internal", Message: err.Error()})
	if merr != nil {
		text = `{"error": "internal"}`
	}
	return Envelope{Text: text, IsError: true}
}

// record logs history failures; they never reach the caller.
func (s *Service) record(err error) {
	if s.history == nil || err == nil {
		return
	}
	s.logger.Warn().Err(err).Msg("failed to record lookup")
}
