package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/careersuite/internal/ai"
	"github.com/spigell/careersuite/internal/ai/gemini"
	"github.com/spigell/careersuite/internal/favorites"
	"github.com/spigell/careersuite/internal/jobs"
	"github.com/spigell/careersuite/internal/matcher"
	"github.com/spigell/careersuite/internal/secrets"
	"github.com/spigell/careersuite/internal/storage"
	"github.com/spigell/careersuite/internal/textsource"
)

const (
	jobsSourceGenerated = "generated"
	jobsSourceFile      = "file"
)

func readResume(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("resume file is not configured")
	}
	return textsource.ReadFile(path)
}

func newAnalyzer(config *Config, logger *zap.Logger) (*matcher.Analyzer, error) {
	opts := []matcher.Option{
		matcher.WithTop(config.Report.Top),
		matcher.WithLogger(logger),
	}
	if len(config.Matcher.Rules) > 0 {
		opts = append(opts, matcher.WithRules(config.Matcher.Rules))
	}
	return matcher.NewAnalyzer(opts...)
}

func loadListings(cfg *JobsConfig, logger *zap.Logger) (*jobs.Listings, error) {
	source := strings.ToLower(strings.TrimSpace(cfg.Source))

	switch source {
	case "", jobsSourceGenerated:
		l := jobs.Generate(jobs.GeneratorConfig{Count: cfg.Count, Seed: cfg.Seed})
		logger.Info("generated job listings", zap.Int("count", l.Len()))
		return l, nil
	case jobsSourceFile:
		l, err := jobs.LoadFile(cfg.File)
		if err != nil {
			return nil, err
		}
		logger.Info("loaded job listings", zap.String("file", cfg.File), zap.Int("count", l.Len()))
		return l, nil
	default:
		return nil, fmt.Errorf("unsupported jobs source %q (valid: %s, %s)", cfg.Source, jobsSourceGenerated, jobsSourceFile)
	}
}

// openFavorites opens the configured store. The caller closes it.
func openFavorites(ctx context.Context, cfg *FavoritesConfig, logger *zap.Logger) (*favorites.List, storage.Store, error) {
	store, err := storage.Open(cfg.Backend, cfg.Path)
	if err != nil {
		return nil, nil, err
	}

	list, err := favorites.Load(ctx, store, logger)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	return list, store, nil
}

func newRewriter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Rewriter, error) {
	if !cfg.Enabled {
		return ai.NewTemplateRewriter(), nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != gemini.Provider {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
		Value: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, GEMINI_API_KEY_FILE or GEMINI_API_KEY)", err)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Options{
		APIKey:     apiKey,
		Model:      cfg.Gemini.Model,
		MaxRetries: cfg.Gemini.MaxRetries,
		Logger:     logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)),
	})
	if err != nil {
		return nil, err
	}

	return gemini.NewRewriter(generator, logger, cfg.Gemini.MaxLogLength), nil
}
