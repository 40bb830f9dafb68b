package cmd

import (
	"fmt"

	"github.com/showsync/showsync/config"
	showhttp "github.com/showsync/showsync/pkg/http"
	"github.com/showsync/showsync/pkg/manager"
	"github.com/showsync/showsync/pkg/recommend"
	"github.com/showsync/showsync/pkg/store"
	"github.com/showsync/showsync/pkg/tmdb"
)

func newStore(cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "github":
		gh := cfg.Store.GitHub
		return store.NewGitHub(gh.Owner, gh.Repo, gh.Path, gh.Branch, gh.Token), nil
	case "file":
		return store.NewFile(cfg.Store.File.Path), nil
	case "memory":
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func newManager(cfg config.Config) (manager.Manager, error) {
	st, err := newStore(cfg)
	if err != nil {
		return manager.Manager{}, err
	}

	httpClient := showhttp.NewRateLimitedClient(
		showhttp.WithMaxRetries(cfg.TMDB.MaxRetries),
		showhttp.WithBaseBackoff(cfg.TMDB.BaseBackoff),
	)

	tmdbClient, err := tmdb.New(cfg.TMDB.URI, cfg.TMDB.APIKey,
		tmdb.WithHTTPClient(httpClient),
		tmdb.WithLookupTTL(cfg.TMDB.LookupTTL),
	)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("failed to create tmdb client: %w", err)
	}

	recommendOpts := []recommend.ClientOption{}
	if cfg.Recommender.Model != "" {
		recommendOpts = append(recommendOpts, recommend.WithModel(cfg.Recommender.Model))
	}

	recommendClient, err := recommend.New(cfg.Recommender.URI, cfg.Recommender.APIKey, recommendOpts...)
	if err != nil {
		return manager.Manager{}, fmt.Errorf("failed to create recommender client: %w", err)
	}

	return manager.New(tmdbClient, recommendClient, st, cfg.Sync), nil
}
