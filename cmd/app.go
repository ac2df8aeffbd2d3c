package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/jfmyers9/verses/internal/catalog"
	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/index"
	"github.com/jfmyers9/verses/internal/resolve"
	"github.com/jfmyers9/verses/internal/store"
	"github.com/jfmyers9/verses/pkg/genius"
)

// app bundles what every lookup command needs.
type app struct {
	cfg      *config.Config
	logger   zerolog.Logger
	client   *genius.Client
	resolver *resolve.Resolver
}

// newApp loads the configuration, lets adjust apply command flags to it,
// and builds the client and resolver.
func newApp(adjust func(cfg *config.Config)) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if adjust != nil {
		adjust(cfg)
	}

	logger := setupLogger(logFile, logLevel)

	client, err := genius.NewClient(cfg.ClientConfig(geniusLogger{logger: logger}))
	if err != nil {
		return nil, fmt.Errorf("failed to create genius client: %w", err)
	}

	resolver, err := resolve.New(resolve.NewSource(client), cfg.ResolveOptions(), logger)
	if err != nil {
		return nil, fmt.Errorf("invalid search settings: %w", err)
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		resolver: resolver,
	}, nil
}

// openLibrary opens the library database and its search index.
func openLibrary(cfg *config.Config) (*store.Store, *index.Index, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	st, err := store.Open(cfg.LibraryPath())
	if err != nil {
		return nil, nil, err
	}

	idx, err := index.Open(cfg.IndexPath())
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return st, idx, nil
}

// record stores songs in the library. save runs inside the open store and
// the songs are indexed afterwards.
func (a *app) record(ctx context.Context, songs []*catalog.Song, save func(st *store.Store) error) error {
	st, idx, err := openLibrary(a.cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	defer idx.Close()

	if err := save(st); err != nil {
		return fmt.Errorf("failed to save to library: %w", err)
	}
	if err := idx.Add(songs...); err != nil {
		return fmt.Errorf("failed to index lyrics: %w", err)
	}

	a.logger.Debug().Int("songs", len(songs)).Msg("Saved to library")
	return nil
}

// explain turns resolver outcomes into user-facing errors.
func explain(err error, query string) error {
	switch {
	case errors.Is(err, resolve.ErrNoResults):
		return fmt.Errorf("no results found for %q", query)
	case errors.Is(err, resolve.ErrNotLyrics):
		return fmt.Errorf("best match for %q is not a song with lyrics", query)
	case errors.Is(err, resolve.ErrNoLyrics):
		return fmt.Errorf("no lyrics found for %q", query)
	case errors.Is(err, resolve.ErrArtistNotFound):
		return fmt.Errorf("artist %q not found", query)
	case errors.Is(err, resolve.ErrAlbumNotFound):
		return fmt.Errorf("album %q not found", query)
	case errors.Is(err, context.Canceled):
		return errors.New("interrupted")
	default:
		return err
	}
}
