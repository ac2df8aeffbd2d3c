// Package resolve turns fuzzy song, artist and album queries into
// populated catalog objects.
//
// A Resolver searches the Source, picks the right hit, fetches the full
// resource and lyrics, and for artists walks the paginated song listing
// until it runs out or a song cap is reached. Misses are reported as the
// sentinel errors in this package so callers can tell "no match" apart
// from "matched but no lyrics".
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jfmyers9/verses/internal/catalog"
	"github.com/jfmyers9/verses/pkg/genius"
)

// Options configure a Resolver. They are read, never modified, while
// resolving.
type Options struct {
	SkipNonSongs        bool        // reject results the classifier deems non-lyrical
	ExcludedTerms       []string    // extra excluded title patterns
	ReplaceDefaultTerms bool        // use ExcludedTerms instead of the defaults
	TakeFirstResult     bool        // skip matching and take the first hit
	GetFullInfo         bool        // merge the full song resource into search results
	IncludeFeatures     bool        // keep songs where the artist is only featured
	AllowNameChange     bool        // adopt the canonical artist name for logging
	Sort                genius.Sort // artist song listing order
	PerPage             int         // artist song listing page size
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		SkipNonSongs:    true,
		GetFullInfo:     true,
		AllowNameChange: true,
		Sort:            genius.SortPopularity,
		PerPage:         20,
	}
}

// Resolver resolves queries against a Source. It issues requests one at a
// time and may be reused sequentially.
type Resolver struct {
	src        Source
	opts       Options
	classifier *Classifier
	logger     zerolog.Logger
}

// New creates a Resolver.
func New(src Source, opts Options, logger zerolog.Logger) (*Resolver, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: source is required", ErrInvalidArgument)
	}
	if opts.PerPage < 1 || opts.PerPage > genius.MaxPerPage {
		return nil, fmt.Errorf("%w: per page must be between 1 and %d, got %d", ErrInvalidArgument, genius.MaxPerPage, opts.PerPage)
	}
	if !opts.Sort.Valid() {
		return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidArgument, opts.Sort)
	}

	classifier, err := NewClassifier(opts.ExcludedTerms, opts.ReplaceDefaultTerms)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		src:        src,
		opts:       opts,
		classifier: classifier,
		logger:     logger.With().Str("component", "resolve").Logger(),
	}, nil
}

// Classifier returns the active lyrics classifier.
func (r *Resolver) Classifier() *Classifier {
	return r.classifier
}

func (r *Resolver) matchOptions() MatchOptions {
	return MatchOptions{
		TakeFirst:    r.opts.TakeFirstResult,
		SkipNonSongs: r.opts.SkipNonSongs,
		Classifier:   r.classifier,
	}
}

// SearchSong finds a song and its lyrics.
//
// Exactly one of title or songID must be given. With songID the song is
// fetched directly. Otherwise "title artist" is searched and the hit whose
// title matches is chosen.
//
// Returns ErrNoResults when nothing matches, ErrNotLyrics when the match is
// not a lyrical song, and ErrNoLyrics when its page has no lyrics.
func (r *Resolver) SearchSong(ctx context.Context, title, artist string, songID int) (*catalog.Song, error) {
	title = strings.TrimSpace(title)
	if (title == "") == (songID == 0) {
		return nil, fmt.Errorf("%w: specify exactly one of a song title or a song id", ErrInvalidArgument)
	}
	if songID < 0 {
		return nil, fmt.Errorf("%w: song id must be positive, got %d", ErrInvalidArgument, songID)
	}

	var info genius.Song
	if songID != 0 {
		r.logger.Debug().Int("id", songID).Msg("Fetching song by id")
		full, err := r.src.Song(ctx, songID)
		if err != nil {
			if genius.IsNotFound(err) {
				return nil, fmt.Errorf("%w: song %d", ErrNoResults, songID)
			}
			return nil, fmt.Errorf("failed to fetch song %d: %w", songID, err)
		}
		info = *full
	} else {
		term := strings.TrimSpace(title + " " + strings.TrimSpace(artist))
		r.logger.Debug().Str("term", term).Msg("Searching for song")

		resp, err := r.src.Search(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("failed to search for %q: %w", term, err)
		}

		hit, err := Resolve(resp, title, genius.KindSong, FieldTitle, r.matchOptions())
		if err != nil {
			return nil, err
		}

		res := hit.Result
		if r.opts.SkipNonSongs && !r.classifier.IsLyrics(res.Title, res.LyricsState, res.Instrumental) {
			return nil, fmt.Errorf("%w: %q", ErrNotLyrics, res.Title)
		}

		found, err := hit.Song()
		if err != nil {
			return nil, err
		}
		info = *found

		if r.opts.GetFullInfo {
			full, err := r.src.Song(ctx, info.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch song %d: %w", info.ID, err)
			}
			info = info.Merge(full)
		}
	}

	r.logger.Debug().Str("title", info.Title).Str("url", info.URL).Msg("Fetching lyrics")
	lyrics, err := r.src.Lyrics(ctx, info.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lyrics for %q: %w", info.Title, err)
	}
	if lyrics == "" {
		return nil, fmt.Errorf("%w: %q", ErrNoLyrics, info.Title)
	}

	return catalog.NewSong(info, lyrics), nil
}
