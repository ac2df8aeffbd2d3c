package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfmyers9/verses/internal/catalog"
	"github.com/jfmyers9/verses/pkg/genius"
)

// MissingTitle stands in for listing entries without a title.
const MissingTitle = "MISSING TITLE"

// ArtistQuery describes an artist lookup.
type ArtistQuery struct {
	Name string // searched when ID is zero
	ID   int    // fetch this artist directly

	// MaxSongs caps the harvested songs. Nil harvests every song; zero
	// returns the artist without fetching any listing page.
	MaxSongs *int
}

// Limit returns a song cap for ArtistQuery.MaxSongs.
func Limit(n int) *int {
	return &n
}

// SearchArtist finds an artist and harvests their songs.
//
// Returns ErrArtistNotFound when no artist matches. An artist with no
// songs is not an error.
func (r *Resolver) SearchArtist(ctx context.Context, q ArtistQuery) (*catalog.Artist, error) {
	q.Name = strings.TrimSpace(q.Name)
	if q.Name == "" && q.ID == 0 {
		return nil, fmt.Errorf("%w: specify an artist name or an artist id", ErrInvalidArgument)
	}
	if q.ID < 0 {
		return nil, fmt.Errorf("%w: artist id must be positive, got %d", ErrInvalidArgument, q.ID)
	}
	if q.MaxSongs != nil && *q.MaxSongs < 0 {
		return nil, fmt.Errorf("%w: max songs must not be negative, got %d", ErrInvalidArgument, *q.MaxSongs)
	}

	id := q.ID
	if id == 0 {
		r.logger.Debug().Str("name", q.Name).Msg("Searching for artist")

		resp, err := r.src.Search(ctx, q.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to search for %q: %w", q.Name, err)
		}

		hit, err := Resolve(resp, q.Name, genius.KindArtist, FieldName, r.matchOptions())
		if err != nil {
			if errors.Is(err, ErrNoResults) {
				return nil, fmt.Errorf("%w: %q", ErrArtistNotFound, q.Name)
			}
			return nil, err
		}
		id = hit.Result.ID
	}

	info, err := r.src.Artist(ctx, id)
	if err != nil {
		if genius.IsNotFound(err) {
			return nil, fmt.Errorf("%w: artist %d", ErrArtistNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch artist %d: %w", id, err)
	}

	name := q.Name
	if name == "" || (r.opts.AllowNameChange && info.Name != name) {
		if name != "" {
			r.logger.Debug().Str("from", name).Str("to", info.Name).Msg("Changing artist name")
		}
		name = info.Name
	}

	artist := catalog.NewArtist(*info)
	if q.MaxSongs != nil && *q.MaxSongs == 0 {
		return artist, nil
	}

	if err := r.harvest(ctx, artist, name, q.MaxSongs); err != nil {
		return nil, err
	}

	r.logger.Debug().Str("name", name).Int("songs", artist.Len()).Msg("Done harvesting")
	return artist, nil
}

// harvest pages through the artist's song listing, adding each lyrical
// song until the listing ends or maxSongs songs were added.
func (r *Resolver) harvest(ctx context.Context, artist *catalog.Artist, name string, maxSongs *int) error {
	logger := r.logger.With().Str("artist", name).Logger()
	page := 1

	for {
		resp, err := r.src.ArtistSongs(ctx, artist.ID, genius.PageOptions{
			Page:    page,
			PerPage: r.opts.PerPage,
			Sort:    r.opts.Sort,
		})
		if err != nil {
			return fmt.Errorf("failed to fetch songs page %d for %q: %w", page, name, err)
		}

		logger.Debug().Int("page", page).Int("entries", len(resp.Songs)).Msg("Processing songs page")

		for _, entry := range resp.Songs {
			if err := ctx.Err(); err != nil {
				return err
			}

			if r.harvestEntry(ctx, artist, entry) && capReached(artist, maxSongs) {
				logger.Debug().Int("max_songs", *maxSongs).Msg("Reached song cap")
				return nil
			}
		}

		if resp.NextPage == nil {
			return nil
		}
		if *resp.NextPage <= page {
			logger.Warn().Int("page", page).Int("next_page", *resp.NextPage).Msg("Listing did not advance, stopping")
			return nil
		}
		page = *resp.NextPage
	}
}

// harvestEntry resolves one listing entry and reports whether it was added.
// Failures are logged and skip the entry.
func (r *Resolver) harvestEntry(ctx context.Context, artist *catalog.Artist, entry genius.Song) bool {
	if entry.Title == "" {
		entry.Title = MissingTitle
	}
	logger := r.logger.With().Int("id", entry.ID).Str("title", entry.Title).Logger()

	if r.opts.SkipNonSongs && !r.classifier.IsLyrics(entry.Title, entry.LyricsState, entry.Instrumental) {
		logger.Debug().Msg("Skipping non-lyrical entry")
		return false
	}

	lyrics, err := r.src.Lyrics(ctx, entry.URL)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to fetch lyrics, skipping")
		return false
	}

	info := entry
	if r.opts.GetFullInfo {
		full, err := r.src.Song(ctx, entry.ID)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to fetch full song info, using listing data")
		} else {
			info = entry.Merge(full)
		}
	}

	if _, result := artist.AddSong(catalog.NewSong(info, lyrics), r.opts.IncludeFeatures); result != catalog.Added {
		logger.Debug().Stringer("reason", result).Msg("Song not added")
		return false
	}

	logger.Debug().Int("count", artist.Len()).Msg("Added song")
	return true
}

func capReached(artist *catalog.Artist, maxSongs *int) bool {
	return maxSongs != nil && artist.Len() >= *maxSongs
}
