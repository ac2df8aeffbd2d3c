package resolve

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfmyers9/verses/internal/catalog"
	"github.com/jfmyers9/verses/pkg/genius"
)

// SearchAlbum finds an album and the lyrics of every track.
//
// Exactly one of name or albumID must be given. Tracks keep listing order
// and are not filtered by the classifier. Returns ErrAlbumNotFound when no
// album matches.
func (r *Resolver) SearchAlbum(ctx context.Context, name, artist string, albumID int) (*catalog.Album, error) {
	name = strings.TrimSpace(name)
	if (name == "") == (albumID == 0) {
		return nil, fmt.Errorf("%w: specify exactly one of an album name or an album id", ErrInvalidArgument)
	}
	if albumID < 0 {
		return nil, fmt.Errorf("%w: album id must be positive, got %d", ErrInvalidArgument, albumID)
	}

	var info *genius.Album
	if albumID != 0 {
		album, err := r.src.Album(ctx, albumID)
		if err != nil {
			if genius.IsNotFound(err) {
				return nil, fmt.Errorf("%w: album %d", ErrAlbumNotFound, albumID)
			}
			return nil, fmt.Errorf("failed to fetch album %d: %w", albumID, err)
		}
		info = album
	} else {
		term := strings.TrimSpace(name + " " + strings.TrimSpace(artist))
		r.logger.Debug().Str("term", term).Msg("Searching for album")

		resp, err := r.src.Search(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("failed to search for %q: %w", term, err)
		}

		hit, err := Resolve(resp, name, genius.KindAlbum, FieldName, r.matchOptions())
		if err != nil {
			if errors.Is(err, ErrNoResults) {
				return nil, fmt.Errorf("%w: %q", ErrAlbumNotFound, name)
			}
			return nil, err
		}

		if info, err = hit.Album(); err != nil {
			return nil, err
		}
		if r.opts.GetFullInfo {
			full, err := r.src.Album(ctx, info.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to fetch album %d: %w", info.ID, err)
			}
			info = full
		}
	}

	album := catalog.NewAlbum(*info)
	if err := r.collectTracks(ctx, album); err != nil {
		return nil, err
	}

	r.logger.Debug().Str("album", album.Name).Int("tracks", len(album.Tracks)).Msg("Done collecting tracks")
	return album, nil
}

// collectTracks pages through the album's track list in order.
func (r *Resolver) collectTracks(ctx context.Context, album *catalog.Album) error {
	page := 1
	for {
		resp, err := r.src.AlbumTracks(ctx, album.ID, genius.PageOptions{Page: page, PerPage: genius.MaxPerPage})
		if err != nil {
			return fmt.Errorf("failed to fetch tracks page %d for %q: %w", page, album.Name, err)
		}

		for _, track := range resp.Tracks {
			if err := ctx.Err(); err != nil {
				return err
			}

			info := track.Song
			lyrics := ""
			if info.LyricsState == catalog.LyricsComplete && !info.Instrumental {
				lyrics, err = r.src.Lyrics(ctx, info.URL)
				if err != nil {
					r.logger.Warn().Err(err).Str("title", info.Title).Msg("Failed to fetch lyrics for track")
					lyrics = ""
				}
			}

			number := 0
			if track.Number != nil {
				number = *track.Number
			}
			album.AddTrack(number, catalog.NewSong(info, lyrics))
		}

		if resp.NextPage == nil || *resp.NextPage <= page {
			return nil
		}
		page = *resp.NextPage
	}
}
