package resolve

import (
	"context"

	"github.com/jfmyers9/verses/pkg/genius"
)

// Source is the remote catalog the resolver reads from.
type Source interface {
	Search(ctx context.Context, term string) (*genius.SearchResponse, error)
	Song(ctx context.Context, id int) (*genius.Song, error)
	Artist(ctx context.Context, id int) (*genius.Artist, error)
	Album(ctx context.Context, id int) (*genius.Album, error)
	ArtistSongs(ctx context.Context, id int, opts genius.PageOptions) (*genius.SongPage, error)
	AlbumTracks(ctx context.Context, id int, opts genius.PageOptions) (*genius.TrackPage, error)

	// Lyrics returns "" when the page has no lyrics block.
	Lyrics(ctx context.Context, url string) (string, error)
}

// NewSource adapts a Genius client to Source.
func NewSource(c *genius.Client) Source {
	return clientSource{c: c}
}

type clientSource struct {
	c *genius.Client
}

func (s clientSource) Search(ctx context.Context, term string) (*genius.SearchResponse, error) {
	return s.c.Search().Multi(ctx, term)
}

func (s clientSource) Song(ctx context.Context, id int) (*genius.Song, error) {
	return s.c.Songs().Get(ctx, id)
}

func (s clientSource) Artist(ctx context.Context, id int) (*genius.Artist, error) {
	return s.c.Artists().Get(ctx, id)
}

func (s clientSource) Album(ctx context.Context, id int) (*genius.Album, error) {
	return s.c.Albums().Get(ctx, id)
}

func (s clientSource) ArtistSongs(ctx context.Context, id int, opts genius.PageOptions) (*genius.SongPage, error) {
	return s.c.Artists().Songs(ctx, id, opts)
}

func (s clientSource) AlbumTracks(ctx context.Context, id int, opts genius.PageOptions) (*genius.TrackPage, error) {
	return s.c.Albums().Tracks(ctx, id, opts)
}

func (s clientSource) Lyrics(ctx context.Context, url string) (string, error) {
	return s.c.Lyrics().Fetch(ctx, url)
}
