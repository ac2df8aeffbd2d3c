package resolve

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jfmyers9/verses/pkg/genius"
)

// fakeSource serves canned responses and records every call.
type fakeSource struct {
	searches    map[string]*genius.SearchResponse
	songs       map[int]*genius.Song
	artists     map[int]*genius.Artist
	albums      map[int]*genius.Album
	songPages   map[int]*genius.SongPage
	trackPages  map[int]*genius.TrackPage
	lyrics      map[string]string
	lyricsErrs  map[string]error
	songPageErr error

	searchTerms   []string
	songPagesSeen []genius.PageOptions
	songFetches   []int
	lyricsFetches []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		searches:   map[string]*genius.SearchResponse{},
		songs:      map[int]*genius.Song{},
		artists:    map[int]*genius.Artist{},
		albums:     map[int]*genius.Album{},
		songPages:  map[int]*genius.SongPage{},
		trackPages: map[int]*genius.TrackPage{},
		lyrics:     map[string]string{},
		lyricsErrs: map[string]error{},
	}
}

func notFound() error {
	return &genius.Error{Status: http.StatusNotFound, Message: "Not found"}
}

func (f *fakeSource) Search(_ context.Context, term string) (*genius.SearchResponse, error) {
	f.searchTerms = append(f.searchTerms, term)
	if resp, ok := f.searches[term]; ok {
		return resp, nil
	}
	return &genius.SearchResponse{}, nil
}

func (f *fakeSource) Song(_ context.Context, id int) (*genius.Song, error) {
	f.songFetches = append(f.songFetches, id)
	if s, ok := f.songs[id]; ok {
		return s, nil
	}
	return nil, notFound()
}

func (f *fakeSource) Artist(_ context.Context, id int) (*genius.Artist, error) {
	if a, ok := f.artists[id]; ok {
		return a, nil
	}
	return nil, notFound()
}

func (f *fakeSource) Album(_ context.Context, id int) (*genius.Album, error) {
	if a, ok := f.albums[id]; ok {
		return a, nil
	}
	return nil, notFound()
}

func (f *fakeSource) ArtistSongs(_ context.Context, _ int, opts genius.PageOptions) (*genius.SongPage, error) {
	f.songPagesSeen = append(f.songPagesSeen, opts)
	if f.songPageErr != nil {
		return nil, f.songPageErr
	}
	if p, ok := f.songPages[opts.Page]; ok {
		return p, nil
	}
	return &genius.SongPage{}, nil
}

func (f *fakeSource) AlbumTracks(_ context.Context, _ int, opts genius.PageOptions) (*genius.TrackPage, error) {
	if p, ok := f.trackPages[opts.Page]; ok {
		return p, nil
	}
	return &genius.TrackPage{}, nil
}

func (f *fakeSource) Lyrics(_ context.Context, url string) (string, error) {
	f.lyricsFetches = append(f.lyricsFetches, url)
	if err, ok := f.lyricsErrs[url]; ok {
		return "", err
	}
	return f.lyrics[url], nil
}

func intPtr(i int) *int { return &i }

func songHit(id int, title, artist, lyricsState string) genius.Hit {
	return genius.Hit{
		Type: genius.KindSong,
		Result: genius.HitResult{
			ID:            id,
			Title:         title,
			URL:           fmt.Sprintf("https://genius.com/songs/%d", id),
			LyricsState:   lyricsState,
			PrimaryArtist: &genius.Artist{ID: 1, Name: artist},
		},
	}
}

func namedHit(kind genius.Kind, id int, name string) genius.Hit {
	return genius.Hit{Type: kind, Result: genius.HitResult{ID: id, Name: name}}
}

func listingSong(id int, title, artist string) genius.Song {
	return genius.Song{
		ID:            id,
		Title:         title,
		URL:           fmt.Sprintf("https://genius.com/songs/%d", id),
		LyricsState:   "complete",
		PrimaryArtist: &genius.Artist{ID: 586, Name: artist},
	}
}
