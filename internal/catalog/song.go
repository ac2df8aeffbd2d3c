// Package catalog holds the resolved domain objects: songs, the artists
// that own them, and albums with their track lists.
package catalog

import (
	"encoding/json"
	"time"

	"github.com/samber/lo"

	"github.com/jfmyers9/verses/pkg/genius"
)

// LyricsComplete is the lyrics state of a song whose transcription is done.
const LyricsComplete = "complete"

// ArtistRef is a descriptive snapshot of an artist, not a live link to an
// Artist aggregate.
type ArtistRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// AlbumRef is the album a song appears on.
type AlbumRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Song is a resolved song with its lyrics.
type Song struct {
	ID                 int         `json:"id"`
	Title              string      `json:"title"`
	Artist             string      `json:"artist"`
	PrimaryArtist      ArtistRef   `json:"primary_artist"`
	FeaturedArtists    []ArtistRef `json:"featured_artists"`
	Album              *AlbumRef   `json:"album,omitempty"`
	ReleaseDate        *time.Time  `json:"release_date,omitempty"`
	ReleaseDateDisplay string      `json:"release_date_for_display,omitempty"`
	URL                string      `json:"url"`
	LyricsState        string      `json:"lyrics_state"`
	Instrumental       bool        `json:"instrumental"`
	Lyrics             string      `json:"lyrics"`
}

// NewSong builds a Song from an API payload and its scraped lyrics.
//
// The artist name is taken from the primary artist, falling back to the
// combined artist credit when the payload has no primary artist.
func NewSong(info genius.Song, lyrics string) *Song {
	s := &Song{
		ID:                 info.ID,
		Title:              info.Title,
		Artist:             info.ArtistNames,
		ReleaseDateDisplay: info.ReleaseDateForDisplay,
		URL:                info.URL,
		LyricsState:        info.LyricsState,
		Instrumental:       info.Instrumental,
		Lyrics:             lyrics,
	}

	if info.PrimaryArtist != nil {
		s.PrimaryArtist = artistRef(*info.PrimaryArtist)
		s.Artist = info.PrimaryArtist.Name
	}

	s.FeaturedArtists = lo.Map(info.FeaturedArtists, func(a genius.Artist, _ int) ArtistRef {
		return artistRef(a)
	})

	if info.Album != nil {
		s.Album = &AlbumRef{ID: info.Album.ID, Name: info.Album.Name, URL: info.Album.URL}
	}

	if info.ReleaseDate != "" {
		if t, err := time.Parse("2006-01-02", info.ReleaseDate); err == nil {
			s.ReleaseDate = &t
		}
	}

	return s
}

// SetLyrics replaces the lyrics text.
func (s *Song) SetLyrics(text string) {
	s.Lyrics = text
}

// HasFeature reports whether name is among the featured artists.
func (s *Song) HasFeature(name string) bool {
	return lo.ContainsBy(s.FeaturedArtists, func(a ArtistRef) bool {
		return a.Name == name
	})
}

// Text returns the lyrics as plain text.
func (s *Song) Text() string {
	return s.Lyrics
}

// JSON returns the song as indented JSON.
func (s *Song) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func artistRef(a genius.Artist) ArtistRef {
	return ArtistRef{ID: a.ID, Name: a.Name, URL: a.URL}
}
