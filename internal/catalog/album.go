package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/jfmyers9/verses/pkg/genius"
)

// Track is a numbered song on an album.
type Track struct {
	Number int   `json:"number"`
	Song   *Song `json:"song"`
}

// Album is an album with its tracks in listing order.
type Album struct {
	ID                 int        `json:"id"`
	Name               string     `json:"name"`
	FullTitle          string     `json:"full_title,omitempty"`
	URL                string     `json:"url,omitempty"`
	CoverArtURL        string     `json:"cover_art_url,omitempty"`
	Artist             ArtistRef  `json:"artist"`
	ReleaseDate        *time.Time `json:"release_date,omitempty"`
	ReleaseDateDisplay string     `json:"release_date_for_display,omitempty"`
	Tracks             []Track    `json:"tracks"`
}

// NewAlbum builds an Album without tracks from an API payload.
func NewAlbum(info genius.Album) *Album {
	a := &Album{
		ID:                 info.ID,
		Name:               info.Name,
		FullTitle:          info.FullTitle,
		URL:                info.URL,
		CoverArtURL:        info.CoverArtURL,
		ReleaseDate:        ReleaseDate(info.ReleaseDateComponents),
		ReleaseDateDisplay: info.ReleaseDateForDisplay,
		Tracks:             []Track{},
	}
	if info.Artist != nil {
		a.Artist = artistRef(*info.Artist)
	}
	return a
}

// ReleaseDate turns structured date components into a date.
//
// The year is required; a missing month or day defaults to 1. Returns nil
// when there is no year.
func ReleaseDate(c *genius.DateComponents) *time.Time {
	if c == nil || c.Year == nil {
		return nil
	}
	month, day := 1, 1
	if c.Month != nil {
		month = *c.Month
	}
	if c.Day != nil {
		day = *c.Day
	}
	t := time.Date(*c.Year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

// AddTrack appends a track.
func (a *Album) AddTrack(number int, song *Song) {
	a.Tracks = append(a.Tracks, Track{Number: number, Song: song})
}

// Songs returns the track songs in order.
func (a *Album) Songs() []*Song {
	return lo.Map(a.Tracks, func(t Track, _ int) *Song { return t.Song })
}

// Text returns every track's number, title and lyrics.
func (a *Album) Text() string {
	parts := lo.Map(a.Tracks, func(t Track, _ int) string {
		return fmt.Sprintf("%d. %s\n\n%s", t.Number, t.Song.Title, t.Song.Lyrics)
	})
	return strings.Join(parts, "\n\n\n")
}

// JSON returns the album and its tracks as indented JSON.
func (a *Album) JSON() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}
