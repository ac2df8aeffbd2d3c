package catalog

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"

	"github.com/jfmyers9/verses/pkg/genius"
)

// AddResult is the outcome of Artist.AddSong.
type AddResult int

const (
	// Added means the song joined the collection.
	Added AddResult = iota
	// RejectedDuplicate means a song with the same title is already present.
	RejectedDuplicate
	// RejectedArtist means the song belongs to a different artist.
	RejectedArtist
)

func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case RejectedDuplicate:
		return "duplicate"
	case RejectedArtist:
		return "wrong artist"
	default:
		return "unknown"
	}
}

// Artist owns an ordered collection of songs.
//
// The collection only grows through AddSong, which keeps titles unique and
// only admits songs credited to this artist.
type Artist struct {
	ID             int
	Name           string
	URL            string
	ImageURL       string
	HeaderImageURL string
	IsVerified     bool
	IsMemeVerified bool

	songs []*Song
}

// NewArtist builds an empty Artist from an API payload.
func NewArtist(info genius.Artist) *Artist {
	return &Artist{
		ID:             info.ID,
		Name:           info.Name,
		URL:            info.URL,
		ImageURL:       info.ImageURL,
		HeaderImageURL: info.HeaderImageURL,
		IsVerified:     info.IsVerified,
		IsMemeVerified: info.IsMemeVerified,
	}
}

// AddSong appends song to the collection.
//
// A song whose title is already present is rejected as a duplicate. A song
// credited to another artist is rejected unless includeFeatures is set and
// this artist is one of its featured artists. The returned song is nil for
// any rejection.
func (a *Artist) AddSong(song *Song, includeFeatures bool) (*Song, AddResult) {
	if lo.ContainsBy(a.songs, func(s *Song) bool { return s.Title == song.Title }) {
		return nil, RejectedDuplicate
	}

	if song.Artist != a.Name && !(includeFeatures && song.HasFeature(a.Name)) {
		return nil, RejectedArtist
	}

	a.songs = append(a.songs, song)
	return song, Added
}

// Songs returns the songs in insertion order.
func (a *Artist) Songs() []*Song {
	return append([]*Song(nil), a.songs...)
}

// Len returns the number of songs.
func (a *Artist) Len() int {
	return len(a.songs)
}

// Song finds a song by title, ignoring case and surrounding whitespace.
func (a *Artist) Song(title string) (*Song, bool) {
	title = strings.TrimSpace(title)
	return lo.Find(a.songs, func(s *Song) bool {
		return strings.EqualFold(strings.TrimSpace(s.Title), title)
	})
}

// Text returns every song's title and lyrics.
func (a *Artist) Text() string {
	parts := lo.Map(a.songs, func(s *Song, _ int) string {
		return s.Title + "\n\n" + s.Lyrics
	})
	return strings.Join(parts, "\n\n\n")
}

type artistJSON struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	URL            string  `json:"url,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	HeaderImageURL string  `json:"header_image_url,omitempty"`
	IsVerified     bool    `json:"is_verified"`
	IsMemeVerified bool    `json:"is_meme_verified"`
	Songs          []*Song `json:"songs"`
}

// MarshalJSON includes the song collection.
func (a *Artist) MarshalJSON() ([]byte, error) {
	songs := a.songs
	if songs == nil {
		songs = []*Song{}
	}
	return json.Marshal(artistJSON{
		ID:             a.ID,
		Name:           a.Name,
		URL:            a.URL,
		ImageURL:       a.ImageURL,
		HeaderImageURL: a.HeaderImageURL,
		IsVerified:     a.IsVerified,
		IsMemeVerified: a.IsMemeVerified,
		Songs:          songs,
	})
}

// JSON returns the artist and its songs as indented JSON.
func (a *Artist) JSON() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}
