package genius

import (
	"encoding/json"
	"fmt"
)

// Kind tags search sections and hits.
type Kind string

const (
	KindTopHit Kind = "top_hit"
	KindSong   Kind = "song"
	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
	KindLyric  Kind = "lyric"
	KindVideo  Kind = "video"
	KindUser   Kind = "user"
)

// Sort orders an artist's song listing.
type Sort string

const (
	SortTitle      Sort = "title"
	SortPopularity Sort = "popularity"
)

// Valid reports whether s is a sort order the API accepts.
func (s Sort) Valid() bool {
	return s == SortTitle || s == SortPopularity
}

// Artist is an artist resource, or the artist snapshot embedded in songs
// and albums (primary_artist, featured_artists, album.artist).
type Artist struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	URL            string   `json:"url"`
	ImageURL       string   `json:"image_url"`
	HeaderImageURL string   `json:"header_image_url"`
	IsVerified     bool     `json:"is_verified"`
	IsMemeVerified bool     `json:"is_meme_verified"`
	AlternateNames []string `json:"alternate_names,omitempty"`
}

// DateComponents is the structured release date of an album. Any part
// may be missing.
type DateComponents struct {
	Year  *int `json:"year"`
	Month *int `json:"month"`
	Day   *int `json:"day"`
}

// AlbumRef is the album snapshot embedded in a song.
type AlbumRef struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	CoverArtURL string `json:"cover_art_url"`
}

// CoverArt is one cover image of an album.
type CoverArt struct {
	ID                int    `json:"id"`
	ImageURL          string `json:"image_url"`
	ThumbnailImageURL string `json:"thumbnail_image_url"`
	Annotated         bool   `json:"annotated"`
}

// Album is an album resource.
type Album struct {
	ID                    int             `json:"id"`
	Name                  string          `json:"name"`
	FullTitle             string          `json:"full_title"`
	URL                   string          `json:"url"`
	CoverArtURL           string          `json:"cover_art_url"`
	ReleaseDateForDisplay string          `json:"release_date_for_display"`
	ReleaseDateComponents *DateComponents `json:"release_date_components"`
	Artist                *Artist         `json:"artist"`
}

// Song is a song as returned by search hits, artist listings, album track
// lists and the full song resource. Listings carry a subset of the fields.
type Song struct {
	ID                    int       `json:"id"`
	Title                 string    `json:"title"`
	FullTitle             string    `json:"full_title"`
	ArtistNames           string    `json:"artist_names"`
	URL                   string    `json:"url"`
	Path                  string    `json:"path"`
	LyricsState           string    `json:"lyrics_state"`
	Instrumental          bool      `json:"instrumental"`
	PrimaryArtist         *Artist   `json:"primary_artist"`
	FeaturedArtists       []Artist  `json:"featured_artists"`
	Album                 *AlbumRef `json:"album"`
	ReleaseDate           string    `json:"release_date"`
	ReleaseDateForDisplay string    `json:"release_date_for_display"`
	SongArtImageURL       string    `json:"song_art_image_url"`
	HeaderImageURL        string    `json:"header_image_url"`
}

// Merge overlays the non-zero fields of full onto s and returns the result.
// It is used to complete a listing entry with its full resource.
func (s Song) Merge(full *Song) Song {
	if full == nil {
		return s
	}
	if full.ID != 0 {
		s.ID = full.ID
	}
	if full.Title != "" {
		s.Title = full.Title
	}
	if full.FullTitle != "" {
		s.FullTitle = full.FullTitle
	}
	if full.ArtistNames != "" {
		s.ArtistNames = full.ArtistNames
	}
	if full.URL != "" {
		s.URL = full.URL
	}
	if full.Path != "" {
		s.Path = full.Path
	}
	if full.LyricsState != "" {
		s.LyricsState = full.LyricsState
	}
	if full.Instrumental {
		s.Instrumental = true
	}
	if full.PrimaryArtist != nil {
		s.PrimaryArtist = full.PrimaryArtist
	}
	if full.FeaturedArtists != nil {
		s.FeaturedArtists = full.FeaturedArtists
	}
	if full.Album != nil {
		s.Album = full.Album
	}
	if full.ReleaseDate != "" {
		s.ReleaseDate = full.ReleaseDate
	}
	if full.ReleaseDateForDisplay != "" {
		s.ReleaseDateForDisplay = full.ReleaseDateForDisplay
	}
	if full.SongArtImageURL != "" {
		s.SongArtImageURL = full.SongArtImageURL
	}
	if full.HeaderImageURL != "" {
		s.HeaderImageURL = full.HeaderImageURL
	}
	return s
}

// SearchResponse is a sectioned search result.
type SearchResponse struct {
	Sections []Section `json:"sections"`
	NextPage *int      `json:"next_page"`
}

// Section groups hits of one kind. The multi search puts the best overall
// hit in a leading "top_hit" section.
type Section struct {
	Type Kind  `json:"type"`
	Hits []Hit `json:"hits"`
}

// Hit is one candidate inside a search response.
type Hit struct {
	Type   Kind
	Result HitResult

	raw json.RawMessage
}

// HitResult holds the fields shared by song, artist and album hits.
// Songs fill Title, artists and albums fill Name.
type HitResult struct {
	ID              int      `json:"id"`
	Title           string   `json:"title"`
	Name            string   `json:"name"`
	URL             string   `json:"url"`
	LyricsState     string   `json:"lyrics_state"`
	Instrumental    bool     `json:"instrumental"`
	PrimaryArtist   *Artist  `json:"primary_artist"`
	FeaturedArtists []Artist `json:"featured_artists"`
}

// UnmarshalJSON keeps the raw result so it can be decoded into the
// full typed resource later.
func (h *Hit) UnmarshalJSON(data []byte) error {
	var aux struct {
		Type   Kind            `json:"type"`
		Index  Kind            `json:"index"`
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	h.Type = aux.Type
	if h.Type == "" {
		h.Type = aux.Index
	}
	h.raw = aux.Result

	if len(aux.Result) > 0 && string(aux.Result) != "null" {
		if err := json.Unmarshal(aux.Result, &h.Result); err != nil {
			return fmt.Errorf("failed to decode %s hit: %w", h.Type, err)
		}
	}
	return nil
}

// MarshalJSON writes the hit back in the wire shape.
func (h Hit) MarshalJSON() ([]byte, error) {
	result := h.raw
	if result == nil {
		b, err := json.Marshal(h.Result)
		if err != nil {
			return nil, err
		}
		result = b
	}
	return json.Marshal(struct {
		Type   Kind            `json:"type"`
		Index  Kind            `json:"index"`
		Result json.RawMessage `json:"result"`
	}{h.Type, h.Type, result})
}

// Song decodes the hit result as a song.
func (h Hit) Song() (*Song, error) {
	var s Song
	if err := h.decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Artist decodes the hit result as an artist.
func (h Hit) Artist() (*Artist, error) {
	var a Artist
	if err := h.decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Album decodes the hit result as an album.
func (h Hit) Album() (*Album, error) {
	var a Album
	if err := h.decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (h Hit) decode(v interface{}) error {
	if len(h.raw) == 0 {
		b, err := json.Marshal(h.Result)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, v)
	}
	if err := json.Unmarshal(h.raw, v); err != nil {
		return fmt.Errorf("genius: failed to decode %s hit: %w", h.Type, err)
	}
	return nil
}

// PageOptions controls paginated listings.
type PageOptions struct {
	Page    int  // 1-based page number (defaults to 1)
	PerPage int  // items per page, 1..50 (defaults to 20)
	Sort    Sort // artist song listings only (defaults to popularity)
}

// SongPage is one page of an artist's song listing.
type SongPage struct {
	Songs    []Song `json:"songs"`
	NextPage *int   `json:"next_page"`
}

// Track is one entry of an album track list.
type Track struct {
	Number *int `json:"number"`
	Song   Song `json:"song"`
}

// TrackPage is one page of an album's track list.
type TrackPage struct {
	Tracks   []Track `json:"tracks"`
	NextPage *int    `json:"next_page"`
}

// Token is the result of an OAuth2 code exchange.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
