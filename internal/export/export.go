// Package export writes songs, artists and albums to lyrics files.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/jfmyers9/verses/internal/catalog"
)

// Format is an output file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTXT  Format = "txt"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTXT:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or txt)", s)
	}
}

// ErrFileExists is returned when the target file exists and Overwrite is
// not set.
var ErrFileExists = errors.New("file already exists")

// Options control where and how files are written.
type Options struct {
	Dir       string // output directory (defaults to the working directory)
	Format    Format // defaults to json
	Overwrite bool
}

// SaveSong writes a song's lyrics. An empty filename uses
// Lyrics_<Artist>_<Title>. Returns the written path.
func SaveSong(song *catalog.Song, filename string, opts Options) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("Lyrics_%s_%s", song.Artist, song.Title)
	}
	return save(filename, opts, song.JSON, song.Text)
}

// SaveArtist writes an artist with all of its songs. An empty filename
// uses Lyrics_<Artist>.
func SaveArtist(artist *catalog.Artist, filename string, opts Options) (string, error) {
	if filename == "" {
		filename = "Lyrics_" + artist.Name
	}
	return save(filename, opts, artist.JSON, artist.Text)
}

// SaveAlbum writes an album with all of its tracks. An empty filename uses
// Lyrics_<Artist>_<Album>.
func SaveAlbum(album *catalog.Album, filename string, opts Options) (string, error) {
	if filename == "" {
		filename = fmt.Sprintf("Lyrics_%s_%s", album.Artist.Name, album.Name)
	}
	return save(filename, opts, album.JSON, album.Text)
}

// SaveArtists writes several artists to a single file.
func SaveArtists(artists []*catalog.Artist, filename string, opts Options) (string, error) {
	if len(artists) == 0 {
		return "", errors.New("no artists to save")
	}
	if filename == "" {
		filename = "Lyrics_" + strings.Join(lo.Map(artists, func(a *catalog.Artist, _ int) string { return a.Name }), "_")
	}

	marshal := func() ([]byte, error) {
		return json.MarshalIndent(struct {
			Artists []*catalog.Artist `json:"artists"`
		}{artists}, "", "  ")
	}
	text := func() string {
		return strings.Join(lo.Map(artists, func(a *catalog.Artist, _ int) string {
			return a.Name + "\n\n\n" + a.Text()
		}), "\n\n\n\n")
	}
	return save(filename, opts, marshal, text)
}

// Sanitize reduces a name to a portable file name: spaces are removed and
// only letters, digits, "_", "-" and "." are kept.
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_-.", r) {
			return r
		}
		return -1
	}, name)
}

func save(filename string, opts Options, marshal func() ([]byte, error), text func() string) (string, error) {
	format := opts.Format
	if format == "" {
		format = FormatJSON
	}

	var data []byte
	switch format {
	case FormatJSON:
		b, err := marshal()
		if err != nil {
			return "", fmt.Errorf("failed to encode lyrics: %w", err)
		}
		data = b
	case FormatTXT:
		data = []byte(text())
	default:
		return "", fmt.Errorf("unknown format %q", format)
	}

	name := filename
	if ext := filepath.Ext(name); ext == ".json" || ext == ".txt" {
		name = strings.TrimSuffix(name, ext)
	}
	name = Sanitize(name)
	if name == "" {
		return "", fmt.Errorf("file name %q has no usable characters", filename)
	}
	path := filepath.Join(opts.Dir, name+"."+string(format))

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", ErrFileExists, path)
		}
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
