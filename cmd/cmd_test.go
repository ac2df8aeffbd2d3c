package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/export"
	"github.com/jfmyers9/verses/internal/resolve"
	"github.com/jfmyers9/verses/pkg/genius"
)

const searchResponse = `{
  "sections": [
    {"type": "top_hit", "hits": [
      {"type": "song", "result": {"id": 90, "title": "Yesterday", "primary_artist": {"id": 586, "name": "The Beatles"}}}
    ]},
    {"type": "song", "hits": [
      {"type": "song", "result": {"id": 91, "title": "Yesterday (Remastered 2009)", "primary_artist": {"id": 586, "name": "The Beatles"}}}
    ]},
    {"type": "lyric", "hits": [
      {"type": "lyric", "result": {"id": 92, "title": "Help!", "primary_artist": {"id": 586, "name": "The Beatles"}}}
    ]},
    {"type": "artist", "hits": [
      {"type": "artist", "result": {"id": 586, "name": "The Beatles"}}
    ]},
    {"type": "album", "hits": [
      {"type": "album", "result": {"id": 11039, "name": "Help!", "artist": {"id": 586, "name": "The Beatles"}}}
    ]},
    {"type": "video", "hits": [
      {"type": "video", "result": {"id": 5, "title": "Yesterday live"}}
    ]}
  ]
}`

func TestSearchRows(t *testing.T) {
	var resp genius.SearchResponse
	if err := json.Unmarshal([]byte(searchResponse), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	expected := [][]string{
		{"top song", "90", "Yesterday", "The Beatles"},
		{"song", "91", "Yesterday (Remastered 2009)", "The Beatles"},
		{"song", "92", "Help!", "The Beatles"},
		{"artist", "586", "The Beatles", ""},
		{"album", "11039", "Help!", "The Beatles"},
	}

	rows := searchRows(&resp)
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("searchRows() = %v, expected %v", rows, expected)
	}
}

func TestSearchRows_Empty(t *testing.T) {
	if rows := searchRows(&genius.SearchResponse{}); len(rows) != 0 {
		t.Errorf("expected no rows, got %v", rows)
	}
}

func TestExplain(t *testing.T) {
	transport := &genius.Error{Status: 500}

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{name: "no results", err: fmt.Errorf("%w: song", resolve.ErrNoResults), contains: "no results found"},
		{name: "not lyrics", err: resolve.ErrNotLyrics, contains: "not a song with lyrics"},
		{name: "no lyrics", err: resolve.ErrNoLyrics, contains: "no lyrics found"},
		{name: "artist", err: resolve.ErrArtistNotFound, contains: "artist"},
		{name: "album", err: resolve.ErrAlbumNotFound, contains: "album"},
		{name: "cancelled", err: context.Canceled, contains: "interrupted"},
		{name: "transport", err: transport, contains: "status 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := explain(tt.err, "Yesterday")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error containing %q, got %q", tt.contains, err.Error())
			}
		})
	}

	if err := explain(transport, "Yesterday"); !errors.Is(err, transport) {
		t.Errorf("expected transport error to pass through, got %v", err)
	}
}

func TestSongQuery(t *testing.T) {
	tests := []struct {
		title, artist string
		id            int
		expected      string
	}{
		{"Yesterday", "", 0, "Yesterday"},
		{"Yesterday", "The Beatles", 0, "Yesterday by The Beatles"},
		{"", "", 84851, "song id 84851"},
	}

	for _, tt := range tests {
		if got := songQuery(tt.title, tt.artist, tt.id); got != tt.expected {
			t.Errorf("songQuery(%q, %q, %d) = %q, expected %q", tt.title, tt.artist, tt.id, got, tt.expected)
		}
	}
}

func TestSaveFlags_ExportOptions(t *testing.T) {
	cfg := &config.Config{Output: config.OutputConfig{Dir: ".", Format: "json"}}

	flags := &saveFlags{format: "txt", dir: "/tmp/lyrics", overwrite: true}
	opts, err := flags.exportOptions(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Format != export.FormatTXT || opts.Dir != "/tmp/lyrics" || !opts.Overwrite {
		t.Errorf("unexpected options: %+v", opts)
	}

	flags = &saveFlags{format: "xml"}
	if _, err := flags.exportOptions(cfg); err == nil {
		t.Error("expected error for unknown format")
	}
}
