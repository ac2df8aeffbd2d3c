package genius

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestArtistService_Songs tests the paginated artist song listing.
func TestArtistService_Songs(t *testing.T) {
	tests := []struct {
		name     string
		opts     PageOptions
		wantSort string
		wantPage string
		wantPer  string
	}{
		{name: "defaults", opts: PageOptions{}, wantSort: "popularity", wantPage: "1", wantPer: "20"},
		{name: "by title", opts: PageOptions{Page: 3, PerPage: 50, Sort: SortTitle}, wantSort: "title", wantPage: "3", wantPer: "50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/artists/586/songs" {
					t.Errorf("expected path /api/artists/586/songs, got %s", r.URL.Path)
				}
				q := r.URL.Query()
				if q.Get("sort") != tt.wantSort || q.Get("page") != tt.wantPage || q.Get("per_page") != tt.wantPer {
					t.Errorf("unexpected query %s", r.URL.RawQuery)
				}
				if _, err := w.Write([]byte(`{"meta":{"status":200},"response":{"songs":[
					{"id":1,"title":"Yesterday","primary_artist":{"id":586,"name":"The Beatles"}},
					{"id":2,"title":"Help!","primary_artist":{"id":586,"name":"The Beatles"}}
				],"next_page":null}}`)); err != nil {
					t.Fatalf("failed to write response body: %v", err)
				}
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, Config{AccessToken: "token"})

			page, err := client.Artists().Songs(context.Background(), 586, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(page.Songs) != 2 {
				t.Fatalf("expected 2 songs, got %d", len(page.Songs))
			}
			if page.NextPage != nil {
				t.Errorf("expected no next page, got %d", *page.NextPage)
			}
		})
	}
}

// TestAlbumService tests album resource and track listing.
func TestAlbumService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body string
		switch r.URL.Path {
		case "/public/albums/11":
			body = `{"meta":{"status":200},"response":{"album":{"id":11,"name":"Help!",
				"release_date_components":{"year":1965,"month":8,"day":null},
				"artist":{"id":586,"name":"The Beatles"}}}}`
		case "/public/albums/11/tracks":
			body = `{"meta":{"status":200},"response":{"tracks":[
				{"number":1,"song":{"id":1,"title":"Help!"}},
				{"number":13,"song":{"id":90,"title":"Yesterday"}}
			],"next_page":2}}`
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	}))
	defer server.Close()

	// Albums always use the public API, even with a token.
	client := newTestClient(t, server.URL, Config{AccessToken: "token"})
	ctx := context.Background()

	album, err := client.Albums().Get(ctx, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if album.Name != "Help!" || album.Artist == nil || album.Artist.Name != "The Beatles" {
		t.Errorf("unexpected album: %+v", album)
	}
	rd := album.ReleaseDateComponents
	if rd == nil || rd.Year == nil || *rd.Year != 1965 || rd.Month == nil || *rd.Month != 8 || rd.Day != nil {
		t.Errorf("unexpected release date components: %+v", rd)
	}

	tracks, err := client.Albums().Tracks(ctx, 11, PageOptions{PerPage: MaxPerPage})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tracks.Tracks) != 2 || tracks.Tracks[1].Song.Title != "Yesterday" {
		t.Errorf("unexpected tracks: %+v", tracks.Tracks)
	}
	if tracks.NextPage == nil || *tracks.NextPage != 2 {
		t.Errorf("expected next page 2, got %v", tracks.NextPage)
	}
}

// TestAlbumService_CoverArts tests the album/song selector of cover art lookups.
func TestAlbumService_CoverArts(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/public/cover_arts" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("album_id") == "" && q.Get("song_id") == "" {
			t.Errorf("expected album_id or song_id, got %s", r.URL.RawQuery)
		}
		body := `{"meta":{"status":200},"response":{"cover_arts":[
			{"id":7,"image_url":"https://images.genius.com/help.jpg","annotated":false}
		]}}`
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Config{})
	ctx := context.Background()

	tests := []struct {
		name     string
		albumID  int
		songID   int
		wantErr  bool
		requests int
	}{
		{name: "by album", albumID: 11, requests: 1},
		{name: "by song", songID: 90, requests: 1},
		{name: "neither", wantErr: true},
		{name: "both", albumID: 11, songID: 90, wantErr: true},
		{name: "negative album", albumID: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests = 0
			arts, err := client.Albums().CoverArts(ctx, tt.albumID, tt.songID)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				if requests != 0 {
					t.Errorf("expected no requests, got %d", requests)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(arts) != 1 || arts[0].ImageURL != "https://images.genius.com/help.jpg" {
				t.Errorf("unexpected cover arts: %+v", arts)
			}
			if requests != tt.requests {
				t.Errorf("expected %d requests, got %d", tt.requests, requests)
			}
		})
	}
}

// TestSong_Merge tests overlaying a full resource onto a listing entry.
func TestSong_Merge(t *testing.T) {
	listing := Song{
		ID:          90,
		Title:       "Yesterday",
		LyricsState: "complete",
		URL:         "https://genius.com/The-beatles-yesterday-lyrics",
	}
	full := &Song{
		ID:              90,
		FullTitle:       "Yesterday by The Beatles",
		ReleaseDate:     "1965-08-06",
		Album:           &AlbumRef{ID: 11, Name: "Help!"},
		FeaturedArtists: []Artist{},
	}

	merged := listing.Merge(full)

	if merged.Title != "Yesterday" {
		t.Errorf("expected listing title kept, got %q", merged.Title)
	}
	if merged.FullTitle != "Yesterday by The Beatles" {
		t.Errorf("expected full title from resource, got %q", merged.FullTitle)
	}
	if merged.Album == nil || merged.Album.Name != "Help!" {
		t.Errorf("expected album from resource, got %+v", merged.Album)
	}
	if merged.URL != listing.URL || merged.LyricsState != "complete" {
		t.Errorf("expected listing fields kept, got %+v", merged)
	}
	if got := listing.Merge(nil); got.Title != listing.Title {
		t.Errorf("expected nil merge to be identity, got %+v", got)
	}
}
