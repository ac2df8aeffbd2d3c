package resolve

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmyers9/verses/pkg/genius"
)

func newResolver(t *testing.T, src Source, opts Options) *Resolver {
	t.Helper()
	r, err := New(src, opts, zerolog.Nop())
	require.NoError(t, err)
	return r
}

func TestNew_Validation(t *testing.T) {
	src := newFakeSource()

	_, err := New(nil, DefaultOptions(), zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	opts := DefaultOptions()
	opts.PerPage = 0
	_, err = New(src, opts, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	opts = DefaultOptions()
	opts.Sort = "newest"
	_, err = New(src, opts, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	opts = DefaultOptions()
	opts.ExcludedTerms = []string{"[unclosed"}
	_, err = New(src, opts, zerolog.Nop())
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestSearchSong_EndToEnd(t *testing.T) {
	src := newFakeSource()
	hit := songHit(90, "Yesterday", "The Beatles", "complete")
	src.searches["Yesterday The Beatles"] = &genius.SearchResponse{Sections: []genius.Section{
		{Type: genius.KindSong, Hits: []genius.Hit{hit}},
	}}
	src.songs[90] = &genius.Song{
		ID:          90,
		Title:       "Yesterday",
		ReleaseDate: "1965-08-06",
		Album:       &genius.AlbumRef{ID: 11, Name: "Help!"},
	}
	src.lyrics[hit.Result.URL] = "All my troubles seemed so far away\nNow it looks as though they're here to stay"

	r := newResolver(t, src, DefaultOptions())

	song, err := r.SearchSong(context.Background(), "Yesterday", "The Beatles", 0)
	require.NoError(t, err)

	assert.Equal(t, "Yesterday", song.Title)
	assert.Equal(t, "The Beatles", song.Artist)
	assert.True(t, strings.HasPrefix(song.Lyrics, "All my troubles"))
	require.NotNil(t, song.Album)
	assert.Equal(t, "Help!", song.Album.Name)
	assert.Equal(t, []string{"Yesterday The Beatles"}, src.searchTerms)
	assert.Equal(t, []int{90}, src.songFetches)
}

func TestSearchSong_ByID(t *testing.T) {
	src := newFakeSource()
	src.songs[90] = &genius.Song{
		ID:            90,
		Title:         "Yesterday",
		URL:           "https://genius.com/songs/90",
		LyricsState:   "complete",
		PrimaryArtist: &genius.Artist{ID: 586, Name: "The Beatles"},
	}
	src.lyrics["https://genius.com/songs/90"] = "All my troubles"

	r := newResolver(t, src, DefaultOptions())

	song, err := r.SearchSong(context.Background(), "", "", 90)
	require.NoError(t, err)
	assert.Equal(t, 90, song.ID)
	assert.Empty(t, src.searchTerms)

	_, err = r.SearchSong(context.Background(), "", "", 91)
	assert.True(t, errors.Is(err, ErrNoResults))
}

func TestSearchSong_Outcomes(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(src *fakeSource)
		title   string
		songID  int
		wantErr error
	}{
		{
			name:    "neither title nor id",
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "both title and id",
			title:   "Yesterday",
			songID:  90,
			wantErr: ErrInvalidArgument,
		},
		{
			name:    "no results",
			title:   "Yesterday",
			wantErr: ErrNoResults,
		},
		{
			name: "not lyrics",
			setup: func(src *fakeSource) {
				src.searches["Help!"] = &genius.SearchResponse{Sections: []genius.Section{
					{Type: genius.KindSong, Hits: []genius.Hit{songHit(5, "Album Artwork", "The Beatles", "complete")}},
				}}
			},
			title:   "Help!",
			wantErr: ErrNotLyrics,
		},
		{
			name: "no lyrics on page",
			setup: func(src *fakeSource) {
				src.searches["Yesterday"] = &genius.SearchResponse{Sections: []genius.Section{
					{Type: genius.KindSong, Hits: []genius.Hit{songHit(90, "Yesterday", "The Beatles", "complete")}},
				}}
				src.songs[90] = &genius.Song{ID: 90}
			},
			title:   "Yesterday",
			wantErr: ErrNoLyrics,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newFakeSource()
			if tt.setup != nil {
				tt.setup(src)
			}
			r := newResolver(t, src, DefaultOptions())

			song, err := r.SearchSong(context.Background(), tt.title, "", tt.songID)
			assert.Nil(t, song)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			if errors.Is(tt.wantErr, ErrInvalidArgument) {
				assert.Empty(t, src.searchTerms)
				assert.Empty(t, src.songFetches)
			}
			if errors.Is(tt.wantErr, ErrNotLyrics) {
				assert.Empty(t, src.lyricsFetches)
			}
		})
	}
}

func TestSearchSong_TransportErrorPassesThrough(t *testing.T) {
	src := newFakeSource()
	src.searches["Yesterday"] = &genius.SearchResponse{Sections: []genius.Section{
		{Type: genius.KindSong, Hits: []genius.Hit{songHit(90, "Yesterday", "The Beatles", "complete")}},
	}}
	src.songs[90] = &genius.Song{ID: 90}
	src.lyricsErrs["https://genius.com/songs/90"] = &genius.Error{Status: http.StatusBadGateway}

	r := newResolver(t, src, DefaultOptions())

	_, err := r.SearchSong(context.Background(), "Yesterday", "", 0)
	var gErr *genius.Error
	require.True(t, errors.As(err, &gErr))
	assert.Equal(t, http.StatusBadGateway, gErr.Status)
}

// beatlesSource serves an artist with three listing pages of two songs.
func beatlesSource() *fakeSource {
	src := newFakeSource()
	src.searches["The Beatles"] = &genius.SearchResponse{Sections: []genius.Section{
		{Type: genius.KindArtist, Hits: []genius.Hit{namedHit(genius.KindArtist, 586, "The Beatles")}},
	}}
	src.artists[586] = &genius.Artist{ID: 586, Name: "The Beatles"}

	titles := []string{"Yesterday", "Help!", "Let It Be", "Hey Jude", "Something", "Blackbird"}
	for i := 0; i < 3; i++ {
		page := &genius.SongPage{}
		for j := 0; j < 2; j++ {
			id := i*2 + j + 1
			entry := listingSong(id, titles[id-1], "The Beatles")
			page.Songs = append(page.Songs, entry)
			src.songs[id] = &genius.Song{ID: id, FullTitle: entry.Title + " by The Beatles"}
			src.lyrics[entry.URL] = "lyrics of " + entry.Title
		}
		if i < 2 {
			page.NextPage = intPtr(i + 2)
		}
		src.songPages[i+1] = page
	}
	return src
}

func pagesSeen(src *fakeSource) []int {
	pages := []int{}
	for _, p := range src.songPagesSeen {
		pages = append(pages, p.Page)
	}
	return pages
}

func TestSearchArtist_CapStopsPaging(t *testing.T) {
	src := beatlesSource()
	r := newResolver(t, src, DefaultOptions())

	artist, err := r.SearchArtist(context.Background(), ArtistQuery{Name: "The Beatles", MaxSongs: Limit(3)})
	require.NoError(t, err)

	assert.Equal(t, 3, artist.Len())
	assert.Equal(t, []int{1, 2}, pagesSeen(src))
	assert.Len(t, src.lyricsFetches, 3)

	titles := []string{}
	for _, s := range artist.Songs() {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Yesterday", "Help!", "Let It Be"}, titles)
}

func TestSearchArtist_CapNeverExceeded(t *testing.T) {
	for limit := 1; limit <= 7; limit++ {
		src := beatlesSource()
		r := newResolver(t, src, DefaultOptions())

		artist, err := r.SearchArtist(context.Background(), ArtistQuery{Name: "The Beatles", MaxSongs: Limit(limit)})
		require.NoError(t, err)

		want := limit
		if want > 6 {
			want = 6
		}
		assert.Equal(t, want, artist.Len(), "max songs %d", limit)
	}
}

func TestSearchArtist_ZeroSongsFetchesNoPages(t *testing.T) {
	src := beatlesSource()
	r := newResolver(t, src, DefaultOptions())

	artist, err := r.SearchArtist(context.Background(), ArtistQuery{Name: "The Beatles", MaxSongs: Limit(0)})
	require.NoError(t, err)

	assert.Equal(t, "The Beatles", artist.Name)
	assert.Equal(t, 0, artist.Len())
	assert.Empty(t, src.songPagesSeen)
	assert.Empty(t, src.lyricsFetches)
}

func TestSearchArtist_Unlimited(t *testing.T) {
	src := beatlesSource()
	opts := DefaultOptions()
	opts.Sort = genius.SortTitle
	opts.PerPage = 2
	r := newResolver(t, src, opts)

	artist, err := r.SearchArtist(context.Background(), ArtistQuery{Name: "The Beatles"})
	require.NoError(t, err)

	assert.Equal(t, 6, artist.Len())
	assert.Equal(t, []int{1, 2, 3}, pagesSeen(src))
	for _, p := range src.songPagesSeen {
		assert.Equal(t, genius.SortTitle, p.Sort)
		assert.Equal(t, 2, p.PerPage)
	}

	s, ok := artist.Song("yesterday")
	require.True(t, ok)
	assert.Equal(t, "lyrics of Yesterday", s.Lyrics)
}

func TestSearchArtist_EntryFiltering(t *testing.T) {
	src := newFakeSource()
	src.artists[586] = &genius.Artist{ID: 586, Name: "The Beatles"}

	untitled := listingSong(4, "", "The Beatles")
	nonLyrical := listingSong(5, "Help! (Tracklist)", "The Beatles")
	incomplete := listingSong(6, "Now and Then", "The Beatles")
	incomplete.LyricsState = "unreleased"
	featured := listingSong(7, "Get Back", "Billy Preston")
	featured.FeaturedArtists = []genius.Artist{{ID: 586, Name: "The Beatles"}}
	broken := listingSong(8, "Broken", "The Beatles")

	src.songPages[1] = &genius.SongPage{Songs: []genius.Song{
		listingSong(1, "Yesterday", "The Beatles"),
		listingSong(2, "Yesterday", "The Beatles"),
		listingSong(3, "Imagine", "John Lennon"),
		untitled,
		nonLyrical,
		incomplete,
		featured,
		broken,
	}}
	src.lyricsErrs[broken.URL] = errors.New("connection reset")

	tests := []struct {
		name            string
		includeFeatures bool
		wantTitles      []string
	}{
		{name: "own songs only", wantTitles: []string{"Yesterday", MissingTitle}},
		{name: "with features", includeFeatures: true, wantTitles: []string{"Yesterday", MissingTitle, "Get Back"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src.lyricsFetches = nil
			opts := DefaultOptions()
			opts.IncludeFeatures = tt.includeFeatures
			r := newResolver(t, src, opts)

			artist, err := r.SearchArtist(context.Background(), ArtistQuery{ID: 586})
			require.NoError(t, err)

			titles := []string{}
			for _, s := range artist.Songs() {
				titles = append(titles, s.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
			assert.NotContains(t, src.lyricsFetches, nonLyrical.URL)
			assert.NotContains(t, src.lyricsFetches, incomplete.URL)
			assert.Contains(t, src.lyricsFetches, broken.URL)
		})
	}
}

func TestSearchArtist_CanonicalName(t *testing.T) {
	for _, allow := range []bool{true, false} {
		src := beatlesSource()
		src.searches["beatles"] = src.searches["The Beatles"]
		opts := DefaultOptions()
		opts.AllowNameChange = allow
		r := newResolver(t, src, opts)

		artist, err := r.SearchArtist(context.Background(), ArtistQuery{Name: "beatles", MaxSongs: Limit(2)})
		require.NoError(t, err)

		assert.Equal(t, "The Beatles", artist.Name)
		assert.Equal(t, 2, artist.Len(), "allow name change %v", allow)
	}
}

func TestSearchArtist_Errors(t *testing.T) {
	t.Run("invalid query", func(t *testing.T) {
		src := newFakeSource()
		r := newResolver(t, src, DefaultOptions())

		_, err := r.SearchArtist(context.Background(), ArtistQuery{})
		assert.True(t, errors.Is(err, ErrInvalidArgument))

		_, err = r.SearchArtist(context.Background(), ArtistQuery{Name: "x", MaxSongs: Limit(-1)})
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.Empty(t, src.searchTerms)
	})

	t.Run("no search match", func(t *testing.T) {
		r := newResolver(t, newFakeSource(), DefaultOptions())
		_, err := r.SearchArtist(context.Background(), ArtistQuery{Name: "Nobody"})
		assert.True(t, errors.Is(err, ErrArtistNotFound))
	})

	t.Run("unknown id", func(t *testing.T) {
		r := newResolver(t, newFakeSource(), DefaultOptions())
		_, err := r.SearchArtist(context.Background(), ArtistQuery{ID: 999})
		assert.True(t, errors.Is(err, ErrArtistNotFound))
	})

	t.Run("page fetch failure propagates", func(t *testing.T) {
		src := beatlesSource()
		src.songPageErr = &genius.Error{Status: http.StatusServiceUnavailable}
		r := newResolver(t, src, DefaultOptions())

		_, err := r.SearchArtist(context.Background(), ArtistQuery{Name: "The Beatles"})
		var gErr *genius.Error
		require.True(t, errors.As(err, &gErr))
		assert.Equal(t, http.StatusServiceUnavailable, gErr.Status)
		assert.Len(t, src.songPagesSeen, 1)
	})

	t.Run("cancelled context", func(t *testing.T) {
		src := beatlesSource()
		r := newResolver(t, src, DefaultOptions())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := r.SearchArtist(ctx, ArtistQuery{ID: 586})
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Empty(t, src.lyricsFetches)
	})
}

func TestSearchAlbum(t *testing.T) {
	src := newFakeSource()
	src.searches["Help! The Beatles"] = &genius.SearchResponse{Sections: []genius.Section{
		{Type: genius.KindAlbum, Hits: []genius.Hit{namedHit(genius.KindAlbum, 11, "Help!")}},
	}}
	src.albums[11] = &genius.Album{
		ID:                    11,
		Name:                  "Help!",
		Artist:                &genius.Artist{ID: 586, Name: "The Beatles"},
		ReleaseDateComponents: &genius.DateComponents{Year: intPtr(1965), Month: intPtr(8), Day: intPtr(6)},
	}

	help := listingSong(1, "Help!", "The Beatles")
	booklet := listingSong(2, "Help! (Booklet)", "The Beatles")
	unfinished := listingSong(3, "Yesterday (Take 1)", "The Beatles")
	unfinished.LyricsState = "incomplete"
	yesterday := listingSong(90, "Yesterday", "The Beatles")

	src.trackPages[1] = &genius.TrackPage{
		Tracks:   []genius.Track{{Number: intPtr(1), Song: help}, {Number: intPtr(2), Song: booklet}},
		NextPage: intPtr(2),
	}
	src.trackPages[2] = &genius.TrackPage{
		Tracks: []genius.Track{{Number: intPtr(3), Song: unfinished}, {Song: yesterday}},
	}
	src.lyrics[help.URL] = "Help, I need somebody"
	src.lyrics[yesterday.URL] = "All my troubles"

	r := newResolver(t, src, DefaultOptions())

	album, err := r.SearchAlbum(context.Background(), "Help!", "The Beatles", 0)
	require.NoError(t, err)

	assert.Equal(t, "Help!", album.Name)
	assert.Equal(t, "The Beatles", album.Artist.Name)
	require.NotNil(t, album.ReleaseDate)
	assert.Equal(t, 1965, album.ReleaseDate.Year())

	require.Len(t, album.Tracks, 4)
	assert.Equal(t, []int{1, 2, 3, 0}, []int{album.Tracks[0].Number, album.Tracks[1].Number, album.Tracks[2].Number, album.Tracks[3].Number})
	assert.Equal(t, "Help! (Booklet)", album.Tracks[1].Song.Title)
	assert.Equal(t, "", album.Tracks[2].Song.Lyrics)
	assert.Equal(t, "All my troubles", album.Tracks[3].Song.Lyrics)
	assert.NotContains(t, src.lyricsFetches, unfinished.URL)
}

func TestSearchAlbum_Errors(t *testing.T) {
	r := newResolver(t, newFakeSource(), DefaultOptions())
	ctx := context.Background()

	_, err := r.SearchAlbum(ctx, "", "", 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = r.SearchAlbum(ctx, "Help!", "", 11)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = r.SearchAlbum(ctx, "Help!", "", 0)
	assert.True(t, errors.Is(err, ErrAlbumNotFound))

	_, err = r.SearchAlbum(ctx, "", "", 11)
	assert.True(t, errors.Is(err, ErrAlbumNotFound))
}
