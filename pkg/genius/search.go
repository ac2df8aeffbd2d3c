package genius

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchService provides search operations.
type SearchService struct {
	client *Client
}

const (
	// MaxPerPage is the largest page size any listing endpoint accepts.
	MaxPerPage = 50

	defaultPerPage = 20
)

// Multi searches every content type at once.
//
// The response holds one section per kind, preceded by a "top_hit"
// section containing the single best overall match.
//
// Example:
//
//	resp, err := client.Search().Multi(ctx, "Yesterday The Beatles")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, section := range resp.Sections {
//	    fmt.Println(section.Type, len(section.Hits))
//	}
func (s *SearchService) Multi(ctx context.Context, term string) (*SearchResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is empty", ErrInvalidArgument)
	}

	params := url.Values{"q": {term}}

	var resp SearchResponse
	if err := s.client.getJSON(ctx, true, "search/multi", params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ByType searches a single content type with pagination.
//
// kind must be one of song, artist, album, lyric, video or user. Page and
// PerPage default to 1 and 20; PerPage is capped at 50.
func (s *SearchService) ByType(ctx context.Context, kind Kind, term string, opts PageOptions) (*SearchResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: search term is empty", ErrInvalidArgument)
	}
	switch kind {
	case KindSong, KindArtist, KindAlbum, KindLyric, KindVideo, KindUser:
	default:
		return nil, fmt.Errorf("%w: unsupported search type %q", ErrInvalidArgument, kind)
	}

	page, perPage, err := pageParams(opts)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"q":        {term},
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}

	var resp SearchResponse
	if err := s.client.getJSON(ctx, true, "search/"+string(kind), params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Lyrics searches songs by a snippet of their lyrics.
func (s *SearchService) Lyrics(ctx context.Context, snippet string, opts PageOptions) (*SearchResponse, error) {
	return s.ByType(ctx, KindLyric, snippet, opts)
}

// pageParams validates and defaults page options.
func pageParams(opts PageOptions) (page, perPage int, err error) {
	page = opts.Page
	if page == 0 {
		page = 1
	}
	if page < 0 {
		return 0, 0, fmt.Errorf("%w: page must be positive, got %d", ErrInvalidArgument, page)
	}

	perPage = opts.PerPage
	if perPage == 0 {
		perPage = defaultPerPage
	}
	if perPage < 1 || perPage > MaxPerPage {
		return 0, 0, fmt.Errorf("%w: per_page must be between 1 and %d, got %d", ErrInvalidArgument, MaxPerPage, perPage)
	}

	return page, perPage, nil
}

func checkID(id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", ErrInvalidArgument, id)
	}
	return nil
}
