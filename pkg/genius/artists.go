package genius

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ArtistService provides artist resource operations.
type ArtistService struct {
	client *Client
}

// Get fetches the full artist resource.
func (s *ArtistService) Get(ctx context.Context, id int) (*Artist, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var resp struct {
		Artist *Artist `json:"artist"`
	}
	if err := s.client.getJSON(ctx, false, fmt.Sprintf("artists/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Artist == nil {
		return nil, fmt.Errorf("genius: artist %d missing from response", id)
	}
	return resp.Artist, nil
}

// Songs fetches one page of the artist's song listing.
//
// The listing is ordered by opts.Sort (popularity by default). Iterate
// until NextPage is nil:
//
//	opts := genius.PageOptions{Page: 1, PerPage: 50}
//	for {
//	    page, err := client.Artists().Songs(ctx, artistID, opts)
//	    if err != nil {
//	        return err
//	    }
//	    // ... use page.Songs
//	    if page.NextPage == nil {
//	        break
//	    }
//	    opts.Page = *page.NextPage
//	}
func (s *ArtistService) Songs(ctx context.Context, id int, opts PageOptions) (*SongPage, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	page, perPage, err := pageParams(opts)
	if err != nil {
		return nil, err
	}

	sort := opts.Sort
	if sort == "" {
		sort = SortPopularity
	}
	if !sort.Valid() {
		return nil, fmt.Errorf("%w: sort must be %q or %q, got %q", ErrInvalidArgument, SortTitle, SortPopularity, sort)
	}

	params := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
		"sort":     {string(sort)},
	}

	var resp SongPage
	if err := s.client.getJSON(ctx, false, fmt.Sprintf("artists/%d/songs", id), params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
