package genius

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// AlbumService provides album operations. Albums are only exposed by the
// public API, so these calls never use the access token.
type AlbumService struct {
	client *Client
}

// Get fetches the full album resource.
func (s *AlbumService) Get(ctx context.Context, id int) (*Album, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var resp struct {
		Album *Album `json:"album"`
	}
	if err := s.client.getJSON(ctx, true, fmt.Sprintf("albums/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Album == nil {
		return nil, fmt.Errorf("genius: album %d missing from response", id)
	}
	return resp.Album, nil
}

// Tracks fetches one page of the album's track list, in album order.
func (s *AlbumService) Tracks(ctx context.Context, id int, opts PageOptions) (*TrackPage, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	page, perPage, err := pageParams(opts)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}

	var resp TrackPage
	if err := s.client.getJSON(ctx, true, fmt.Sprintf("albums/%d/tracks", id), params, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CoverArts fetches the cover art images of an album, or of the album a
// song belongs to. Exactly one of albumID and songID must be set.
func (s *AlbumService) CoverArts(ctx context.Context, albumID, songID int) ([]CoverArt, error) {
	if (albumID == 0) == (songID == 0) {
		return nil, fmt.Errorf("%w: specify exactly one of album id and song id", ErrInvalidArgument)
	}

	params := url.Values{}
	if albumID != 0 {
		if err := checkID(albumID); err != nil {
			return nil, err
		}
		params.Set("album_id", strconv.Itoa(albumID))
	} else {
		if err := checkID(songID); err != nil {
			return nil, err
		}
		params.Set("song_id", strconv.Itoa(songID))
	}

	var resp struct {
		CoverArts []CoverArt `json:"cover_arts"`
	}
	if err := s.client.getJSON(ctx, true, "cover_arts", params, &resp); err != nil {
		return nil, err
	}
	return resp.CoverArts, nil
}
