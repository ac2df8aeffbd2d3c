package genius

import (
	"context"
	"fmt"
)

// SongService provides song resource operations.
type SongService struct {
	client *Client
}

// Get fetches the full song resource.
//
// Example:
//
//	song, err := client.Songs().Get(ctx, 2236)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(song.FullTitle)
func (s *SongService) Get(ctx context.Context, id int) (*Song, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var resp struct {
		Song *Song `json:"song"`
	}
	if err := s.client.getJSON(ctx, false, fmt.Sprintf("songs/%d", id), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Song == nil {
		return nil, fmt.Errorf("genius: song %d missing from response", id)
	}
	return resp.Song, nil
}
