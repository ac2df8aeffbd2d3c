package resolve

import "errors"

// Resolution outcomes. Each is returned wrapped with the query that
// produced it; test with errors.Is.
var (
	// ErrNoResults means the search produced no usable hit.
	ErrNoResults = errors.New("no results")

	// ErrNotLyrics means a hit was found but the classifier rejected it as
	// non-lyrical content.
	ErrNotLyrics = errors.New("result is not a song with lyrics")

	// ErrNoLyrics means a song was found but its page has no lyrics block.
	ErrNoLyrics = errors.New("no lyrics found")

	// ErrArtistNotFound means no artist matched the query.
	ErrArtistNotFound = errors.New("artist not found")

	// ErrAlbumNotFound means no album matched the query.
	ErrAlbumNotFound = errors.New("album not found")

	// ErrInvalidArgument marks a malformed request. It is raised before any
	// request is made.
	ErrInvalidArgument = errors.New("invalid argument")
)
