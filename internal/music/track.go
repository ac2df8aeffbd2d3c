// Package music identifies the track a user wants lyrics for, either from
// the player that is currently running or from an audio file's tags.
package music

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// Track represents a music track with its metadata and current state
type Track struct {
	Title    string        // Track title
	Artist   string        // Artist name
	Album    string        // Album name
	Duration time.Duration // Total track duration, zero when unknown
	Position time.Duration // Current playback position
	State    PlayState     // Current playback state
}

// PlayState represents the current playback state of the music player
type PlayState int

const (
	StateStopped PlayState = iota // No track playing
	StatePlaying                  // Track is currently playing
	StatePaused                   // Track is paused
)

// String returns a human-readable representation of the PlayState
func (s PlayState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// NowPlaying reports the track loaded in a music player.
type NowPlaying interface {
	// CurrentTrack returns the playing or paused track, or nil if the
	// player is stopped or not running.
	CurrentTrack(ctx context.Context) (*Track, error)
}

// Release annotations that stores append to titles but lyrics sites omit,
// e.g. "Yesterday - Remastered 2009" or "Help! (2015 Remaster)".
var titleNoise = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s+-\s+.*\b(remaster(ed)?|mono|stereo|version|edit|mix)\b.*$`),
	regexp.MustCompile(`(?i)\s*[\(\[][^\)\]]*\b(remaster(ed)?|mono|stereo|version|edit|mix|feat\.?|ft\.?|with)\b[^\)\]]*[\)\]]`),
}

// SearchTitle returns the title with release annotations removed.
func (t *Track) SearchTitle() string {
	title := t.Title
	for _, re := range titleNoise {
		title = re.ReplaceAllString(title, "")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return strings.TrimSpace(t.Title)
	}
	return title
}
