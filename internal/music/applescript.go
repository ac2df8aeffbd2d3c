package music

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// AppleScriptClient reads the current track from Apple Music via osascript.
type AppleScriptClient struct {
	run func(ctx context.Context, script string) ([]byte, error)
}

// NewAppleScriptClient creates a new AppleScript-based music client
func NewAppleScriptClient() *AppleScriptClient {
	return &AppleScriptClient{run: runOsascript}
}

func runOsascript(ctx context.Context, script string) ([]byte, error) {
	output, err := exec.CommandContext(ctx, "osascript", "-e", script).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("osascript error: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("failed to execute osascript: %w", err)
	}
	return output, nil
}

const currentTrackScript = `
tell application "System Events"
	if not ((name of processes) contains "Music") then
		return "not_running"
	end if
end tell
tell application "Music"
	if player state is stopped then
		return "stopped"
	else
		set trackName to name of current track
		set trackArtist to artist of current track
		set trackAlbum to album of current track
		set trackDuration to duration of current track
		set playerPos to player position
		set playerState to player state as string

		return trackName & "|||" & trackArtist & "|||" & trackAlbum & "|||" & trackDuration & "|||" & playerPos & "|||" & playerState
	end if
end tell`

// CurrentTrack returns the currently playing or paused track from Apple Music.
// A single osascript call checks that Music is running and reads the track.
func (c *AppleScriptClient) CurrentTrack(ctx context.Context) (*Track, error) {
	output, err := c.run(ctx, currentTrackScript)
	if err != nil {
		return nil, err
	}

	result := strings.TrimSpace(string(output))
	if result == "not_running" || result == "stopped" {
		return nil, nil
	}

	track, err := parseTrackOutput(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse track output: %w", err)
	}

	return track, nil
}

// parseTrackOutput parses the delimited output from the AppleScript
func parseTrackOutput(output string) (*Track, error) {
	parts := strings.Split(output, "|||")
	if len(parts) != 6 {
		return nil, fmt.Errorf("expected 6 parts, got %d: %q", len(parts), output)
	}

	durationStr := strings.TrimSpace(parts[3])
	positionStr := strings.TrimSpace(parts[4])

	// osascript may print decimals with a comma depending on locale
	durationSec, err := strconv.ParseFloat(strings.Replace(durationStr, ",", ".", 1), 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse duration %q: %w", durationStr, err)
	}

	positionSec, err := strconv.ParseFloat(strings.Replace(positionStr, ",", ".", 1), 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse position %q: %w", positionStr, err)
	}

	var state PlayState
	switch stateStr := strings.TrimSpace(parts[5]); stateStr {
	case "playing":
		state = StatePlaying
	case "paused":
		state = StatePaused
	case "stopped":
		state = StateStopped
	default:
		return nil, fmt.Errorf("unknown player state: %q", stateStr)
	}

	return &Track{
		Title:    strings.TrimSpace(parts[0]),
		Artist:   strings.TrimSpace(parts[1]),
		Album:    strings.TrimSpace(parts[2]),
		Duration: secondsToDuration(durationSec),
		Position: secondsToDuration(positionSec),
		State:    state,
	}, nil
}

// secondsToDuration converts seconds (as float) to time.Duration
func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
