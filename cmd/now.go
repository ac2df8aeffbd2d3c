package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/music"
)

var (
	nowFormat string
	nowSave   saveFlags
)

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print the lyrics of the track playing in Apple Music",
	Long: `Query Apple Music for the current track and print its lyrics.

Release annotations such as "- Remastered 2009" are dropped from the title
before searching. The header line can be customized with a Go template.
Available fields: .Title, .Artist, .Album, .Duration, .Position

Exits with an error when Music is not running or nothing is loaded.`,
	Args: cobra.NoArgs,
	RunE: runNow,
}

func init() {
	rootCmd.AddCommand(nowCmd)

	nowCmd.Flags().StringVarP(&nowFormat, "header", "H", "{{.Artist}} - {{.Title}}", "Header template")
	nowSave.register(nowCmd)
}

func runNow(cmd *cobra.Command, args []string) error {
	queryCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	track, err := music.NewAppleScriptClient().CurrentTrack(queryCtx)
	if err != nil {
		return fmt.Errorf("failed to get current track: %w", err)
	}
	if track == nil {
		return fmt.Errorf("no track is playing")
	}

	return lyricsForTrack(cmd, track, nowFormat, &nowSave)
}

// lyricsForTrack looks up and prints the lyrics of a track read from a
// player or a file.
func lyricsForTrack(cmd *cobra.Command, track *music.Track, header string, flags *saveFlags) error {
	ctx := cmd.Context()

	headline, err := formatTrack(track, header)
	if err != nil {
		return fmt.Errorf("failed to format header: %w", err)
	}

	a, err := newApp(nil)
	if err != nil {
		return err
	}

	title := track.SearchTitle()
	a.logger.Debug().
		Str("title", title).
		Str("artist", track.Artist).
		Msg("Looking up track")

	song, err := a.resolver.SearchSong(ctx, title, track.Artist, 0)
	if err != nil {
		return explain(err, songQuery(title, track.Artist, 0))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n\n%s\n", headline, song.Lyrics)

	return a.saveSong(ctx, cmd.ErrOrStderr(), song, flags)
}
