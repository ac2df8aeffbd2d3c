package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/catalog"
	"github.com/jfmyers9/verses/internal/export"
	"github.com/jfmyers9/verses/internal/store"
)

var (
	songArtist string
	songID     int
	songSave   saveFlags
)

var songCmd = &cobra.Command{
	Use:   "song [TITLE]",
	Short: "Print the lyrics of a song",
	Long: `Search Genius for a song and print its lyrics.

The search combines the title and the optional artist. The result whose
title matches best is chosen; results that are not songs (track lists,
interviews, liner notes) are skipped unless search.skip_non_songs is false.

Use --id to fetch a song by its Genius id instead of searching.`,
	Example: `  verses song Yesterday --artist "The Beatles"
  verses song --id 84851 --save --format txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSong,
}

func init() {
	rootCmd.AddCommand(songCmd)

	songCmd.Flags().StringVarP(&songArtist, "artist", "a", "", "Artist name to narrow the search")
	songCmd.Flags().IntVar(&songID, "id", 0, "Genius song id")
	songSave.register(songCmd)
}

func runSong(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var title string
	if len(args) > 0 {
		title = args[0]
	}
	if title == "" && songID == 0 {
		return fmt.Errorf("a title or --id is required")
	}

	a, err := newApp(nil)
	if err != nil {
		return err
	}

	song, err := a.resolver.SearchSong(ctx, title, songArtist, songID)
	if err != nil {
		return explain(err, songQuery(title, songArtist, songID))
	}

	printSong(cmd.OutOrStdout(), song)

	return a.saveSong(ctx, cmd.ErrOrStderr(), song, &songSave)
}

// saveSong writes the song file and library entry when --save is set.
func (a *app) saveSong(ctx context.Context, w io.Writer, song *catalog.Song, flags *saveFlags) error {
	if !flags.save {
		return nil
	}

	opts, err := flags.exportOptions(a.cfg)
	if err != nil {
		return err
	}

	path, err := export.SaveSong(song, flags.filename, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved lyrics to %s\n", path)

	if flags.noLibrary {
		return nil
	}
	return a.record(ctx, []*catalog.Song{song}, func(st *store.Store) error {
		return st.SaveSong(ctx, song)
	})
}

func printSong(w io.Writer, song *catalog.Song) {
	fmt.Fprintf(w, "%s by %s\n\n", song.Title, song.Artist)
	fmt.Fprintln(w, song.Lyrics)
}

func songQuery(title, artist string, id int) string {
	if id != 0 {
		return fmt.Sprintf("song id %d", id)
	}
	if artist != "" {
		return title + " by " + artist
	}
	return title
}
