package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/catalog"
	"github.com/jfmyers9/verses/internal/export"
	"github.com/jfmyers9/verses/internal/store"
)

var (
	albumArtist      string
	albumID          int
	albumPrintLyrics bool
	albumCovers      bool
	albumSave        saveFlags
)

var albumCmd = &cobra.Command{
	Use:   "album [NAME]",
	Short: "Collect the lyrics of an album",
	Long: `Search Genius for an album and collect the lyrics of every track.

Tracks keep the album's order. Instrumentals and tracks without finished
lyrics are listed without lyrics.`,
	Example: `  verses album "Abbey Road" --artist "The Beatles"
  verses album --id 11039 --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAlbum,
}

func init() {
	rootCmd.AddCommand(albumCmd)

	albumCmd.Flags().StringVarP(&albumArtist, "artist", "a", "", "Artist name to narrow the search")
	albumCmd.Flags().IntVar(&albumID, "id", 0, "Genius album id")
	albumCmd.Flags().BoolVarP(&albumPrintLyrics, "lyrics", "l", false, "Print the lyrics of every track")
	albumCmd.Flags().BoolVar(&albumCovers, "covers", false, "List the album's cover art images")
	albumSave.register(albumCmd)
}

func runAlbum(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" && albumID == 0 {
		return fmt.Errorf("an album name or --id is required")
	}

	a, err := newApp(nil)
	if err != nil {
		return err
	}

	album, err := a.resolver.SearchAlbum(ctx, name, albumArtist, albumID)
	if err != nil {
		query := name
		if albumID != 0 {
			query = "id " + strconv.Itoa(albumID)
		}
		return explain(err, query)
	}

	out := cmd.OutOrStdout()
	if albumPrintLyrics {
		fmt.Fprintln(out, album.Text())
	} else {
		printAlbum(out, album)
	}

	if albumCovers {
		arts, err := a.client.Albums().CoverArts(ctx, album.ID, 0)
		if err != nil {
			return fmt.Errorf("failed to fetch cover art: %w", err)
		}
		fmt.Fprintln(out)
		for _, art := range arts {
			fmt.Fprintln(out, art.ImageURL)
		}
	}

	if !albumSave.save {
		return nil
	}

	opts, err := albumSave.exportOptions(a.cfg)
	if err != nil {
		return err
	}
	path, err := export.SaveAlbum(album, albumSave.filename, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %d tracks to %s\n", len(album.Tracks), path)

	if albumSave.noLibrary {
		return nil
	}
	return a.record(ctx, album.Songs(), func(st *store.Store) error {
		_, err := st.SaveAlbum(ctx, album)
		return err
	})
}

func printAlbum(w io.Writer, album *catalog.Album) {
	header := album.Name
	if album.Artist.Name != "" {
		header += " by " + album.Artist.Name
	}
	if album.ReleaseDateDisplay != "" {
		header += " (" + album.ReleaseDateDisplay + ")"
	}
	fmt.Fprintf(w, "%s\n\n", header)

	rows := make([][]string, 0, len(album.Tracks))
	for _, t := range album.Tracks {
		lyrics := "yes"
		if t.Song.Lyrics == "" {
			lyrics = "no"
		}
		rows = append(rows, []string{strconv.Itoa(t.Number), t.Song.Title, lyrics})
	}
	renderTable(w, []string{"#", "TITLE", "LYRICS"}, rows)
}
