package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/catalog"
	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/export"
	"github.com/jfmyers9/verses/internal/resolve"
	"github.com/jfmyers9/verses/internal/store"
)

var (
	artistID              int
	artistMaxSongs        int
	artistSort            string
	artistIncludeFeatures bool
	artistPrintLyrics     bool
	artistSave            saveFlags
)

var artistCmd = &cobra.Command{
	Use:   "artist [NAME]",
	Short: "Collect the songs of an artist",
	Long: `Search Genius for an artist and collect the lyrics of their songs.

Songs are read from the artist's song listing page by page, ordered by
popularity unless --sort title is given. Listing entries that are not
songs with lyrics are skipped, as are songs the artist is only featured
on unless --include-features is set. Collection stops after --max-songs
songs; press Ctrl-C to stop early.`,
	Example: `  verses artist "The Beatles" --max-songs 10
  verses artist --id 586 --sort title --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runArtist,
}

func init() {
	rootCmd.AddCommand(artistCmd)

	artistCmd.Flags().IntVar(&artistID, "id", 0, "Genius artist id")
	artistCmd.Flags().IntVarP(&artistMaxSongs, "max-songs", "n", -1, "Maximum songs to collect (-1 for all)")
	artistCmd.Flags().StringVar(&artistSort, "sort", "", "Song order: popularity or title (overrides config)")
	artistCmd.Flags().BoolVar(&artistIncludeFeatures, "include-features", false, "Include songs the artist is featured on")
	artistCmd.Flags().BoolVarP(&artistPrintLyrics, "lyrics", "l", false, "Print the lyrics of every song")
	artistSave.register(artistCmd)
}

func runArtist(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	q := resolve.ArtistQuery{ID: artistID}
	if len(args) > 0 {
		q.Name = args[0]
	}
	if artistMaxSongs >= 0 {
		q.MaxSongs = resolve.Limit(artistMaxSongs)
	}

	a, err := newApp(func(cfg *config.Config) {
		if artistSort != "" {
			cfg.Search.Sort = artistSort
		}
		if cmd.Flags().Changed("include-features") {
			cfg.Search.IncludeFeatures = artistIncludeFeatures
		}
	})
	if err != nil {
		return err
	}

	artist, err := a.resolver.SearchArtist(ctx, q)
	if err != nil {
		query := q.Name
		if query == "" {
			query = "id " + strconv.Itoa(q.ID)
		}
		return explain(err, query)
	}

	out := cmd.OutOrStdout()
	if artistPrintLyrics {
		fmt.Fprintln(out, artist.Text())
	} else {
		printArtist(out, artist)
	}

	if !artistSave.save {
		return nil
	}

	opts, err := artistSave.exportOptions(a.cfg)
	if err != nil {
		return err
	}
	path, err := export.SaveArtist(artist, artistSave.filename, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s songs to %s\n", humanize.Comma(int64(artist.Len())), path)

	if artistSave.noLibrary {
		return nil
	}
	return a.record(ctx, artist.Songs(), func(st *store.Store) error {
		_, err := st.SaveArtist(ctx, artist)
		return err
	})
}

func printArtist(w io.Writer, artist *catalog.Artist) {
	fmt.Fprintf(w, "%s: %s songs\n\n", artist.Name, humanize.Comma(int64(artist.Len())))

	rows := make([][]string, 0, artist.Len())
	for i, s := range artist.Songs() {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Title,
			s.ReleaseDateDisplay,
			humanize.Bytes(uint64(len(s.Lyrics))),
		})
	}
	renderTable(w, []string{"#", "TITLE", "RELEASED", "LYRICS"}, rows)
}
