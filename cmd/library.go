package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/internal/catalog"
	"github.com/jfmyers9/verses/internal/config"
	"github.com/jfmyers9/verses/internal/index"
	"github.com/jfmyers9/verses/internal/store"
)

var (
	libraryArtist string
	libraryLimit  int
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse lyrics saved with --save",
	Long: `Browse and search the local library of saved lyrics.

Every song saved with --save is kept in a SQLite database and a full-text
index under data_dir, so it can be found again without network access.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved songs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var librarySearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search saved lyrics",
	Long: `Search the titles, artists and lyrics of saved songs.

The query uses bleve query string syntax, e.g. title:yesterday or
"troubles seemed so far away".`,
	Args: cobra.ExactArgs(1),
	RunE: runLibrarySearch,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print the lyrics of a saved song",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryRunsCmd = &cobra.Command{
	Use:   "runs [RUN_ID]",
	Short: "List saved artists and albums, or the songs of one",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLibraryRuns,
}

func init() {
	rootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd, librarySearchCmd, libraryShowCmd, libraryRunsCmd)

	libraryCmd.PersistentFlags().IntVarP(&libraryLimit, "limit", "n", 20, "Maximum entries to show (0 lists everything, search defaults to 10)")
	libraryListCmd.Flags().StringVarP(&libraryArtist, "artist", "a", "", "Only songs by this artist")
}

// withLibrary opens the configured library for the duration of fn.
func withLibrary(fn func(st *store.Store, idx *index.Index) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	st, idx, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	defer idx.Close()

	return fn(st, idx)
}

func runLibraryList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withLibrary(func(st *store.Store, idx *index.Index) error {
		total, err := st.Count(ctx)
		if err != nil {
			return err
		}
		indexed, err := idx.Count()
		if err != nil {
			return err
		}
		songs, err := st.Songs(ctx, libraryArtist, libraryLimit)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "%s songs in library (%s indexed)\n\n", humanize.Comma(int64(total)), humanize.Comma(int64(indexed)))
		if len(songs) == 0 {
			return nil
		}
		renderTable(out, []string{"ID", "TITLE", "ARTIST", "LYRICS"}, songRows(songs))
		return nil
	})
}

func runLibrarySearch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	return withLibrary(func(_ *store.Store, idx *index.Index) error {
		hits, err := idx.Search(args[0], libraryLimit)
		if err != nil {
			return err
		}
		if len(hits) == 0 {
			fmt.Fprintf(out, "No saved lyrics match %q\n", args[0])
			return nil
		}

		rows := make([][]string, 0, len(hits))
		for _, h := range hits {
			rows = append(rows, []string{
				strconv.Itoa(h.ID),
				h.Title,
				h.Artist,
				strconv.FormatFloat(h.Score, 'f', 2, 64),
			})
		}
		renderTable(out, []string{"ID", "TITLE", "ARTIST", "SCORE"}, rows)
		return nil
	})
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid song id %q", args[0])
	}

	return withLibrary(func(st *store.Store, _ *index.Index) error {
		song, err := st.Song(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("song %d is not in the library", id)
		}
		if err != nil {
			return err
		}
		printSong(cmd.OutOrStdout(), song)
		return nil
	})
}

func runLibraryRuns(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	return withLibrary(func(st *store.Store, _ *index.Index) error {
		if len(args) == 1 {
			songs, err := st.RunSongs(ctx, args[0])
			if err != nil {
				return err
			}
			if len(songs) == 0 {
				return fmt.Errorf("run %s has no songs", args[0])
			}
			renderTable(out, []string{"ID", "TITLE", "ARTIST", "LYRICS"}, songRows(songs))
			return nil
		}

		runs, err := st.Runs(ctx, libraryLimit)
		if err != nil {
			return err
		}
		rows := make([][]string, 0, len(runs))
		for _, r := range runs {
			rows = append(rows, []string{
				r.ID,
				string(r.Kind),
				r.Name,
				humanize.Comma(int64(r.Songs)),
				humanize.Time(r.CreatedAt),
			})
		}
		renderTable(out, []string{"RUN", "KIND", "NAME", "SONGS", "SAVED"}, rows)
		return nil
	})
}

func songRows(songs []*catalog.Song) [][]string {
	rows := make([][]string, 0, len(songs))
	for _, s := range songs {
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Title,
			s.Artist,
			humanize.Bytes(uint64(len(s.Lyrics))),
		})
	}
	return rows
}
