package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/verses/pkg/genius"
)

var (
	searchType    string
	searchPage    int
	searchPerPage int
)

var searchCmd = &cobra.Command{
	Use:   "search TERM",
	Short: "Search Genius",
	Long: `Search Genius and list the matching songs, artists and albums.

Without --type every content type is searched at once and the best overall
match is listed first. With --type a single type is searched page by page.
--type lyric finds songs by a snippet of their lyrics.`,
	Example: `  verses search "Yesterday"
  verses search --type artist Beatles
  verses search --type lyric "all my troubles seemed so far away"`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchType, "type", "t", "", "Content type: song, artist, album or lyric")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "Result page (with --type)")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", 20, "Results per page (with --type, max 50)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	term := args[0]

	a, err := newApp(nil)
	if err != nil {
		return err
	}

	var resp *genius.SearchResponse
	switch kind := genius.Kind(searchType); kind {
	case "":
		resp, err = a.client.Search().Multi(ctx, term)
	case genius.KindSong, genius.KindArtist, genius.KindAlbum, genius.KindLyric:
		resp, err = a.client.Search().ByType(ctx, kind, term, genius.PageOptions{
			Page:    searchPage,
			PerPage: searchPerPage,
		})
	default:
		return fmt.Errorf("unknown search type %q (want song, artist, album or lyric)", searchType)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	rows := searchRows(resp)
	out := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintf(out, "No results for %q\n", term)
		return nil
	}

	renderTable(out, []string{"TYPE", "ID", "TITLE", "ARTIST"}, rows)
	if resp.NextPage != nil && searchType != "" {
		fmt.Fprintf(out, "\nMore results: --page %d\n", *resp.NextPage)
	}
	return nil
}

// searchRows flattens the sections of a search response into table rows.
// Lyric hits are listed as songs.
func searchRows(resp *genius.SearchResponse) [][]string {
	var rows [][]string
	for _, section := range resp.Sections {
		for _, hit := range section.Hits {
			kind := hit.Type
			if kind == genius.KindLyric {
				kind = genius.KindSong
			}

			var title, artist string
			switch kind {
			case genius.KindSong:
				title = hit.Result.Title
				if hit.Result.PrimaryArtist != nil {
					artist = hit.Result.PrimaryArtist.Name
				}
			case genius.KindArtist:
				title = hit.Result.Name
			case genius.KindAlbum:
				title = hit.Result.Name
				if album, err := hit.Album(); err == nil && album.Artist != nil {
					artist = album.Artist.Name
				}
			default:
				continue
			}

			label := string(kind)
			if section.Type == genius.KindTopHit {
				label = "top " + label
			}
			rows = append(rows, []string{label, strconv.Itoa(hit.Result.ID), title, artist})
		}
	}
	return rows
}
