package genius

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LyricsService scrapes lyrics text from rendered song pages. The API
// itself never returns lyrics.
type LyricsService struct {
	client *Client
}

const (
	lyricsContainerSelector = `div[data-lyrics-container="true"]`
	excludedChromeSelector  = `[data-exclude-from-selection="true"]`
)

var (
	sectionHeaderPattern = regexp.MustCompile(`\[[^\]\n]*\]`)
	blankLinesPattern    = regexp.MustCompile(`\n{2,}`)
)

// Fetch downloads the song page at pageURL and returns its lyrics text.
//
// Returns an empty string (no error) when the page has no lyrics block or
// does not exist. Transport failures are returned as errors.
//
// Example:
//
//	text, err := client.Lyrics().Fetch(ctx, song.URL)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if text == "" {
//	    fmt.Println("no lyrics on page")
//	}
func (s *LyricsService) Fetch(ctx context.Context, pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil || !u.IsAbs() {
		return "", fmt.Errorf("%w: lyrics page URL must be absolute, got %q", ErrInvalidArgument, pageURL)
	}

	body, err := s.client.do(ctx, request{
		method: http.MethodGet,
		url:    u.String(),
		accept: "text/html",
	})
	if err != nil {
		if IsNotFound(err) {
			s.client.logDebugf("genius: lyrics page %s not found", pageURL)
			return "", nil
		}
		return "", err
	}

	return ExtractLyrics(body, s.client.removeSectionHeaders)
}

// ExtractLyrics pulls the lyrics text out of a song page's HTML.
//
// Every lyrics container is converted to plain text with <br> turned into
// line breaks; containers are separated by a blank line. Returns "" when the page
// has no lyrics container.
func ExtractLyrics(html []byte, removeSectionHeaders bool) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse lyrics page: %w", err)
	}

	containers := doc.Find(lyricsContainerSelector)
	if containers.Length() == 0 {
		return "", nil
	}

	parts := make([]string, 0, containers.Length())
	containers.Each(func(_ int, sel *goquery.Selection) {
		sel.Find(excludedChromeSelector).Remove()
		sel.Find("br").ReplaceWithHtml("\n")
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	lyrics := strings.Join(parts, "\n\n")
	if removeSectionHeaders {
		lyrics = sectionHeaderPattern.ReplaceAllString(lyrics, "")
		lyrics = blankLinesPattern.ReplaceAllString(lyrics, "\n")
	}

	return strings.TrimSpace(lyrics), nil
}
