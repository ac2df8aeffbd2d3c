package resolve

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jfmyers9/verses/internal/catalog"
)

// DefaultExcludedTerms match titles of packaging and metadata pages
// rather than songs. Each entry is a regular expression fragment.
var DefaultExcludedTerms = []string{
	`track\s?list`,
	`album art(work)?`,
	`liner notes`,
	`booklet`,
	`credits`,
	`interview`,
	`skit`,
	`instrumental`,
	`setlist`,
}

// Classifier decides whether a search result is a song with lyrics.
type Classifier struct {
	terms   []string
	pattern *regexp.Regexp
}

// NewClassifier builds a classifier from extra excluded terms.
//
// The active term set is the defaults plus terms, or exactly terms when
// replace is set. An empty active set accepts every title.
func NewClassifier(terms []string, replace bool) (*Classifier, error) {
	var active []string
	if !replace {
		active = append(active, DefaultExcludedTerms...)
	}
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			active = append(active, t)
		}
	}

	c := &Classifier{terms: active}
	if len(active) == 0 {
		return c, nil
	}

	pattern, err := regexp.Compile(`(?i)(?:` + strings.Join(active, `)|(?:`) + `)`)
	if err != nil {
		return nil, fmt.Errorf("%w: excluded terms: %v", ErrInvalidArgument, err)
	}
	c.pattern = pattern
	return c, nil
}

// Terms returns the active excluded terms.
func (c *Classifier) Terms() []string {
	return append([]string(nil), c.terms...)
}

// IsLyrics reports whether a result is lyrical content.
//
// Results with incomplete lyrics, instrumentals, and titles matching an
// excluded term are rejected.
func (c *Classifier) IsLyrics(title, lyricsState string, instrumental bool) bool {
	if lyricsState != catalog.LyricsComplete || instrumental {
		return false
	}
	return !c.Excluded(title)
}

// Excluded reports whether the normalized title matches an excluded term.
func (c *Classifier) Excluded(title string) bool {
	if c.pattern == nil {
		return false
	}
	return c.pattern.MatchString(Normalize(title))
}
