package resolve

import (
	"fmt"

	"github.com/jfmyers9/verses/pkg/genius"
)

// Field selects the hit field compared against the search term.
type Field string

const (
	FieldTitle Field = "title" // songs
	FieldName  Field = "name"  // artists and albums
)

// MatchOptions tune Resolve.
type MatchOptions struct {
	// TakeFirst returns the first candidate without matching.
	TakeFirst bool

	// SkipNonSongs prefers lyrical songs when no hit matches exactly.
	SkipNonSongs bool

	// Classifier judges lyrical content. Required when SkipNonSongs is set.
	Classifier *Classifier
}

// Resolve picks the hit of the given kind that best answers term.
//
// Candidates are the top-hit section's hits of that kind followed by every
// other section's hits of that kind, the kind's own section first. The
// first candidate whose field equals term after normalization wins. Failing
// that, songs fall back to the first lyrical candidate when SkipNonSongs is
// set, and then every kind falls back to the first candidate. ErrNoResults
// is returned when there are no candidates.
func Resolve(resp *genius.SearchResponse, term string, kind genius.Kind, field Field, opts MatchOptions) (genius.Hit, error) {
	hits := Candidates(resp, kind)
	if len(hits) == 0 {
		return genius.Hit{}, fmt.Errorf("%w: no %s hits for %q", ErrNoResults, kind, term)
	}

	if opts.TakeFirst {
		return hits[0], nil
	}

	want := Normalize(term)
	for _, h := range hits {
		if Normalize(fieldValue(h, field)) == want {
			return h, nil
		}
	}

	if kind == genius.KindSong && opts.SkipNonSongs && opts.Classifier != nil {
		for _, h := range hits {
			if opts.Classifier.IsLyrics(h.Result.Title, h.Result.LyricsState, h.Result.Instrumental) {
				return h, nil
			}
		}
	}

	return hits[0], nil
}

// Candidates flattens the hits of one kind in resolution order.
func Candidates(resp *genius.SearchResponse, kind genius.Kind) []genius.Hit {
	if resp == nil {
		return nil
	}

	var hits []genius.Hit
	collect := func(match func(genius.Kind) bool) {
		for _, section := range resp.Sections {
			if !match(section.Type) {
				continue
			}
			for _, h := range section.Hits {
				if h.Type == kind {
					hits = append(hits, h)
				}
			}
		}
	}

	collect(func(k genius.Kind) bool { return k == genius.KindTopHit })
	collect(func(k genius.Kind) bool { return k == kind })
	collect(func(k genius.Kind) bool { return k != genius.KindTopHit && k != kind })

	return hits
}

func fieldValue(h genius.Hit, field Field) string {
	if field == FieldName {
		return h.Result.Name
	}
	return h.Result.Title
}
