package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize reduces s to the form used for matching: compatibility
// normalized, punctuation and symbols removed, whitespace collapsed and
// case folded.
//
//	Normalize("  Don't  Stop Me Now! ") == "dont stop me now"
func Normalize(s string) string {
	s = norm.NFKC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\u200b':
			b.WriteRune(' ')
		case unicode.IsPunct(r), unicode.IsSymbol(r):
		default:
			b.WriteRune(r)
		}
	}

	// Casers are stateful, so one is built per call.
	return cases.Fold().String(strings.Join(strings.Fields(b.String()), " "))
}
