package ocr

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes diacritical marks so "Prénom" and "Prenom" compare
// equal after normalization.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes text for matching: lowercase, diacritics
// stripped, punctuation removed except apostrophe, slash, and hyphen
// (which carry meaning in form labels), and whitespace collapsed.
func Normalize(s string) string {
	s = strings.ToLower(s)

	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '\'' || r == '/' || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			// Other punctuation separates tokens rather than vanishing,
			// so "Name:" and "Name" tokenize the same way.
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens normalizes the text and splits it into tokens.
func Tokens(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}

// Similarity computes a normalized Levenshtein similarity between two
// strings in [0, 1], where 1 means equal. Empty input on either side
// yields 0.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}

	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// Ratio computes the sequence-matcher similarity ratio between two
// strings in [0, 1]: edit distance with substitutions counted as a
// delete plus an insert, normalized by the summed lengths. This is the
// metric the evaluation harness scores label agreement with; it is more
// forgiving of transpositions than [Similarity].
func Ratio(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	lenSum := len(ra) + len(rb)

	// Indel distance via longest common subsequence.
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				cur[j] = prev[j-1] + 1
			} else if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	lcs := prev[len(rb)]

	dist := lenSum - 2*lcs
	return 1 - float64(dist)/float64(lenSum)
}
