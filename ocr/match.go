package ocr

import (
	"strings"

	"github.com/tsawler/fieldsnap/model"
)

// Matcher aligns a field label to a contiguous run of recognized words.
type Matcher struct {
	// TokenCoverageMin is the minimum fraction of label tokens a sliding
	// window must cover to be a candidate.
	TokenCoverageMin float64

	// SimilarityMin is the minimum joined-substring similarity for a
	// window to be a candidate.
	SimilarityMin float64

	// SubstringWeight is the per-token weight of a containment match
	// (versus 1.0 for an exact token match).
	SubstringWeight float64
}

// NewMatcher creates a matcher with the default thresholds.
func NewMatcher() *Matcher {
	return &Matcher{
		TokenCoverageMin: 0.6,
		SimilarityMin:    0.7,
		SubstringWeight:  0.8,
	}
}

// candidate is one scored window of words.
type candidate struct {
	words []model.Word
	box   model.Box
	score float64
}

// Match finds the run of words that best spells out the label. The
// field's current box breaks ties by proximity: among similar textual
// matches, the one nearest the estimate wins. Returns nil when no window
// clears the thresholds; the caller treats that as "no evidence", not an
// error.
func (m *Matcher) Match(label string, words []model.Word, near model.Box) *model.LabelMatch {
	tokens := Tokens(label)
	if len(tokens) == 0 || len(words) == 0 {
		return nil
	}

	normalized := make([]string, len(words))
	for i, w := range words {
		normalized[i] = Normalize(w.Content)
	}

	var best *candidate
	consider := func(c candidate) {
		if best == nil || c.score > best.score {
			cc := c
			best = &cc
		}
	}

	for start := range words {
		if c, ok := m.tokenWindow(tokens, words, normalized, start, near); ok {
			consider(c)
		}
		m.similarityWindows(tokens, words, normalized, start, near, consider)
	}

	if best == nil {
		return nil
	}

	return &model.LabelMatch{
		Label:      label,
		Words:      best.words,
		Box:        best.box,
		Confidence: best.score,
	}
}

// tokenWindow greedily consumes words that match successive label tokens,
// starting at the given word index.
func (m *Matcher) tokenWindow(tokens []string, words []model.Word, normalized []string, start int, near model.Box) (candidate, bool) {
	var matched []model.Word
	weight := 0.0

	wi, ti := start, 0
	for ti < len(tokens) && wi < len(words) {
		w := normalized[wi]
		switch {
		case w == tokens[ti]:
			weight += 1
		case w != "" && (strings.Contains(w, tokens[ti]) || strings.Contains(tokens[ti], w)):
			weight += m.SubstringWeight
		default:
			ti = len(tokens) // run broken
			continue
		}
		matched = append(matched, words[wi])
		wi++
		ti++
	}

	coverage := weight / float64(len(tokens))
	if len(matched) == 0 || coverage < m.TokenCoverageMin {
		return candidate{}, false
	}

	box := wordsBox(matched)
	score := 0.6*coverage + 0.4*proximity(box, near)
	return candidate{words: matched, box: box, score: score}, true
}

// similarityWindows scores windows of increasing length by joined-string
// similarity against the label.
func (m *Matcher) similarityWindows(tokens []string, words []model.Word, normalized []string, start int, near model.Box, consider func(candidate)) {
	label := strings.Join(tokens, " ")
	maxLen := len(tokens) + 2

	var joined []string
	for length := 1; length <= maxLen && start+length <= len(words); length++ {
		joined = append(joined, normalized[start+length-1])

		sim := Similarity(strings.Join(joined, " "), label)
		if sim <= m.SimilarityMin {
			continue
		}

		window := words[start : start+length]
		box := wordsBox(window)
		score := 0.5*sim + 0.5*proximity(box, near)
		consider(candidate{words: window, box: box, score: score})
	}
}

// wordsBox returns the bounding box over a run of words.
func wordsBox(words []model.Word) model.Box {
	box := words[0].Box
	for _, w := range words[1:] {
		box = box.Union(w.Box)
	}
	return box
}

// proximity maps the distance between the candidate and the field centers
// to (0, 1]; adjacent candidates approach 1.
func proximity(candidateBox, fieldBox model.Box) float64 {
	return 1 / (1 + candidateBox.Center().Distance(fieldBox.Center()))
}
