package domain

import (
	"strings"
	"unicode/utf8"
)

// Relevance weights are named configuration: tuning them must not require
// touching the scoring logic.
const (
	// SubstringWeight scales the bonus for the query appearing verbatim in a
	// field, proportional to how much of the field it covers.
	SubstringWeight = 100.0
	// WordOverlapBonus is added once per query word found inside any word of
	// the field.
	WordOverlapBonus = 10.0
	// minOverlapWordLength keeps short stop-word-ish query words out of the
	// overlap bonus; only words longer than 2 characters count.
	minOverlapWordLength = 3
	// MinQueryLength is the request-level lower bound on a trimmed query.
	MinQueryLength = 2
)

// Score computes the relevance of a single text field against the query,
// case-insensitively: a substring bonus of SubstringWeight*len(query)/len(text)
// when the field contains the query verbatim, plus WordOverlapBonus for every
// query word longer than 2 characters that appears inside some field word.
func Score(query, text string) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	text = strings.ToLower(text)
	if query == "" || text == "" {
		return 0
	}

	var score float64
	if strings.Contains(text, query) {
		score += SubstringWeight * float64(len(query)) / float64(len(text))
	}

	textWords := strings.Fields(text)
	for _, word := range strings.Fields(query) {
		if utf8.RuneCountInString(word) < minOverlapWordLength {
			continue
		}
		for _, candidate := range textWords {
			if strings.Contains(candidate, word) {
				score += WordOverlapBonus
				break
			}
		}
	}
	return score
}

// ScoreFields sums Score over every scored field of one candidate.
func ScoreFields(query string, fields ...string) float64 {
	var total float64
	for _, field := range fields {
		total += Score(query, field)
	}
	return total
}
