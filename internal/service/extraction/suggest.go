package extraction

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// suggestThreshold is the minimum Jaro-Winkler similarity between a message
// token and an item alias for a "did you mean" suggestion.
const suggestThreshold = 0.80

// Suggest returns the canonical item whose alias is closest to any token of
// text by Jaro-Winkler similarity, when that similarity clears the threshold.
// It runs only when Extract recognized nothing, to soften the echo reply with
// a guess; it never feeds the ledger.
func (e *Extractor) Suggest(text string) (string, bool) {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return "", false
	}

	best := ""
	bestScore := 0.0

	for _, tok := range tokens {
		if _, ok := parseNumeric(tok); ok {
			continue
		}
		for _, item := range e.items {
			for _, alias := range item.Aliases {
				score := matchr.JaroWinkler(tok, strings.ToLower(alias), false)
				if score >= suggestThreshold && score > bestScore {
					best = item.Canonical
					bestScore = score
				}
			}
		}
	}

	return best, best != ""
}
