// Package extraction turns noisy, multi-script message text into a structured
// sale record. The input has usually been through speech-to-text or OCR, so
// the extractor tolerates transliteration drift and garbled tokens: item
// aliases match by substring containment, and quantity falls back to the
// first bare digit token when no "<number> <unit>" pair is present.
//
// Extract is fail-open by contract: it never returns an error, it returns an
// Extraction with all fields absent. The caller treats "nothing found" and
// "could not parse" identically.
package extraction

import (
	"strings"

	"github.com/tahmidrayat/dukandost/internal/domain/models"
	"github.com/tahmidrayat/dukandost/internal/vocab"
)

// Extractor scans message text against a fixed vocabulary. It is read-only
// after construction and safe for concurrent use.
type Extractor struct {
	items      []vocab.Item
	units      map[string]struct{}
	currencies map[string]struct{}
}

// New builds an Extractor from the given vocabulary. The vocabulary should
// already have passed vocab.Validate; item and alias order is preserved
// because the first match wins.
func New(v vocab.Vocabulary) *Extractor {
	e := &Extractor{
		items:      v.Items,
		units:      make(map[string]struct{}, len(v.UnitKeywords)),
		currencies: make(map[string]struct{}, len(v.CurrencyKeywords)),
	}
	for _, u := range v.UnitKeywords {
		e.units[u] = struct{}{}
	}
	for _, c := range v.CurrencyKeywords {
		e.currencies[c] = struct{}{}
	}
	return e
}

// Extract parses one message text into an Extraction. Pure function: the same
// input always yields the same result.
//
// The scan is a single pass over whitespace-split tokens with one token of
// lookback:
//
//   - item: first token containing any known alias, in vocabulary order;
//     only one item is ever recorded per message.
//   - quantity: the numeric token immediately before the first unit keyword;
//     when no such pair exists anywhere in the message, the first bare
//     numeric token.
//   - price: the numeric token immediately before the first currency keyword.
//
// If a quantity was found but no item, a single salvage attempt inspects the
// token following the first occurrence of the quantity's digit literal and
// accepts it when it loosely matches an item alias. When the same digit
// string appears more than once the first occurrence is used; that is a
// documented weak point, not a guarantee worth relying on.
func (e *Extractor) Extract(text string) models.Extraction {
	var result models.Extraction

	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return result
	}

	var (
		quantity     *int
		price        *int
		firstNumeric *int
	)

	for i, tok := range tokens {
		if result.Item == "" {
			if canonical, ok := e.matchItem(tok); ok {
				result.Item = canonical
			}
		}

		if n, ok := parseNumeric(tok); ok && firstNumeric == nil {
			v := n
			firstNumeric = &v
		}

		if i == 0 {
			continue
		}

		if quantity == nil {
			if _, isUnit := e.units[tok]; isUnit {
				if n, ok := parseNumeric(tokens[i-1]); ok {
					v := n
					quantity = &v
				}
			}
		}

		if price == nil {
			if _, isCurrency := e.currencies[tok]; isCurrency {
				if n, ok := parseNumeric(tokens[i-1]); ok {
					v := n
					price = &v
				}
			}
		}
	}

	if quantity == nil {
		quantity = firstNumeric
	}
	result.Quantity = quantity
	result.Price = price

	if result.Item == "" && result.Quantity != nil {
		result.Item = e.recoverItem(tokens, *result.Quantity)
	}

	return result
}

// matchItem tests tok against every alias of every item in vocabulary order.
// Aliases match by containment: an OCR token like "chalx" still counts as
// "chal". The flip side, an alias hiding inside an unrelated word, is a known
// false positive of this scheme.
func (e *Extractor) matchItem(tok string) (string, bool) {
	for _, item := range e.items {
		for _, alias := range item.Aliases {
			if strings.Contains(tok, alias) {
				return item.Canonical, true
			}
		}
	}
	return "", false
}

// recoverItem is the salvage pass: locate the first token whose numeric value
// equals the extracted quantity and test the token after it against the alias
// sets, loosely in both directions so a truncated stem like "cha" still maps
// to "chal".
func (e *Extractor) recoverItem(tokens []string, quantity int) string {
	for i, tok := range tokens {
		n, ok := parseNumeric(tok)
		if !ok || n != quantity {
			continue
		}
		if i+1 >= len(tokens) {
			return ""
		}
		next := strings.ToLower(tokens[i+1])
		for _, item := range e.items {
			for _, alias := range item.Aliases {
				lowered := strings.ToLower(alias)
				if strings.Contains(next, lowered) || strings.Contains(lowered, next) {
					return item.Canonical
				}
			}
		}
		// First occurrence only; a later duplicate of the digit is ignored.
		return ""
	}
	return ""
}

const maxNumeric = 1_000_000_000

// parseNumeric parses a purely-numeric token as a non-negative decimal
// integer. Both ASCII and Bengali digits are accepted, since shopkeepers type
// either script. No signs, separators or decimals.
func parseNumeric(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}

	n := 0
	for _, r := range tok {
		var d int
		switch {
		case r >= '0' && r <= '9':
			d = int(r - '0')
		case r >= '০' && r <= '৯':
			d = int(r - '০')
		default:
			return 0, false
		}
		n = n*10 + d
		if n > maxNumeric {
			return 0, false
		}
	}
	return n, true
}
