// Package vocab defines the vocabulary that drives the transaction parser:
// the known shop items with their recognized aliases, plus the weight-unit and
// currency keyword sets. The vocabulary is data, not code — it can be replaced
// with a YAML file so the parser is testable against synthetic word lists.
//
// Ordering is significant. Items and their aliases are matched in declaration
// order and the first match wins. Because alias matching is substring based,
// an alias of one item that is contained in an alias of another item would
// make the outcome depend on declaration order alone; Validate rejects such
// vocabularies instead of silently picking a winner.
package vocab

import (
	"errors"
	"fmt"
	"strings"
)

// Item is one sellable product: the canonical name the rest of the system
// uses, and the substrings that identify it in noisy message text. Aliases
// should cover the Bengali spelling, common Latin transliterations and the
// OCR-garbled stems actually seen in the field.
type Item struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

// Vocabulary is the full keyword set for one deployment.
type Vocabulary struct {
	Items []Item `yaml:"items"`
	// UnitKeywords are matched as whole tokens, case- and script-sensitive.
	UnitKeywords     []string `yaml:"unit_keywords"`
	CurrencyKeywords []string `yaml:"currency_keywords"`
}

// Default returns the built-in vocabulary for a Bengali grocery shop.
// Canonical names use the Latin transliteration because they double as ledger
// keys and WhatsApp reply text.
func Default() Vocabulary {
	return Vocabulary{
		Items: []Item{
			{Canonical: "chal", Aliases: []string{"চাল", "chal", "chaal", "rice"}},
			{Canonical: "dal", Aliases: []string{"ডাল", "dal", "daal"}},
			{Canonical: "tel", Aliases: []string{"তেল", "tel", "oil"}},
			{Canonical: "chini", Aliases: []string{"চিনি", "chini", "sugar"}},
			{Canonical: "lobon", Aliases: []string{"লবণ", "lobon", "salt"}},
			{Canonical: "atta", Aliases: []string{"আটা", "atta", "flour"}},
		},
		UnitKeywords:     []string{"কেজি", "keji", "kg"},
		CurrencyKeywords: []string{"টাকা", "taka", "tk"},
	}
}

// Validate checks the vocabulary for the shapes that break first-match-wins
// parsing: empty canonicals or aliases, duplicate canonicals, and cross-item
// alias nesting (one item's alias appearing as a substring of another's).
func Validate(v Vocabulary) error {
	if len(v.Items) == 0 {
		return errors.New("vocab: at least one item is required")
	}

	var errs []error
	seen := make(map[string]struct{}, len(v.Items))

	for _, item := range v.Items {
		if strings.TrimSpace(item.Canonical) == "" {
			errs = append(errs, errors.New("vocab: item with empty canonical name"))
			continue
		}
		if _, dup := seen[item.Canonical]; dup {
			errs = append(errs, fmt.Errorf("vocab: duplicate canonical name %q", item.Canonical))
		}
		seen[item.Canonical] = struct{}{}

		if len(item.Aliases) == 0 {
			errs = append(errs, fmt.Errorf("vocab: item %q has no aliases", item.Canonical))
		}
		for _, alias := range item.Aliases {
			if strings.TrimSpace(alias) == "" {
				errs = append(errs, fmt.Errorf("vocab: item %q has an empty alias", item.Canonical))
			}
		}
	}

	for i, a := range v.Items {
		for j, b := range v.Items {
			if i == j {
				continue
			}
			for _, aliasA := range a.Aliases {
				for _, aliasB := range b.Aliases {
					if aliasA != "" && strings.Contains(aliasB, aliasA) {
						errs = append(errs, fmt.Errorf(
							"vocab: alias %q of %q is contained in alias %q of %q, match order would be ambiguous",
							aliasA, a.Canonical, aliasB, b.Canonical))
					}
				}
			}
		}
	}

	if len(v.UnitKeywords) == 0 {
		errs = append(errs, errors.New("vocab: at least one unit keyword is required"))
	}
	if len(v.CurrencyKeywords) == 0 {
		errs = append(errs, errors.New("vocab: at least one currency keyword is required"))
	}

	return errors.Join(errs...)
}

// Canonicals returns the canonical item names in declaration order.
func (v Vocabulary) Canonicals() []string {
	names := make([]string, 0, len(v.Items))
	for _, item := range v.Items {
		names = append(names, item.Canonical)
	}
	return names
}
