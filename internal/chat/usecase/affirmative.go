package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// affirmatives is the closed set of agreement phrases that confirm a pending
// stock adjustment. Matching is whole-message, case- and diacritic-
// insensitive, so "Sí!" and "si" both confirm.
var affirmatives = map[string]struct{}{
	"yes":          {},
	"yeah":         {},
	"yep":          {},
	"yup":          {},
	"sure":         {},
	"ok":           {},
	"okay":         {},
	"of course":    {},
	"go ahead":     {},
	"do it":        {},
	"confirm":      {},
	"confirmed":    {},
	"sounds good":  {},
	"that's fine":  {},
	"si":           {},
	"claro":        {},
	"dale":         {},
	"de acuerdo":   {},
	"esta bien":    {},
	"por supuesto": {},
}

var diacriticStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// isAffirmative reports whether text, as a whole message, is an agreement
// phrase. Substring matches are deliberately not accepted: "yes, but make it
// two" must re-enter classification, not auto-confirm.
func isAffirmative(text string) bool {
	folded, _, err := transform.String(diacriticStripper, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	folded = strings.TrimRight(folded, ".!?")
	folded = strings.TrimSpace(folded)

	_, ok := affirmatives[folded]
	return ok
}
