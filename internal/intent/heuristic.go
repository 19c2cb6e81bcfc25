package intent

import "regexp"

// The classifier under-detects short imperative follow-ups such as "add two
// more" in an ongoing conversation. This second pass forces update_cart when
// a fallback classification still carries an action verb plus a quantity.
var (
	actionVerbRe = regexp.MustCompile(`(?i)\b(add|put|change|update|set|make|remove|delete|drop|take|increase|decrease)\b`)
	numeralRe    = regexp.MustCompile(`(?i)(\b\d+\b|\b(one|two|three|four|five|six|seven|eight|nine|ten)\b)`)
)

// ApplyHeuristicOverride returns the possibly-overridden intent for the raw
// user text. Pure function, layered after classification, never inlined
// into it.
func ApplyHeuristicOverride(classified Intent, text string) Intent {
	if classified != IntentFallback {
		return classified
	}
	if actionVerbRe.MatchString(text) && numeralRe.MatchString(text) {
		return IntentUpdateCart
	}
	return classified
}
