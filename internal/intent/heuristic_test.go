package intent

import "testing"

func TestApplyHeuristicOverride(t *testing.T) {
	tests := []struct {
		name       string
		classified Intent
		text       string
		want       Intent
	}{
		{"Short Imperative Follow-Up", IntentFallback, "add 2 more", IntentUpdateCart},
		{"Number Word", IntentFallback, "remove two of them", IntentUpdateCart},
		{"Verb Without Quantity", IntentFallback, "add some more", IntentFallback},
		{"Quantity Without Verb", IntentFallback, "2 please", IntentFallback},
		{"Greeting Untouched", IntentFallback, "hello there", IntentFallback},
		{"Non-Fallback Never Overridden", IntentCreateCart, "add 2 coffees", IntentCreateCart},
		{"Case Insensitive", IntentFallback, "ADD 3", IntentUpdateCart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyHeuristicOverride(tt.classified, tt.text); got != tt.want {
				t.Errorf("ApplyHeuristicOverride(%q, %q) = %q, want %q", tt.classified, tt.text, got, tt.want)
			}
		})
	}
}
