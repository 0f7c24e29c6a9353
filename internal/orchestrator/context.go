package orchestrator

import "github.com/vitalmesh/frontdesk/internal/transcript"

// defaultKeepLast is how many of the previous role's most recent turns are
// considered for carrying across a transfer.
const defaultKeepLast = 6

// CarryContext extracts the bounded slice of the previous role's exchange
// history to inject into the next role's working context: at most keepLast
// of the most recent entries, conversational turns only, original order
// preserved, and any turn whose identity already exists in the target
// context dropped.
func CarryContext(previous, current []transcript.Turn, keepLast int) []transcript.Turn {
	if keepLast <= 0 {
		keepLast = defaultKeepLast
	}

	window := previous
	if len(window) > keepLast {
		window = window[len(window)-keepLast:]
	}

	existing := make(map[string]struct{}, len(current))
	for _, turn := range current {
		existing[turn.ID] = struct{}{}
	}

	var carried []transcript.Turn
	for _, turn := range window {
		if !turn.Conversational() {
			continue
		}
		if _, ok := existing[turn.ID]; ok {
			continue
		}
		carried = append(carried, turn)
	}
	return carried
}
