// Package transcript models a role's working exchange history as an ordered
// list of identity-tagged turns. Turn identities are what context transfer
// deduplicates on when history is carried between roles.
package transcript

import (
	"time"

	"github.com/google/uuid"
)

// Speaker identifies who authored a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
	SpeakerSystem    Speaker = "system"
	SpeakerTool      Speaker = "tool"
)

// Turn is a single entry in a role's working context.
type Turn struct {
	ID      string
	Speaker Speaker
	Content string
	At      time.Time
}

// NewTurn creates a turn with a fresh identity, timestamped now.
func NewTurn(speaker Speaker, content string) Turn {
	return Turn{
		ID:      uuid.New().String(),
		Speaker: speaker,
		Content: content,
		At:      time.Now(),
	}
}

// Conversational reports whether the turn is a conversational exchange
// (authored by the end user or the assistant) rather than a system or
// tool-call entry. Only conversational turns survive context transfer.
func (t Turn) Conversational() bool {
	return t.Speaker == SpeakerUser || t.Speaker == SpeakerAssistant
}
