package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTermination(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		expected  bool
	}{
		{"plain goodbye", "goodbye", true},
		{"goodbye with punctuation", "Goodbye!", true},
		{"bye embedded in sentence", "thanks, bye", true},
		{"thats all mid sentence", "that's all for my symptoms", true},
		{"uppercase end call", "END CALL", true},
		{"im done without apostrophe", "ok im done now", true},
		{"nothing else", "no, nothing else today", true},
		{"hang up", "you can hang up now", true},
		{"ordinary question", "what are your office hours?", false},
		{"symptom description", "my knee has been hurting", false},
		{"empty utterance", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectTermination(tt.utterance))
		})
	}
}
