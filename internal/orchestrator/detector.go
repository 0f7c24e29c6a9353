package orchestrator

import "strings"

// endPhrases is the fixed set of conversation-ending expressions.
// Matching is a case-insensitive substring check, so a phrase like
// "that's all for my symptoms" also ends the call.
var endPhrases = []string{
	"goodbye",
	"good bye",
	"bye",
	"that's all",
	"that is all",
	"end call",
	"end the call",
	"i'm done",
	"im done",
	"i am done",
	"no more questions",
	"nothing else",
	"hang up",
}

// DetectTermination reports whether an utterance expresses
// conversation-ending intent. Stateless; evaluated on every utterance in
// every role while the session is not yet terminated.
func DetectTermination(utterance string) bool {
	lowered := strings.ToLower(utterance)
	for _, phrase := range endPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
