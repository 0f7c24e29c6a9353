package llm

import (
	"context"
	"testing"

	"github.com/nlpodyssey/openai-agents-go/memory"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/internal/transcript"
)

func TestTurnToInputItem(t *testing.T) {
	tests := []struct {
		name     string
		turn     transcript.Turn
		expected bool
	}{
		{"user turn", transcript.NewTurn(transcript.SpeakerUser, "hello"), true},
		{"assistant turn", transcript.NewTurn(transcript.SpeakerAssistant, "hi there"), true},
		{"system turn", transcript.NewTurn(transcript.SpeakerSystem, "context"), true},
		{"tool turn skipped", transcript.NewTurn(transcript.SpeakerTool, "call"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, ok := turnToInputItem(tt.turn)
			require.Equal(t, tt.expected, ok)

			if ok {
				require.False(t, param.IsOmitted(item.OfMessage))
				assert.Equal(t, tt.turn.Content, item.OfMessage.Content.OfString.Value)
			}
		})
	}
}

func TestHistorySessionSeedsFromTurns(t *testing.T) {
	turns := []transcript.Turn{
		transcript.NewTurn(transcript.SpeakerUser, "my knee hurts"),
		transcript.NewTurn(transcript.SpeakerTool, "collect_patient_info"),
		transcript.NewTurn(transcript.SpeakerAssistant, "How long has it hurt?"),
	}

	sess := newHistorySession(roles.Triage, turns)

	items, err := sess.GetItems(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "my knee hurts", items[0].OfMessage.Content.OfString.Value)
	assert.Equal(t, "How long has it hurt?", items[1].OfMessage.Content.OfString.Value)
}

func TestHistorySessionGetItemsLimit(t *testing.T) {
	turns := []transcript.Turn{
		transcript.NewTurn(transcript.SpeakerUser, "one"),
		transcript.NewTurn(transcript.SpeakerAssistant, "two"),
		transcript.NewTurn(transcript.SpeakerUser, "three"),
	}

	sess := newHistorySession(roles.Support, turns)

	items, err := sess.GetItems(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "two", items[0].OfMessage.Content.OfString.Value)
	assert.Equal(t, "three", items[1].OfMessage.Content.OfString.Value)
}

func TestHistorySessionAddAndPop(t *testing.T) {
	sess := newHistorySession(roles.Billing, nil)

	item, ok := turnToInputItem(transcript.NewTurn(transcript.SpeakerUser, "do you take my insurance?"))
	require.True(t, ok)
	require.NoError(t, sess.AddItems(context.Background(), []memory.TResponseInputItem{item}))

	popped, err := sess.PopItem(context.Background())
	require.NoError(t, err)
	require.NotNil(t, popped)
	assert.Equal(t, "do you take my insurance?", popped.OfMessage.Content.OfString.Value)

	popped, err = sess.PopItem(context.Background())
	require.NoError(t, err)
	assert.Nil(t, popped)
}

func TestHistorySessionClear(t *testing.T) {
	turns := []transcript.Turn{transcript.NewTurn(transcript.SpeakerUser, "hello")}
	sess := newHistorySession(roles.Triage, turns)

	require.NoError(t, sess.ClearSession(context.Background()))

	items, err := sess.GetItems(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHistorySessionIDIncludesRole(t *testing.T) {
	sess := newHistorySession(roles.Notes, nil)
	assert.Contains(t, sess.SessionID(context.Background()), "notes-")
}
