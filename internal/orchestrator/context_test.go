package orchestrator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalmesh/frontdesk/internal/transcript"
)

func exchange(n int) []transcript.Turn {
	turns := make([]transcript.Turn, 0, n)
	for i := 0; i < n; i++ {
		speaker := transcript.SpeakerUser
		if i%2 == 1 {
			speaker = transcript.SpeakerAssistant
		}
		turns = append(turns, transcript.NewTurn(speaker, fmt.Sprintf("turn %d", i)))
	}
	return turns
}

func TestCarryContextBoundedWindow(t *testing.T) {
	previous := exchange(20)

	carried := CarryContext(previous, nil, 6)

	require.Len(t, carried, 6)
	assert.Equal(t, "turn 14", carried[0].Content)
	assert.Equal(t, "turn 19", carried[5].Content)
}

func TestCarryContextShortHistory(t *testing.T) {
	previous := exchange(3)

	carried := CarryContext(previous, nil, 6)

	require.Len(t, carried, 3)
	assert.Equal(t, "turn 0", carried[0].Content)
}

func TestCarryContextFiltersNonConversational(t *testing.T) {
	previous := []transcript.Turn{
		transcript.NewTurn(transcript.SpeakerUser, "my name is Alice"),
		transcript.NewTurn(transcript.SpeakerTool, "collect_patient_info({...})"),
		transcript.NewTurn(transcript.SpeakerAssistant, "Thanks Alice"),
		transcript.NewTurn(transcript.SpeakerSystem, "context updated"),
	}

	carried := CarryContext(previous, nil, 6)

	require.Len(t, carried, 2)
	assert.Equal(t, transcript.SpeakerUser, carried[0].Speaker)
	assert.Equal(t, transcript.SpeakerAssistant, carried[1].Speaker)
}

func TestCarryContextDeduplicatesByID(t *testing.T) {
	shared := transcript.NewTurn(transcript.SpeakerUser, "already carried once")
	previous := []transcript.Turn{
		shared,
		transcript.NewTurn(transcript.SpeakerAssistant, "new reply"),
	}
	current := []transcript.Turn{shared}

	carried := CarryContext(previous, current, 6)

	require.Len(t, carried, 1)
	assert.Equal(t, "new reply", carried[0].Content)
}

func TestCarryContextPreservesOrder(t *testing.T) {
	previous := exchange(6)

	carried := CarryContext(previous, nil, 6)

	require.Len(t, carried, 6)
	for i := range carried {
		assert.Equal(t, fmt.Sprintf("turn %d", i), carried[i].Content)
	}
}

func TestCarryContextEmptyPrevious(t *testing.T) {
	assert.Empty(t, CarryContext(nil, nil, 6))
}
