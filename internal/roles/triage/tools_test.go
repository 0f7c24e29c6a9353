package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalmesh/frontdesk/internal/patient"
	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/internal/stores/records"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

func newTestAgent(t *testing.T) *TriageAgent {
	t.Helper()

	store, err := records.NewFileStore(t.TempDir())
	require.NoError(t, err)

	binding := &roles.Binding{
		Session: patient.NewSession(),
		Records: store,
	}
	return New(binding, utils.NewConfig(nil))
}

func TestHandleCollectPatientInfo(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		arguments string
		wantError bool
		check     func(t *testing.T, sess *patient.Session)
	}{
		{
			name:      "valid arguments",
			arguments: `{"name": "Sam", "complaint": "headache", "symptoms": "headache, nausea"}`,
			check: func(t *testing.T, sess *patient.Session) {
				assert.Equal(t, "Sam", sess.Name)
				assert.Equal(t, "headache", sess.ChiefComplaint)
				assert.Equal(t, []string{"headache", "nausea"}, sess.Symptoms)
			},
		},
		{
			name:      "symptoms with blanks and spacing",
			arguments: `{"name": "Jane Doe", "complaint": "sore throat", "symptoms": " sore throat ,, fever , "}`,
			check: func(t *testing.T, sess *patient.Session) {
				assert.Equal(t, []string{"sore throat", "fever"}, sess.Symptoms)
			},
		},
		{
			name:      "invalid JSON",
			arguments: `{"name": not json}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestAgent(t)

			_, err := ta.handleCollectPatientInfo(ctx, tt.arguments)
			if tt.wantError {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, ta.binding.Session.Notes)
			tt.check(t, ta.binding.Session)
		})
	}
}

func TestHandleEmergencyEscalation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		arguments  string
		wantUrgent bool
	}{
		{name: "high urgency", arguments: `{"urgency_level": "high"}`, wantUrgent: true},
		{name: "emergency", arguments: `{"urgency_level": "Emergency"}`, wantUrgent: true},
		{name: "low urgency", arguments: `{"urgency_level": "low"}`, wantUrgent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestAgent(t)

			guidance, err := ta.handleEmergencyEscalation(ctx, tt.arguments)
			require.NoError(t, err)

			if tt.wantUrgent {
				assert.Contains(t, guidance, "911")
			} else {
				assert.Contains(t, guidance, "appointment")
			}

			require.Len(t, ta.binding.Session.Notes, 1)
			assert.Contains(t, ta.binding.Session.Notes[0].Content, "EMERGENCY ESCALATION")
		})
	}
}

func TestAgentInstructionsIncludeSessionSummary(t *testing.T) {
	ta := newTestAgent(t)
	ta.binding.Session.Name = "Sam"
	ta.binding.Session.ChiefComplaint = "headache"

	// Instructions are rebuilt from live session state on every call
	instructions := ta.instructions()
	assert.Contains(t, instructions, "Patient: Sam")
	assert.Contains(t, instructions, "Chief Complaint: headache")
}
