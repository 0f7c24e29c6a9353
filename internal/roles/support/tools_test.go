package support

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalmesh/frontdesk/internal/patient"
	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

func newTestAgent(t *testing.T) *SupportAgent {
	t.Helper()

	cfg := utils.NewConfig(map[string]string{
		"APPOINTMENT_HOLDS_DIR": t.TempDir(),
	})
	binding := &roles.Binding{Session: patient.NewSession()}
	return New(binding, cfg)
}

func TestHandleScheduleAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request writes hold", func(t *testing.T) {
		sa := newTestAgent(t)

		result, err := sa.handleScheduleAppointment(ctx, `{
			"appointment_type": "general checkup",
			"preferred_date": "2026-09-15",
			"preferred_time": "14:00"
		}`)
		require.NoError(t, err)
		assert.Contains(t, result, "general checkup")

		sess := sa.binding.Session
		assert.Equal(t, "general checkup", sess.AppointmentType)
		require.Len(t, sess.Notes, 1)
		assert.Contains(t, sess.Notes[0].Content, "Appointment requested")

		holds, err := filepath.Glob(filepath.Join(sa.config.Get("APPOINTMENT_HOLDS_DIR"), "*.ics"))
		require.NoError(t, err)
		assert.Len(t, holds, 1)
	})

	t.Run("unparseable slot still records the request", func(t *testing.T) {
		sa := newTestAgent(t)

		_, err := sa.handleScheduleAppointment(ctx, `{
			"appointment_type": "follow-up",
			"preferred_date": "next tuesday",
			"preferred_time": "afternoon"
		}`)
		require.NoError(t, err)

		assert.Equal(t, "follow-up", sa.binding.Session.AppointmentType)

		holds, err := filepath.Glob(filepath.Join(sa.config.Get("APPOINTMENT_HOLDS_DIR"), "*.ics"))
		require.NoError(t, err)
		assert.Empty(t, holds)
	})

	t.Run("empty appointment type rejected", func(t *testing.T) {
		sa := newTestAgent(t)

		_, err := sa.handleScheduleAppointment(ctx, `{
			"appointment_type": " ",
			"preferred_date": "2026-09-15",
			"preferred_time": "14:00"
		}`)
		assert.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		sa := newTestAgent(t)

		_, err := sa.handleScheduleAppointment(ctx, `{"appointment_type": }`)
		assert.Error(t, err)
	})
}

func TestWriteAppointmentHoldContents(t *testing.T) {
	sa := newTestAgent(t)
	sa.binding.Session.Name = "Jane Doe"

	path, err := sa.writeAppointmentHold("general checkup", "2026-09-15", "09:30")
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "BEGIN:VCALENDAR")
	assert.Contains(t, string(content), "BEGIN:VEVENT")
	assert.Contains(t, string(content), "Jane Doe")
}
