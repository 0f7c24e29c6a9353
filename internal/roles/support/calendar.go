package support

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
)

const defaultHoldDuration = 30 * time.Minute

// writeAppointmentHold emits an iCalendar hold event for the requested slot
// so the scheduling team can import it when confirming the appointment.
func (sa *SupportAgent) writeAppointmentHold(apptType, date, timeOfDay string) (string, error) {
	start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+timeOfDay, time.Local)
	if err != nil {
		return "", fmt.Errorf("preferred slot %q %q does not parse: %w", date, timeOfDay, err)
	}

	dir := sa.config.GetWithDefault("APPOINTMENT_HOLDS_DIR", "patient_data/holds")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create holds directory: %w", err)
	}

	identifier := sa.binding.Session.Identifier()
	now := time.Now()

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)

	event := cal.AddEvent(uuid.New().String() + "@frontdesk")
	event.SetCreatedTime(now)
	event.SetDtStampTime(now)
	event.SetStartAt(start)
	event.SetEndAt(start.Add(defaultHoldDuration))
	event.SetSummary(fmt.Sprintf("HOLD: %s appointment for %s", apptType, identifier))
	event.SetDescription("Unconfirmed appointment request collected by the front-desk agent. Confirm with the patient before booking.")

	path := filepath.Join(dir, fmt.Sprintf("hold_%s.ics", now.Format("20060102_150405")))
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write appointment hold: %w", err)
	}
	return path, nil
}
