package support

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"github.com/vitalmesh/frontdesk/internal/roles"
)

// registerTools registers all patient support tools
func (sa *SupportAgent) registerTools() {
	sa.agent.WithTools(
		sa.createScheduleAppointmentTool(),
		roles.TransferTool(sa.binding, roles.Billing,
			"transfer_to_billing",
			"Transfer to billing for insurance questions",
			"Let me connect you with our billing team for insurance and payment assistance."),
		roles.TransferTool(sa.binding, roles.Triage,
			"transfer_to_triage",
			"Transfer back to triage if medical assessment is needed",
			"Let me connect you back with our triage team for medical assessment."),
		roles.EndConversationTool(sa.binding),
	)
}

/** ---- TOOL ARGUMENT STRUCTURES ---- **/

type ScheduleAppointmentArgs struct {
	AppointmentType string `json:"appointment_type"`
	PreferredDate   string `json:"preferred_date"` // YYYY-MM-DD format
	PreferredTime   string `json:"preferred_time"` // HH:MM 24-hour format
}

/** ---- TOOL CREATORS ---- **/

// createScheduleAppointmentTool creates the appointment request tool
func (sa *SupportAgent) createScheduleAppointmentTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "schedule_appointment",
		Description: "Record an appointment request for the scheduling team to confirm",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"appointment_type": map[string]any{
					"type":        "string",
					"description": "Kind of appointment the patient is asking for",
				},
				"preferred_date": map[string]any{
					"type":        "string",
					"description": "Preferred date in YYYY-MM-DD format",
				},
				"preferred_time": map[string]any{
					"type":        "string",
					"description": "Preferred time in HH:MM 24-hour format",
				},
			},
			"additionalProperties": false,
			"required":             []string{"appointment_type", "preferred_date", "preferred_time"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return sa.handleScheduleAppointment(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

/** ---- TOOL HANDLERS ---- **/

// handleScheduleAppointment records the request on the session and drops an
// iCalendar hold for the scheduling team when the slot parses
func (sa *SupportAgent) handleScheduleAppointment(ctx context.Context, arguments string) (string, error) {
	var args ScheduleAppointmentArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid schedule_appointment arguments: %w", err)
	}

	apptType := strings.TrimSpace(args.AppointmentType)
	if apptType == "" {
		return "", fmt.Errorf("appointment_type must not be empty")
	}

	sess := sa.binding.Session
	sess.AppointmentType = apptType
	sess.AddNote(fmt.Sprintf("Appointment requested: %s on %s at %s",
		apptType, args.PreferredDate, args.PreferredTime), roles.Support.String())

	// The hold artifact is best effort; an unparseable slot only skips it
	if path, err := sa.writeAppointmentHold(apptType, args.PreferredDate, args.PreferredTime); err != nil {
		log.Printf("[SUPPORT]: Skipping appointment hold: %v", err)
	} else {
		log.Printf("[SUPPORT]: Wrote appointment hold to %s", path)
	}

	return fmt.Sprintf("Noted the request for a %s appointment on %s at %s. The scheduling team will contact the patient to confirm.",
		apptType, args.PreferredDate, args.PreferredTime), nil
}
