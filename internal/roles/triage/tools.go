package triage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"github.com/vitalmesh/frontdesk/internal/roles"
)

// registerTools registers all triage tools
func (ta *TriageAgent) registerTools() {
	ta.agent.WithTools(
		ta.createCollectPatientInfoTool(),
		ta.createEmergencyEscalationTool(),
		ta.createSaveNotesTool(),
		roles.TransferTool(ta.binding, roles.Support,
			"transfer_to_support",
			"Transfer to patient support for appointments and general inquiries",
			"I'll connect you with our patient support team who can help with scheduling and medical services."),
		roles.TransferTool(ta.binding, roles.Billing,
			"transfer_to_billing",
			"Transfer to billing for insurance and payment questions",
			"I'll transfer you to our billing department who can assist with insurance and payment matters."),
		roles.EndConversationTool(ta.binding),
	)
}

/** ---- TOOL ARGUMENT STRUCTURES ---- **/

type CollectPatientInfoArgs struct {
	Name      string `json:"name"`
	Complaint string `json:"complaint"`
	Symptoms  string `json:"symptoms"` // comma-separated list
}

type EmergencyEscalationArgs struct {
	UrgencyLevel string `json:"urgency_level"`
}

/** ---- TOOL CREATORS ---- **/

// createCollectPatientInfoTool creates the patient intake tool
func (ta *TriageAgent) createCollectPatientInfoTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "collect_patient_info",
		Description: "Collect and store the patient's name, chief complaint, and symptoms",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{
					"type":        "string",
					"description": "The patient's full name",
				},
				"complaint": map[string]any{
					"type":        "string",
					"description": "The patient's chief complaint in their own words",
				},
				"symptoms": map[string]any{
					"type":        "string",
					"description": "Comma-separated list of reported symptoms",
				},
			},
			"additionalProperties": false,
			"required":             []string{"name", "complaint", "symptoms"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return ta.handleCollectPatientInfo(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

// createEmergencyEscalationTool creates the emergency escalation tool
func (ta *TriageAgent) createEmergencyEscalationTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "emergency_escalation",
		Description: "Handle emergency situations by assessing urgency",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"urgency_level": map[string]any{
					"type":        "string",
					"description": "Assessed urgency of the situation",
					"enum":        []string{"low", "medium", "high", "urgent", "emergency"},
				},
			},
			"additionalProperties": false,
			"required":             []string{"urgency_level"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return ta.handleEmergencyEscalation(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

// createSaveNotesTool creates the manual checkpoint tool
func (ta *TriageAgent) createSaveNotesTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:             "save_notes_now",
		Description:      "Save the session notes for the medical team right away",
		ParamsJSONSchema: emptySchema(),
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			if err := ta.binding.Records.Checkpoint(ctx, ta.binding.Session); err != nil {
				return nil, fmt.Errorf("failed to save session notes: %w", err)
			}
			return "Session notes have been saved for the medical team.", nil
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

/** ---- TOOL HANDLERS ---- **/

// handleCollectPatientInfo stores initial patient information on the session
func (ta *TriageAgent) handleCollectPatientInfo(ctx context.Context, arguments string) (string, error) {
	var args CollectPatientInfoArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid collect_patient_info arguments: %w", err)
	}

	sess := ta.binding.Session
	sess.Name = strings.TrimSpace(args.Name)
	sess.ChiefComplaint = strings.TrimSpace(args.Complaint)

	sess.Symptoms = sess.Symptoms[:0]
	for _, symptom := range strings.Split(args.Symptoms, ",") {
		if symptom = strings.TrimSpace(symptom); symptom != "" {
			sess.Symptoms = append(sess.Symptoms, symptom)
		}
	}

	sess.AddNote("Initial triage completed. Chief complaint: "+sess.ChiefComplaint, roles.Triage.String())

	return fmt.Sprintf("Recorded patient information for %s.", sess.Name), nil
}

// handleEmergencyEscalation notes the urgency and returns care guidance
func (ta *TriageAgent) handleEmergencyEscalation(ctx context.Context, arguments string) (string, error) {
	var args EmergencyEscalationArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid emergency_escalation arguments: %w", err)
	}

	level := strings.ToLower(strings.TrimSpace(args.UrgencyLevel))
	ta.binding.Session.AddNote("EMERGENCY ESCALATION: "+level, roles.Triage.String())

	switch level {
	case "high", "urgent", "emergency":
		return "This appears to be an urgent medical situation. Tell the patient to call 911 immediately or go to the nearest emergency room.", nil
	default:
		return "Recommend the patient schedules an appointment with their healthcare provider soon.", nil
	}
}

func emptySchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{},
		"additionalProperties": false,
		"required":             []string{},
	}
}
