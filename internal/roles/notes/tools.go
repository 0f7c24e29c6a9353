package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/internal/stores/records"
)

// registerTools registers all documentation tools
func (na *NotesAgent) registerTools() {
	na.agent.WithTools(
		na.createSaveSessionNotesTool(),
		na.createLoadPreviousNotesTool(),
		roles.TransferTool(na.binding, roles.Triage,
			"transfer_to_triage",
			"Transfer back to triage",
			"Returning you to our triage team."),
		roles.EndConversationTool(na.binding),
	)
}

/** ---- TOOL ARGUMENT STRUCTURES ---- **/

type LoadPreviousNotesArgs struct {
	PatientName string `json:"patient_name"`
}

/** ---- TOOL CREATORS ---- **/

// createSaveSessionNotesTool creates the documentation checkpoint tool
func (na *NotesAgent) createSaveSessionNotesTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "save_session_notes",
		Description: "Save the current session notes to the patient's record",
		ParamsJSONSchema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
			"required":             []string{},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return na.handleSaveSessionNotes(ctx)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

// createLoadPreviousNotesTool creates the record retrieval tool
func (na *NotesAgent) createLoadPreviousNotesTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "load_previous_notes",
		Description: "Load a returning patient's previous session notes",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"patient_name": map[string]any{
					"type":        "string",
					"description": "Name the previous notes were stored under",
				},
			},
			"additionalProperties": false,
			"required":             []string{"patient_name"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return na.handleLoadPreviousNotes(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

/** ---- TOOL HANDLERS ---- **/

// handleSaveSessionNotes checkpoints the session and notes that it happened
func (na *NotesAgent) handleSaveSessionNotes(ctx context.Context) (string, error) {
	sess := na.binding.Session
	if err := na.binding.Records.Checkpoint(ctx, sess); err != nil {
		return "", fmt.Errorf("failed to save session notes: %w", err)
	}

	sess.AddNote("Session notes saved to patient record", roles.Notes.String())
	return "All session notes have been saved and documented for the healthcare team.", nil
}

// handleLoadPreviousNotes summarizes the stored record for a returning patient
func (na *NotesAgent) handleLoadPreviousNotes(ctx context.Context, arguments string) (string, error) {
	var args LoadPreviousNotesArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid load_previous_notes arguments: %w", err)
	}

	name := strings.TrimSpace(args.PatientName)
	if name == "" {
		return "", fmt.Errorf("patient_name must not be empty")
	}

	record, err := na.binding.Records.Load(ctx, name)
	if err != nil {
		if errors.Is(err, records.ErrRecordNotFound) {
			return fmt.Sprintf("No previous notes found for %s.", name), nil
		}
		return "", fmt.Errorf("failed to load previous notes: %w", err)
	}

	na.binding.Session.AddNote("Loaded previous notes for "+name, roles.Notes.String())
	return summarizeRecord(name, record), nil
}

// summarizeRecord builds a short description of a stored record for the
// role to relay to the patient
func summarizeRecord(name string, record *records.PatientRecord) string {
	summary := fmt.Sprintf("Found %d previous session(s) for %s, last updated %s.",
		record.TotalSessions, name, record.LastUpdated.Format("2006-01-02"))

	if len(record.Sessions) > 0 {
		last := record.Sessions[len(record.Sessions)-1]
		if last.ChiefComplaint != nil {
			summary += " Most recent chief complaint: " + *last.ChiefComplaint + "."
		}
		if len(last.Symptoms) > 0 {
			summary += " Reported symptoms: " + strings.Join(last.Symptoms, ", ") + "."
		}
	}
	return summary
}
