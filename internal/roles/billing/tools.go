package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"github.com/vitalmesh/frontdesk/internal/roles"
)

// registerTools registers all billing tools
func (ba *BillingAgent) registerTools() {
	ba.agent.WithTools(
		ba.createCollectInsuranceInfoTool(),
		ba.createAddBillingQuestionTool(),
		roles.TransferTool(ba.binding, roles.Support,
			"transfer_to_support",
			"Transfer to patient support for appointment scheduling",
			"Let me connect you with patient support to help with scheduling."),
		roles.TransferTool(ba.binding, roles.Triage,
			"transfer_to_triage",
			"Transfer to triage for medical questions",
			"Let me connect you with our triage team for medical concerns."),
		roles.EndConversationTool(ba.binding),
	)
}

/** ---- TOOL ARGUMENT STRUCTURES ---- **/

type CollectInsuranceInfoArgs struct {
	InsuranceProvider string `json:"insurance_provider"`
	MemberID          string `json:"member_id"`
	GroupNumber       string `json:"group_number"`
}

type AddBillingQuestionArgs struct {
	Question string `json:"question"`
}

/** ---- TOOL CREATORS ---- **/

// createCollectInsuranceInfoTool creates the insurance intake tool
func (ba *BillingAgent) createCollectInsuranceInfoTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "collect_insurance_info",
		Description: "Collect and store the patient's insurance information",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"insurance_provider": map[string]any{
					"type":        "string",
					"description": "Name of the insurance provider",
				},
				"member_id": map[string]any{
					"type":        "string",
					"description": "Member identifier on the insurance card",
				},
				"group_number": map[string]any{
					"type":        "string",
					"description": "Group number on the insurance card",
				},
			},
			"additionalProperties": false,
			"required":             []string{"insurance_provider", "member_id", "group_number"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return ba.handleCollectInsuranceInfo(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

// createAddBillingQuestionTool creates the follow-up question tool
func (ba *BillingAgent) createAddBillingQuestionTool() agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "add_billing_question",
		Description: "Log a billing question for the billing team to follow up on",
		ParamsJSONSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The patient's billing question",
				},
			},
			"additionalProperties": false,
			"required":             []string{"question"},
		},
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			return ba.handleAddBillingQuestion(ctx, arguments)
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

/** ---- TOOL HANDLERS ---- **/

// handleCollectInsuranceInfo stores insurance details on the session
func (ba *BillingAgent) handleCollectInsuranceInfo(ctx context.Context, arguments string) (string, error) {
	var args CollectInsuranceInfoArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid collect_insurance_info arguments: %w", err)
	}

	sess := ba.binding.Session
	sess.InsuranceInfo = fmt.Sprintf("Provider: %s, Member ID: %s, Group: %s",
		strings.TrimSpace(args.InsuranceProvider),
		strings.TrimSpace(args.MemberID),
		strings.TrimSpace(args.GroupNumber))
	sess.AddNote("Insurance information collected: "+sess.InsuranceInfo, roles.Billing.String())

	return "Recorded the insurance information; coverage will be verified.", nil
}

// handleAddBillingQuestion logs a billing question for follow-up
func (ba *BillingAgent) handleAddBillingQuestion(ctx context.Context, arguments string) (string, error) {
	var args AddBillingQuestionArgs
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return "", fmt.Errorf("invalid add_billing_question arguments: %w", err)
	}

	question := strings.TrimSpace(args.Question)
	if question == "" {
		return "", fmt.Errorf("question must not be empty")
	}

	sess := ba.binding.Session
	sess.BillingQuestions = append(sess.BillingQuestions, question)
	sess.AddNote("Billing question: "+question, roles.Billing.String())

	return "Noted the question. The billing team will follow up with detailed information.", nil
}
