package roles

import (
	"context"
	"fmt"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"
)

// emptyParamsSchema is the strict schema for tools that take no arguments.
func emptyParamsSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{},
		"additionalProperties": false,
		"required":             []string{},
	}
}

// TransferTool creates a tool that asks the orchestrator to hand the patient
// off to the target role. The swap itself happens after the current reply
// finishes, so the exit/enter hook sequence is never bypassed.
func TransferTool(b *Binding, target Name, toolName, description, handoffMessage string) agents.FunctionTool {
	return agents.FunctionTool{
		Name:             toolName,
		Description:      description,
		ParamsJSONSchema: emptyParamsSchema(),
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			b.Control.RequestTransfer(target, handoffMessage)
			return fmt.Sprintf("The patient is being transferred to %s.", target), nil
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}

// EndConversationTool creates the tool that gracefully terminates the
// session when the patient says goodbye.
func EndConversationTool(b *Binding) agents.FunctionTool {
	return agents.FunctionTool{
		Name:             "end_conversation",
		Description:      "Gracefully end the session when the patient indicates they are finished",
		ParamsJSONSchema: emptyParamsSchema(),
		StrictJSONSchema: param.NewOpt(true),
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			b.Control.RequestEnd()
			return "The session is ending. Thank the patient for visiting.", nil
		},
		IsEnabled: agents.FunctionToolEnabled(),
	}
}
