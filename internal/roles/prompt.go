package roles

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs a role's instructions from its base prompt plus
// dynamic session context. Context lines keep their insertion order so the
// built prompt is deterministic.
type PromptBuilder struct {
	basePrompt string
	context    []string
}

// NewPromptBuilder creates a prompt builder over a base system prompt.
func NewPromptBuilder(basePrompt string) *PromptBuilder {
	return &PromptBuilder{basePrompt: basePrompt}
}

// AddContext appends a line of contextual information to the prompt.
func (pb *PromptBuilder) AddContext(context string) *PromptBuilder {
	pb.context = append(pb.context, context)
	return pb
}

// Build constructs the final prompt.
func (pb *PromptBuilder) Build() string {
	parts := []string{pb.basePrompt}

	if len(pb.context) > 0 {
		parts = append(parts, "\n## Current Context:")
		for _, ctx := range pb.context {
			parts = append(parts, fmt.Sprintf("- %s", ctx))
		}
	}

	return strings.Join(parts, "\n")
}
