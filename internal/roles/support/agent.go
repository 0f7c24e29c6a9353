package support

import (
	"github.com/nlpodyssey/openai-agents-go/agents"

	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

const fallbackInstructions = `You are a patient support specialist for a medical office.
Help patients schedule, reschedule, or cancel appointments, provide information
about medical services, and answer general questions about the practice.
Record every appointment request with the schedule_appointment tool. Send
insurance or payment questions to billing and medical assessments back to triage.`

// SupportAgent handles appointments and general patient inquiries
type SupportAgent struct {
	agent      *agents.Agent
	config     *utils.Config
	binding    *roles.Binding
	basePrompt string
}

// New creates the patient support role
func New(binding *roles.Binding, config *utils.Config) *SupportAgent {
	sa := &SupportAgent{
		config:  config,
		binding: binding,
	}

	sa.basePrompt = utils.LoadPromptWithFallback(config.Get("SUPPORT_SYSPROMPT_PATH"), fallbackInstructions)

	sa.agent = agents.New("support-agent").
		WithModel(config.Get("MODEL"))

	sa.registerTools()

	return sa
}

// Agent returns the underlying openai-agents-go instance with instructions
// rebuilt from the current session state
func (sa *SupportAgent) Agent() *agents.Agent {
	return sa.agent.WithInstructions(sa.instructions())
}

func (sa *SupportAgent) instructions() string {
	builder := roles.NewPromptBuilder(sa.basePrompt)
	builder.AddContext("Current patient session: " + sa.binding.Session.Summary())
	return builder.Build()
}

// Name returns the role's registry name
func (sa *SupportAgent) Name() roles.Name {
	return roles.Support
}

// Config returns the role configuration
func (sa *SupportAgent) Config() *utils.Config {
	return sa.config
}
