package triage

import (
	"github.com/nlpodyssey/openai-agents-go/agents"

	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

const fallbackInstructions = `You are a medical triage assistant for a medical office.
Greet patients warmly, gather their name, chief complaint, and symptoms, and
determine the appropriate care pathway. Direct appointment and scheduling
requests to patient support and insurance or payment questions to billing.
Escalate emergencies immediately. Always record patient information with the
collect_patient_info tool before transferring.`

// TriageAgent performs the initial patient assessment
type TriageAgent struct {
	agent      *agents.Agent
	config     *utils.Config
	binding    *roles.Binding
	basePrompt string
}

// New creates the triage role
func New(binding *roles.Binding, config *utils.Config) *TriageAgent {
	ta := &TriageAgent{
		config:  config,
		binding: binding,
	}

	ta.basePrompt = utils.LoadPromptWithFallback(config.Get("TRIAGE_SYSPROMPT_PATH"), fallbackInstructions)

	ta.agent = agents.New("triage-agent").
		WithModel(config.Get("MODEL"))

	ta.registerTools()

	return ta
}

// Agent returns the underlying openai-agents-go instance with instructions
// rebuilt from the current session state
func (ta *TriageAgent) Agent() *agents.Agent {
	return ta.agent.WithInstructions(ta.instructions())
}

func (ta *TriageAgent) instructions() string {
	builder := roles.NewPromptBuilder(ta.basePrompt)
	builder.AddContext("Current patient session: " + ta.binding.Session.Summary())
	return builder.Build()
}

// Name returns the role's registry name
func (ta *TriageAgent) Name() roles.Name {
	return roles.Triage
}

// Config returns the role configuration
func (ta *TriageAgent) Config() *utils.Config {
	return ta.config
}
