package billing

import (
	"github.com/nlpodyssey/openai-agents-go/agents"

	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

const fallbackInstructions = `You are a medical billing specialist for a medical office.
Answer questions about insurance coverage, payment plans, billing processes,
and cost estimates. Record insurance details with the collect_insurance_info
tool and log open questions with add_billing_question so the billing team can
follow up. Send scheduling requests to patient support and medical questions
back to triage.`

// BillingAgent handles insurance and payment inquiries
type BillingAgent struct {
	agent      *agents.Agent
	config     *utils.Config
	binding    *roles.Binding
	basePrompt string
}

// New creates the billing role
func New(binding *roles.Binding, config *utils.Config) *BillingAgent {
	ba := &BillingAgent{
		config:  config,
		binding: binding,
	}

	ba.basePrompt = utils.LoadPromptWithFallback(config.Get("BILLING_SYSPROMPT_PATH"), fallbackInstructions)

	ba.agent = agents.New("billing-agent").
		WithModel(config.Get("MODEL"))

	ba.registerTools()

	return ba
}

// Agent returns the underlying openai-agents-go instance with instructions
// rebuilt from the current session state
func (ba *BillingAgent) Agent() *agents.Agent {
	return ba.agent.WithInstructions(ba.instructions())
}

func (ba *BillingAgent) instructions() string {
	builder := roles.NewPromptBuilder(ba.basePrompt)
	builder.AddContext("Current patient session: " + ba.binding.Session.Summary())
	return builder.Build()
}

// Name returns the role's registry name
func (ba *BillingAgent) Name() roles.Name {
	return roles.Billing
}

// Config returns the role configuration
func (ba *BillingAgent) Config() *utils.Config {
	return ba.config
}
