package notes

import (
	"github.com/nlpodyssey/openai-agents-go/agents"

	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

const fallbackInstructions = `You are a medical notes specialist for a medical office.
Review and summarize the current session, save comprehensive notes for the
healthcare team with save_session_notes, and retrieve a returning patient's
previous notes with load_previous_notes. Be thorough, accurate, and maintain
patient confidentiality.`

// NotesAgent manages patient documentation
type NotesAgent struct {
	agent      *agents.Agent
	config     *utils.Config
	binding    *roles.Binding
	basePrompt string
}

// New creates the notes role
func New(binding *roles.Binding, config *utils.Config) *NotesAgent {
	na := &NotesAgent{
		config:  config,
		binding: binding,
	}

	na.basePrompt = utils.LoadPromptWithFallback(config.Get("NOTES_SYSPROMPT_PATH"), fallbackInstructions)

	na.agent = agents.New("notes-agent").
		WithModel(config.Get("MODEL"))

	na.registerTools()

	return na
}

// Agent returns the underlying openai-agents-go instance with instructions
// rebuilt from the current session state
func (na *NotesAgent) Agent() *agents.Agent {
	return na.agent.WithInstructions(na.instructions())
}

func (na *NotesAgent) instructions() string {
	builder := roles.NewPromptBuilder(na.basePrompt)
	builder.AddContext("Current patient session: " + na.binding.Session.Summary())
	return builder.Build()
}

// Name returns the role's registry name
func (na *NotesAgent) Name() roles.Name {
	return roles.Notes
}

// Config returns the role configuration
func (na *NotesAgent) Config() *utils.Config {
	return na.config
}
