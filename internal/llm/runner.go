// Package llm bridges the orchestrator to the hosted language model through
// the openai-agents-go runner. Each completion runs the active role's agent
// against a session seeded from that role's working context.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/nlpodyssey/openai-agents-go/memory"
	"github.com/openai/openai-go/v2/packages/param"
	"github.com/openai/openai-go/v2/responses"

	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/internal/transcript"
)

// Runner executes role completions against the OpenAI agents SDK.
type Runner struct{}

// NewRunner creates a runner. Credentials are picked up from the
// environment by the underlying SDK.
func NewRunner() *Runner {
	return &Runner{}
}

// Complete runs one utterance through the role's agent. The role's working
// context is replayed as session history so the model sees the carried
// conversation, including any turns injected by a transfer.
func (r *Runner) Complete(ctx context.Context, role roles.Role, history []transcript.Turn, input string) (string, error) {
	sess := newHistorySession(role.Name(), history)

	runner := agents.Runner{
		Config: agents.RunConfig{
			Session: sess,
		},
	}

	resp, err := runner.Run(ctx, role.Agent(), input)
	if err != nil {
		return "", fmt.Errorf("agent execution failed: %w", err)
	}

	return strings.TrimSpace(fmt.Sprint(resp.FinalOutput)), nil
}

// turnToInputItem converts a transcript turn into a response input item.
// Tool turns have no message form and are skipped.
func turnToInputItem(turn transcript.Turn) (memory.TResponseInputItem, bool) {
	var role responses.EasyInputMessageRole
	switch turn.Speaker {
	case transcript.SpeakerUser:
		role = responses.EasyInputMessageRoleUser
	case transcript.SpeakerAssistant:
		role = responses.EasyInputMessageRoleAssistant
	case transcript.SpeakerSystem:
		role = responses.EasyInputMessageRoleSystem
	default:
		return memory.TResponseInputItem{}, false
	}

	return memory.TResponseInputItem{
		OfMessage: &responses.EasyInputMessageParam{
			Content: responses.EasyInputMessageContentUnionParam{
				OfString: param.NewOpt(turn.Content),
			},
			Role: role,
		},
	}, true
}

// historySession is a single-completion memory.Session seeded from a role's
// working context. The orchestrator owns the durable history; this session
// only exists for the duration of one runner.Run call.
type historySession struct {
	id    string
	items []memory.TResponseInputItem
}

func newHistorySession(role roles.Name, turns []transcript.Turn) *historySession {
	items := make([]memory.TResponseInputItem, 0, len(turns))
	for _, turn := range turns {
		if item, ok := turnToInputItem(turn); ok {
			items = append(items, item)
		}
	}

	return &historySession{
		id:    role.String() + "-" + uuid.New().String(),
		items: items,
	}
}

/** External memory.Session interface methods **/

// SessionID returns the per-completion session ID
func (s *historySession) SessionID(ctx context.Context) string {
	return s.id
}

// GetItems returns the session history in chronological order, limited to
// the latest N items when limit is positive
func (s *historySession) GetItems(ctx context.Context, limit int) ([]memory.TResponseInputItem, error) {
	items := s.items
	if limit > 0 && len(items) > limit {
		items = items[len(items)-limit:]
	}
	return append([]memory.TResponseInputItem(nil), items...), nil
}

// AddItems appends items produced during the run
func (s *historySession) AddItems(ctx context.Context, items []memory.TResponseInputItem) error {
	s.items = append(s.items, items...)
	return nil
}

// PopItem removes and returns the most recent item, or nil when empty
func (s *historySession) PopItem(ctx context.Context) (*memory.TResponseInputItem, error) {
	if len(s.items) == 0 {
		return nil, nil
	}

	last := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return &last, nil
}

// ClearSession removes all items
func (s *historySession) ClearSession(ctx context.Context) error {
	s.items = nil
	return nil
}
