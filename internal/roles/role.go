// Package roles defines the conversational roles a patient interaction can
// move between and the scoped view each role gets over the active session.
package roles

import (
	"errors"
	"fmt"

	"github.com/nlpodyssey/openai-agents-go/agents"

	"github.com/vitalmesh/frontdesk/internal/patient"
	"github.com/vitalmesh/frontdesk/internal/stores/records"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

// Name identifies a registered role.
type Name string

const (
	Triage  Name = "triage"
	Support Name = "support"
	Billing Name = "billing"
	Notes   Name = "notes"
)

// ErrUnknownRole is returned when a name does not match any known role.
var ErrUnknownRole = errors.New("unknown role")

// ParseName validates configuration input against the known role set.
func ParseName(s string) (Name, error) {
	switch Name(s) {
	case Triage, Support, Billing, Notes:
		return Name(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

func (n Name) String() string {
	return string(n)
}

// Role is the contract every conversational role implements.
type Role interface {
	// Agent returns the underlying openai-agents-go instance, with
	// instructions rebuilt from the current session state.
	Agent() *agents.Agent

	// Name returns the role's registry name.
	Name() Name

	// Config returns the configuration for this role.
	Config() *utils.Config
}

// Control is how a role's tools ask the orchestrator for a transition.
// Requests are queued and applied by the orchestrator after the current
// utterance finishes; tools never swap the active role themselves.
type Control interface {
	// RequestTransfer queues a handoff to the target role. The optional
	// handoff message is spoken before context transfer.
	RequestTransfer(target Name, handoffMessage string)

	// RequestEnd queues graceful termination of the interaction.
	RequestEnd()
}

// Binding is the per-utterance view a role's tools operate through.
// The session remains owned by the orchestrator; tools only touch it while
// their role is active within a single dispatch.
type Binding struct {
	Session *patient.Session
	Control Control
	Records records.Store
}
