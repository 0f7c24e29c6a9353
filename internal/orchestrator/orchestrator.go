// Package orchestrator owns the per-interaction state machine: it holds the
// role registry, drives activation and deactivation, carries context between
// roles, and checkpoints session state to the record store at every role
// exit and at termination.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/vitalmesh/frontdesk/internal/patient"
	"github.com/vitalmesh/frontdesk/internal/roles"
	"github.com/vitalmesh/frontdesk/internal/stores/records"
	"github.com/vitalmesh/frontdesk/internal/transcript"
	"github.com/vitalmesh/frontdesk/pkg/utils"
)

const apologyMessage = "I'm sorry, I'm having trouble responding right now. Could you say that again?"

// Completer produces a role's reply to an utterance. It is the boundary to
// the hosted language model; the orchestrator awaits it before anything
// else proceeds.
type Completer interface {
	Complete(ctx context.Context, role roles.Role, history []transcript.Turn, input string) (string, error)
}

// Speaker emits text back to the patient. In production this is the
// text-to-speech side of the voice channel.
type Speaker interface {
	Say(ctx context.Context, text string) error
}

// Presence is the room channel that tracks which role is facing the
// patient. Closing it releases the held room handle at termination.
type Presence interface {
	SetAttributes(ctx context.Context, attrs map[string]string) error
	Close() error
}

// NopPresence is a Presence that does nothing, for setups without a room
// channel.
type NopPresence struct{}

func (NopPresence) SetAttributes(ctx context.Context, attrs map[string]string) error { return nil }
func (NopPresence) Close() error                                                     { return nil }

type pendingTransfer struct {
	target  roles.Name
	handoff string
}

// Orchestrator drives one patient interaction. Events (utterances, transfer
// requests, termination) are processed strictly one at a time; the session
// is owned here and never escapes except as the scoped binding roles see
// while handling a single utterance.
type Orchestrator struct {
	mu sync.Mutex

	config    *utils.Config
	registry  map[roles.Name]roles.Role
	histories map[roles.Name][]transcript.Turn

	session *patient.Session
	binding *roles.Binding

	store     records.Store
	completer Completer
	speaker   Speaker
	presence  Presence

	active      roles.Name
	previous    roles.Name
	hasPrevious bool
	started     bool

	keepLast          int
	completionTimeout time.Duration
	externalTimeout   time.Duration
	farewell          string

	pendingMu   sync.Mutex
	pendingMove *pendingTransfer
	pendingEnd  bool
}

// New creates an orchestrator for a fresh patient interaction.
func New(cfg *utils.Config, store records.Store, completer Completer, speaker Speaker, presence Presence) *Orchestrator {
	if presence == nil {
		presence = NopPresence{}
	}

	o := &Orchestrator{
		config:    cfg,
		registry:  make(map[roles.Name]roles.Role),
		histories: make(map[roles.Name][]transcript.Turn),
		session:   patient.NewSession(),
		store:     store,
		completer: completer,
		speaker:   speaker,
		presence:  presence,

		keepLast:          cfg.GetIntWithDefault("CONTEXT_KEEP_LAST", defaultKeepLast),
		completionTimeout: time.Duration(cfg.GetIntWithDefault("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		externalTimeout:   time.Duration(cfg.GetIntWithDefault("EXTERNAL_TIMEOUT_SECONDS", 10)) * time.Second,
		farewell:          cfg.GetWithDefault("FAREWELL_MESSAGE", "Thank you for visiting us. Take care!"),
	}

	o.binding = &roles.Binding{
		Session: o.session,
		Control: o,
		Records: store,
	}

	return o
}

// Binding returns the scoped view roles are constructed against.
func (o *Orchestrator) Binding() *roles.Binding {
	return o.binding
}

// Session exposes the interaction state for inspection.
func (o *Orchestrator) Session() *patient.Session {
	return o.session
}

// Active returns the currently active role name, if any.
func (o *Orchestrator) Active() (roles.Name, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active, o.active != ""
}

// History returns a copy of a role's working context.
func (o *Orchestrator) History(name roles.Name) []transcript.Turn {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]transcript.Turn(nil), o.histories[name]...)
}

// Register adds a role to the registry. Duplicate names are a
// configuration error reported at startup.
func (o *Orchestrator) Register(role roles.Role) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	name := role.Name()
	if _, ok := o.registry[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	o.registry[name] = role
	return nil
}

// Start activates the named role as a cold start: no previous role and no
// context to transfer.
func (o *Orchestrator) Start(ctx context.Context, initial roles.Name) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.started {
		return fmt.Errorf("orchestrator already started")
	}
	if _, ok := o.registry[initial]; !ok {
		return fmt.Errorf("%w: %s", ErrRoleNotFound, initial)
	}

	o.active = initial
	o.started = true
	o.session.ActiveRole = initial.String()
	o.session.AddNote("Entered "+initial.String(), initial.String())
	o.syncPresence(ctx)

	log.Printf("[ORCHESTRATOR]: Started with role %s", initial)
	return nil
}

// Dispatch delivers an inbound utterance to the active role. Termination
// intent is evaluated first; after the session has terminated every
// dispatch is a logged no-op.
func (o *Orchestrator) Dispatch(ctx context.Context, utterance string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session.Terminated() {
		log.Printf("[ORCHESTRATOR]: Ignoring utterance, session already terminated")
		return nil
	}
	if !o.started {
		return ErrNotStarted
	}

	if DetectTermination(utterance) {
		log.Printf("[ORCHESTRATOR]: Termination detected in utterance")
		return o.terminateLocked(ctx, o.active)
	}

	role := o.registry[o.active]
	history := o.histories[o.active]

	cctx, cancel := context.WithTimeout(ctx, o.completionTimeout)
	reply, err := o.completer.Complete(cctx, role, history, utterance)
	cancel()
	if err != nil {
		// Boundary error: apologize, drop any half-made transition
		// request, and leave session state untouched.
		log.Printf("[ORCHESTRATOR]: Completion failed for role %s: %v", o.active, err)
		o.clearPending()
		o.say(ctx, apologyMessage)
		return nil
	}

	o.histories[o.active] = append(history,
		transcript.NewTurn(transcript.SpeakerUser, utterance),
		transcript.NewTurn(transcript.SpeakerAssistant, reply),
	)
	o.say(ctx, reply)

	// Apply at most one transition queued by the role's tools, after the
	// reply has fully completed. Termination wins over a transfer.
	move, end := o.takePending()
	switch {
	case end:
		return o.terminateLocked(ctx, o.active)
	case move != nil:
		return o.transferLocked(ctx, move.target, move.handoff)
	}
	return nil
}

// Transfer hands active-role status to the target role, running the full
// exit/enter hook sequence. After termination it is a logged no-op.
func (o *Orchestrator) Transfer(ctx context.Context, target roles.Name, handoffMessage string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.transferLocked(ctx, target, handoffMessage)
}

// Terminate runs the termination sequence explicitly, e.g. when the
// surrounding channel closes.
func (o *Orchestrator) Terminate(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.terminateLocked(ctx, o.active)
}

/** ---- roles.Control ---- **/

// RequestTransfer queues a handoff requested by the active role's tools.
func (o *Orchestrator) RequestTransfer(target roles.Name, handoffMessage string) {
	o.pendingMu.Lock()
	defer o.pendingMu.Unlock()
	o.pendingMove = &pendingTransfer{target: target, handoff: handoffMessage}
}

// RequestEnd queues graceful termination requested by the active role.
func (o *Orchestrator) RequestEnd() {
	o.pendingMu.Lock()
	defer o.pendingMu.Unlock()
	o.pendingEnd = true
}

func (o *Orchestrator) takePending() (*pendingTransfer, bool) {
	o.pendingMu.Lock()
	defer o.pendingMu.Unlock()
	move, end := o.pendingMove, o.pendingEnd
	o.pendingMove, o.pendingEnd = nil, false
	return move, end
}

func (o *Orchestrator) clearPending() {
	o.pendingMu.Lock()
	defer o.pendingMu.Unlock()
	o.pendingMove, o.pendingEnd = nil, false
}

/** ---- transitions ---- **/

func (o *Orchestrator) transferLocked(ctx context.Context, target roles.Name, handoffMessage string) error {
	if o.session.Terminated() {
		log.Printf("[ORCHESTRATOR]: Ignoring transfer to %s, session already terminated", target)
		return nil
	}
	if !o.started {
		return ErrNotStarted
	}
	if _, ok := o.registry[target]; !ok {
		return fmt.Errorf("%w: %s", ErrRoleNotFound, target)
	}

	from := o.active
	note := fmt.Sprintf("Transferred from %s to %s", from, target)
	if handoffMessage != "" {
		note += ": " + handoffMessage
	}
	o.session.AddNote(note, from.String())

	// Exit: note then checkpoint, completed before the next role enters
	o.session.AddNote("Exited "+from.String(), from.String())
	o.checkpoint(ctx)

	o.previous = from
	o.hasPrevious = true
	o.active = target
	o.session.ActiveRole = target.String()

	if handoffMessage != "" {
		o.say(ctx, handoffMessage)
	}

	// Enter: note, bounded context transfer, presence sync
	o.session.AddNote("Entered "+target.String(), target.String())
	carried := CarryContext(o.histories[from], o.histories[target], o.keepLast)
	o.histories[target] = append(o.histories[target], carried...)
	o.syncPresence(ctx)

	log.Printf("[ORCHESTRATOR]: Transferred from %s to %s (%d turns carried)", from, target, len(carried))
	return nil
}

func (o *Orchestrator) terminateLocked(ctx context.Context, from roles.Name) error {
	if o.session.Terminated() {
		return nil
	}

	if from != "" {
		o.session.AddNote("Conversation ended", from.String())
	}
	o.session.Terminate()

	// The final checkpoint always completes before teardown
	o.checkpoint(ctx)
	o.say(ctx, o.farewell)

	o.active = ""
	o.session.ActiveRole = ""
	if err := o.presence.Close(); err != nil {
		log.Printf("[ORCHESTRATOR]: Failed to close presence channel: %v", err)
	}

	log.Printf("[ORCHESTRATOR]: Session terminated")
	return nil
}

/** ---- bounded external calls ---- **/

// checkpoint writes the current session snapshot to the record store.
// A write failure costs durability for this checkpoint only; the next
// successful one reloads from storage and appends correctly.
func (o *Orchestrator) checkpoint(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, o.externalTimeout)
	defer cancel()

	if err := o.store.Checkpoint(sctx, o.session); err != nil {
		log.Printf("[ORCHESTRATOR]: Checkpoint failed for %q: %v", o.session.Identifier(), err)
	}
}

func (o *Orchestrator) say(ctx context.Context, text string) {
	sctx, cancel := context.WithTimeout(ctx, o.externalTimeout)
	defer cancel()

	if err := o.speaker.Say(sctx, text); err != nil {
		log.Printf("[ORCHESTRATOR]: Failed to emit message: %v", err)
	}
}

func (o *Orchestrator) syncPresence(ctx context.Context) {
	sctx, cancel := context.WithTimeout(ctx, o.externalTimeout)
	defer cancel()

	attrs := map[string]string{
		"agent":      o.active.String(),
		"patient_id": o.session.Identifier(),
	}
	if err := o.presence.SetAttributes(sctx, attrs); err != nil {
		log.Printf("[ORCHESTRATOR]: Failed to sync presence attributes: %v", err)
	}
}
