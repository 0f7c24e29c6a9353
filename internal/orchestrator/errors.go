package orchestrator

import "errors"

var (
	// ErrRoleNotFound is returned when start or transfer targets a role
	// name that was never registered.
	ErrRoleNotFound = errors.New("role not found")

	// ErrNotStarted is returned when an utterance is dispatched before any
	// role has been activated.
	ErrNotStarted = errors.New("orchestrator not started")

	// ErrAlreadyRegistered is a configuration error reported at startup
	// when two roles share a name.
	ErrAlreadyRegistered = errors.New("role already registered")
)
