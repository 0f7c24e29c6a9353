// Package records implements the durable per-patient record store. Each
// patient identifier maps to one record document holding metadata and the
// full history of session snapshots checkpointed over time.
package records

import (
	"context"
	"errors"
	"time"

	"github.com/vitalmesh/frontdesk/internal/patient"
)

// ErrRecordNotFound is returned when no record exists for an identifier.
var ErrRecordNotFound = errors.New("patient record not found")

// PatientRecord is the durable document kept per patient identifier.
// Session snapshots are append-only: every checkpoint adds an entry and
// existing entries are never mutated or removed.
type PatientRecord struct {
	Name          *string            `yaml:"name" json:"name"`
	ID            *string            `yaml:"id" json:"id"`
	LastUpdated   time.Time          `yaml:"last_updated" json:"last_updated"`
	TotalSessions int                `yaml:"total_sessions" json:"total_sessions"`
	Sessions      []patient.Snapshot `yaml:"sessions" json:"sessions"`

	// Identifier is the key the record was stored under. It is derived
	// from the document's location, not persisted inside it.
	Identifier string `yaml:"-" json:"identifier,omitempty"`
}

// Append adds a snapshot tagged with a fresh time-based session id and
// recomputes the record metadata from it.
func (r *PatientRecord) Append(snap patient.Snapshot, now time.Time) {
	snap.SessionID = now.Format(patient.CompactTimeFormat)
	r.Sessions = append(r.Sessions, snap)

	r.Name = snap.PatientName
	r.ID = snap.PatientID
	r.LastUpdated = now
	r.TotalSessions = len(r.Sessions)
}

// Store is the durable record store consumed by the orchestrator and the
// read-only records API.
type Store interface {
	// Checkpoint resolves the session's patient identifier, loads the
	// existing record (an empty record if none exists or the load fails),
	// appends a fresh snapshot, and writes the whole record back as a
	// single atomic replace.
	Checkpoint(ctx context.Context, sess *patient.Session) error

	// Load fetches the record for an identifier. Returns ErrRecordNotFound
	// if no record exists.
	Load(ctx context.Context, identifier string) (*PatientRecord, error)

	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]*PatientRecord, error)

	// Latest returns the most recently updated record.
	Latest(ctx context.Context) (*PatientRecord, error)

	// Prune removes records that have not been updated within the
	// retention window and reports how many were removed.
	Prune(ctx context.Context, olderThan time.Duration) (int, error)

	Close() error
}
