package patient

import (
	"log"
	"strings"
	"time"
)

// CompactTimeFormat is the timestamp layout used for anonymous patient
// identifiers and time-based session ids.
const CompactTimeFormat = "20060102_150405"

// Note is a single entry in a session's append-only note log.
type Note struct {
	Timestamp time.Time `yaml:"timestamp" json:"timestamp"`
	Agent     string    `yaml:"agent" json:"agent"`
	Content   string    `yaml:"content" json:"content"`
}

// Session holds everything collected during one patient interaction.
// It is exclusively owned by the orchestrator: roles only see it for the
// duration of handling a single utterance, so no locking is needed here.
type Session struct {
	Name       string
	ExternalID string

	ChiefComplaint string
	Symptoms       []string

	AppointmentType  string
	InsuranceInfo    string
	BillingQuestions []string

	Notes []Note

	ActiveRole   string
	SessionStart time.Time

	terminated bool
}

// NewSession creates an empty session starting now.
func NewSession() *Session {
	return &Session{SessionStart: time.Now()}
}

// AddNote appends a timestamped entry to the note log. The log is
// append-only; entries are never reordered or removed.
func (s *Session) AddNote(content, agent string) {
	note := Note{Timestamp: time.Now(), Agent: agent, Content: content}
	s.Notes = append(s.Notes, note)
	log.Printf("[SESSION]: Added note from %s: %s", agent, content)
}

// Terminate latches the session into its terminated state. The latch is
// one-way; there is no way to un-terminate a session.
func (s *Session) Terminate() {
	s.terminated = true
}

// Terminated reports whether the session has ended.
func (s *Session) Terminated() bool {
	return s.terminated
}

// Identifier resolves the patient identifier for this session:
// explicit name, then explicit external id, then a generated anonymous id
// derived from the session start time. Recomputed on every call, so the
// identifier can change mid-session once a name is collected.
func (s *Session) Identifier() string {
	if name := strings.TrimSpace(s.Name); name != "" {
		return name
	}
	if id := strings.TrimSpace(s.ExternalID); id != "" {
		return id
	}
	return "unknown_patient_" + s.SessionStart.Format(CompactTimeFormat)
}

// Summary builds a one-line description from only the fields currently
// populated. Absent fields are never assumed; a session with nothing
// collected yet is described as new so roles ask instead of guessing.
func (s *Session) Summary() string {
	var parts []string

	if s.Name != "" {
		parts = append(parts, "Patient: "+s.Name)
	}
	if s.ChiefComplaint != "" {
		parts = append(parts, "Chief Complaint: "+s.ChiefComplaint)
	}
	if len(s.Symptoms) > 0 {
		parts = append(parts, "Symptoms: "+strings.Join(s.Symptoms, ", "))
	}
	if s.AppointmentType != "" {
		parts = append(parts, "Appointment Type: "+s.AppointmentType)
	}
	if s.InsuranceInfo != "" {
		parts = append(parts, "Insurance: "+s.InsuranceInfo)
	}

	if len(parts) == 0 {
		return "New patient session. No information has been collected yet; ask the patient rather than assuming anything."
	}
	return strings.Join(parts, " | ")
}

// Snapshot is a frozen copy of a session's fields, suitable for persistence.
// Optional scalar fields are pointers so absent values serialize as null.
type Snapshot struct {
	PatientName      *string   `yaml:"patient_name" json:"patient_name"`
	PatientID        *string   `yaml:"patient_id" json:"patient_id"`
	ChiefComplaint   *string   `yaml:"chief_complaint" json:"chief_complaint"`
	Symptoms         []string  `yaml:"symptoms" json:"symptoms"`
	AppointmentType  *string   `yaml:"appointment_type" json:"appointment_type"`
	InsuranceInfo    *string   `yaml:"insurance_info" json:"insurance_info"`
	BillingQuestions []string  `yaml:"billing_questions" json:"billing_questions"`
	Notes            []Note    `yaml:"notes" json:"notes"`
	SessionStart     time.Time `yaml:"session_start" json:"session_start"`
	SessionEnd       time.Time `yaml:"session_end" json:"session_end"`
	SessionID        string    `yaml:"session_id" json:"session_id"`
}

// Snapshot produces an immutable copy of the session with the session end
// stamped as now. The session id is assigned by the record store when the
// snapshot is checkpointed.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		PatientName:      optional(s.Name),
		PatientID:        optional(s.ExternalID),
		ChiefComplaint:   optional(s.ChiefComplaint),
		Symptoms:         append([]string(nil), s.Symptoms...),
		AppointmentType:  optional(s.AppointmentType),
		InsuranceInfo:    optional(s.InsuranceInfo),
		BillingQuestions: append([]string(nil), s.BillingQuestions...),
		Notes:            append([]Note(nil), s.Notes...),
		SessionStart:     s.SessionStart,
		SessionEnd:       time.Now(),
	}
	return snap
}

// HasData reports whether anything worth persisting has been collected.
func (s *Session) HasData() bool {
	return len(s.Notes) > 0 || s.ChiefComplaint != ""
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
