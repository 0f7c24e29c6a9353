package sdk

import (
	"encoding/json"
	"time"
)

// StatusType marks an API response as a success or an error
type StatusType string

const (
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  StatusType `json:"status"`          // Status message
	Code    int        `json:"code"`            // Status code
	Message string     `json:"message"`         // Human-readable message
	Data    T          `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any        `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

// AsJSON converts the ApiResponse to a format suitable for JSON responses
func (r ApiResponse[T]) AsJSON() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Record types */

// Note is a single entry in a session's note log
type Note struct {
	Timestamp time.Time `json:"timestamp"`
	Agent     string    `json:"agent"`
	Content   string    `json:"content"`
}

// SessionSnapshot is one checkpointed session inside a patient record
type SessionSnapshot struct {
	PatientName      *string   `json:"patient_name"`
	PatientID        *string   `json:"patient_id"`
	ChiefComplaint   *string   `json:"chief_complaint"`
	Symptoms         []string  `json:"symptoms"`
	AppointmentType  *string   `json:"appointment_type"`
	InsuranceInfo    *string   `json:"insurance_info"`
	BillingQuestions []string  `json:"billing_questions"`
	Notes            []Note    `json:"notes"`
	SessionStart     time.Time `json:"session_start"`
	SessionEnd       time.Time `json:"session_end"`
	SessionID        string    `json:"session_id"`
}

// PatientRecord is the durable per-patient document exposed by the records API
type PatientRecord struct {
	Name          *string           `json:"name"`
	ID            *string           `json:"id"`
	LastUpdated   time.Time         `json:"last_updated"`
	TotalSessions int               `json:"total_sessions"`
	Sessions      []SessionSnapshot `json:"sessions"`
	Identifier    string            `json:"identifier,omitempty"`
}

// LatestNote is the condensed view of the most recent checkpointed session
type LatestNote struct {
	PatientName    *string  `json:"patient_name"`
	ChiefComplaint *string  `json:"chief_complaint"`
	Symptoms       []string `json:"symptoms"`
	SessionID      string   `json:"session_id"`
}
