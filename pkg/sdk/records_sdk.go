package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListPatients returns every patient record, most recently updated first
func (c *Client) ListPatients(ctx context.Context) ([]PatientRecord, error) {
	path := "/api/patients"

	var out ApiResponse[[]PatientRecord]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	if out.Status == StatusError {
		return nil, fmt.Errorf("error listing patients (%s): %v", out.Message, out.Error)
	}

	return out.Data, nil
}

// GetPatient returns the record stored under the given patient identifier
func (c *Client) GetPatient(ctx context.Context, identifier string) (*PatientRecord, error) {
	path := fmt.Sprintf("/api/patients/%s", url.PathEscape(identifier))

	var out ApiResponse[PatientRecord]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	if out.Status == StatusError {
		return nil, fmt.Errorf("error getting patient (%s): %v", out.Message, out.Error)
	}

	return &out.Data, nil
}

// GetLatestNote returns the condensed view of the most recent session
func (c *Client) GetLatestNote(ctx context.Context) (*LatestNote, error) {
	path := "/api/latest_note"

	var out ApiResponse[LatestNote]
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	if out.Status == StatusError {
		return nil, fmt.Errorf("error getting latest note (%s): %v", out.Message, out.Error)
	}

	return &out.Data, nil
}
