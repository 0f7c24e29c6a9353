package records

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalmesh/frontdesk/internal/patient"
	record_store "github.com/vitalmesh/frontdesk/internal/stores/records"
	"github.com/vitalmesh/frontdesk/pkg/sdk"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := record_store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	Init(store)

	engine := gin.New()
	RegisterRoutes(engine.Group("/api"))
	return engine
}

func checkpointSession(t *testing.T, name, complaint string) {
	t.Helper()

	sess := patient.NewSession()
	sess.Name = name
	sess.ChiefComplaint = complaint
	sess.AddNote("Collected intake", "triage")
	require.NoError(t, GetStore().Checkpoint(context.Background(), sess))
}

func TestGetPatient(t *testing.T) {
	router := newTestRouter(t)
	checkpointSession(t, "Alice Smith", "knee pain")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/Alice%20Smith", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp sdk.ApiResponse[sdk.PatientRecord]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, sdk.StatusSuccess, resp.Status)
	require.NotNil(t, resp.Data.Name)
	assert.Equal(t, "Alice Smith", *resp.Data.Name)
	assert.Equal(t, 1, resp.Data.TotalSessions)
}

func TestGetPatientNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients/nobody", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPatients(t *testing.T) {
	router := newTestRouter(t)
	checkpointSession(t, "Alice Smith", "knee pain")
	checkpointSession(t, "Bob Jones", "headaches")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp sdk.ApiResponse[[]sdk.PatientRecord]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
}

func TestGetLatestNote(t *testing.T) {
	router := newTestRouter(t)
	checkpointSession(t, "Alice Smith", "knee pain")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/latest_note", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp sdk.ApiResponse[sdk.LatestNote]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.ChiefComplaint)
	assert.Equal(t, "knee pain", *resp.Data.ChiefComplaint)
	assert.NotEmpty(t, resp.Data.SessionID)
}

func TestGetLatestNoteEmptyStore(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/latest_note", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
