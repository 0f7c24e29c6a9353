package records

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	record_store "github.com/vitalmesh/frontdesk/internal/stores/records"
	"github.com/vitalmesh/frontdesk/pkg/sdk"
)

// ListPatients handles GET requests for all patient records
func ListPatients(c *gin.Context) {
	recs, err := GetStore().List(c.Request.Context())
	if err != nil {
		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to list patient records", err.Error()).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Patient records retrieved successfully", recs).AsGinResponse())
}

// GetPatient handles GET requests for a single patient record by identifier
func GetPatient(c *gin.Context) {
	identifier := c.Param("identifier")

	rec, err := GetStore().Load(c.Request.Context(), identifier)
	if err != nil {
		if errors.Is(err, record_store.ErrRecordNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Patient record not found", identifier).AsGinResponse())
			return
		}

		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to load patient record", err.Error()).AsGinResponse())
		return
	}

	c.JSON(sdk.NewSuccessResponse("Patient record retrieved successfully", rec).AsGinResponse())
}

// GetLatestNote handles GET requests for the condensed view of the most
// recently checkpointed session
func GetLatestNote(c *gin.Context) {
	rec, err := GetStore().Latest(c.Request.Context())
	if err != nil {
		if errors.Is(err, record_store.ErrRecordNotFound) {
			c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "No patient records exist yet", nil).AsGinResponse())
			return
		}

		c.JSON(sdk.NewErrorResponse(http.StatusInternalServerError, "Failed to load latest record", err.Error()).AsGinResponse())
		return
	}

	if len(rec.Sessions) == 0 {
		c.JSON(sdk.NewErrorResponse(http.StatusNotFound, "Latest record has no sessions", rec.Identifier).AsGinResponse())
		return
	}

	last := rec.Sessions[len(rec.Sessions)-1]
	note := sdk.LatestNote{
		PatientName:    last.PatientName,
		ChiefComplaint: last.ChiefComplaint,
		Symptoms:       last.Symptoms,
		SessionID:      last.SessionID,
	}

	c.JSON(sdk.NewSuccessResponse("Latest note retrieved successfully", note).AsGinResponse())
}
