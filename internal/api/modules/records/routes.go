package records

import (
	"github.com/gin-gonic/gin"

	record_store "github.com/vitalmesh/frontdesk/internal/stores/records"
)

var store record_store.Store

// Init provides the module with its backing record store
func Init(s record_store.Store) {
	store = s
}

// GetStore returns the module's backing record store
func GetStore() record_store.Store {
	return store
}

// Register routes for the records module
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/patients", ListPatients)            // List all patient records
	g.GET("/patients/:identifier", GetPatient)  // Get a single patient record
	g.GET("/latest_note", GetLatestNote)        // Condensed view of the most recent session
}
