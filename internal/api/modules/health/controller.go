package health

import (
	"github.com/gin-gonic/gin"

	"github.com/vitalmesh/frontdesk/pkg/sdk"
)

// getStatus reports service liveness
func getStatus(c *gin.Context) {
	c.JSON(sdk.NewSuccess("Service is healthy").AsGinResponse())
}
