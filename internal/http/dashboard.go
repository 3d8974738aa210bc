package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardController serves the dashboard counters as JSON.
type DashboardController struct {
	stats StatsService
}

func NewDashboardController(stats StatsService) *DashboardController {
	return &DashboardController{stats: stats}
}

// GetStats handles GET /api/dashboard. The counters are recomputed from
// full listings on every call.
func (dc *DashboardController) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, dc.stats.Stats(c.Request.Context()))
}
