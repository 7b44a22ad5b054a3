// controllers/report_controller.go
package controllers

import (
	"net/http"

	"storekeeper/app"

	"github.com/gin-gonic/gin"
)

// ReportController serves the read-only projections the export side
// consumes. No formatting happens here; rows go out as JSON verbatim.
type ReportController struct{ *Srv }

func NewReportController(s *Srv) *ReportController { return &ReportController{Srv: s} }

// GET /api/reports/active-roster
func (rc *ReportController) ActiveRoster(c *gin.Context) {
	entries, err := rc.Repo.ActiveRoster(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"entries": entries})
}

// GET /api/reports/leave-roster
func (rc *ReportController) LeaveRoster(c *gin.Context) {
	rows, err := rc.Repo.LeaveRoster(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"rows": rows})
}

// GET /api/reports/waiting-roster
func (rc *ReportController) WaitingRoster(c *gin.Context) {
	rows, err := rc.Repo.WaitingRoster(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"rows": rows})
}
