package controllers

import (
	"net/http"

	"msilva-backend/services"
	"msilva-backend/utils"

	"github.com/gin-gonic/gin"
)

// ReportController serves staff payroll and schedule reports.
type ReportController struct {
	staff func() *services.StaffService
}

func NewReportController() *ReportController {
	return &ReportController{staff: staffService}
}

// GetStaffSummary answers ?month=YYYY-MM with hours and pay per member.
func (rc *ReportController) GetStaffSummary(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "month parameter required (YYYY-MM)")
		return
	}
	summary, err := rc.staff().Summary(c.Request.Context(), month)
	if err != nil {
		respondServiceError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetStaffAssignments is one member's assignment history (?staffId=).
func (rc *ReportController) GetStaffAssignments(c *gin.Context) {
	staffID, ok := utils.ParseUUID(c.Query("staffId"))
	if !ok {
		utils.RespondWithError(c, http.StatusBadRequest, "staffId parameter required")
		return
	}
	history, err := rc.staff().History(c.Request.Context(), staffID)
	if err != nil {
		respondServiceError(c, err, "Staff member not found")
		return
	}
	c.JSON(http.StatusOK, history)
}

func (rc *ReportController) GetStaffUpcoming(c *gin.Context) {
	upcoming, err := rc.staff().Upcoming(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, upcoming)
}
