package controllers

import (
	"net/http"

	"msilva-backend/config"
	"msilva-backend/services"

	"github.com/gin-gonic/gin"
)

func GetDashboardOverview(c *gin.Context) {
	overview, err := services.NewDashboardService(config.DB, settings.Location()).Overview(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, overview)
}
