package analytics_controller

import (
	"log"
	"net/http"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/services"
	"github.com/gin-gonic/gin"
)

// GetMonthlyRevenue returns the month-start revenue series feeding the
// revenue velocity chart. Only months with transactions appear.
func GetMonthlyRevenue(c *gin.Context) {
	log.Printf("[dashboard.monthly-revenue] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rows, _, err := loadSnapshot(ctx)
	if err != nil {
		log.Printf("[dashboard.monthly-revenue] ERROR load snapshot err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load transaction snapshot"))
		return
	}

	series := services.MonthlyRevenueSeries(rows)
	if len(series) == 0 {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No transaction data ingested yet", series))
		return
	}

	log.Printf("[dashboard.monthly-revenue] respond 200 months=%d", len(series))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Monthly revenue retrieved successfully", series))
}
