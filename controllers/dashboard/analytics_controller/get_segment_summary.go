package analytics_controller

import (
	"log"
	"net/http"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/services"
	"github.com/gin-gonic/gin"
)

// GetSegmentSummary returns per-segment customer counts and averages for
// the segmentation donut chart.
func GetSegmentSummary(c *gin.Context) {
	log.Printf("[dashboard.segment-summary] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	profiles, err := loadRFM(ctx)
	if err != nil {
		log.Printf("[dashboard.segment-summary] ERROR load profiles err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to compute RFM segmentation"))
		return
	}

	summary := services.SummarizeSegments(profiles)
	if len(summary) == 0 {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No customers to segment yet", summary))
		return
	}

	log.Printf("[dashboard.segment-summary] respond 200 segments=%d customers=%d", len(summary), len(profiles))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Segment summary retrieved successfully", summary))
}
