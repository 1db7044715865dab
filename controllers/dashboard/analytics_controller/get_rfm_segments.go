package analytics_controller

import (
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/gin-gonic/gin"
)

// GetRFMSegments returns the per-customer RFM profile table for the
// customer intelligence page, paginated, optionally filtered by segment.
func GetRFMSegments(c *gin.Context) {
	log.Printf("[dashboard.rfm-segments] start rawQuery=%s", c.Request.URL.RawQuery)

	// ================================
	// Pagination
	// ================================
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	segment := strings.TrimSpace(c.Query("segment"))

	ctx, cancel := config.WithTimeout()
	defer cancel()

	profiles, err := loadRFM(ctx)
	if err != nil {
		log.Printf("[dashboard.rfm-segments] ERROR load profiles err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to compute RFM segmentation"))
		return
	}

	if segment != "" {
		filtered := make([]models.RFMProfile, 0, len(profiles))
		for _, p := range profiles {
			if strings.EqualFold(p.Segment, segment) {
				filtered = append(filtered, p)
			}
		}
		profiles = filtered
	}

	// Apply pagination in-memory (profiles are already cached)
	total := len(profiles)
	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	meta := &models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}

	log.Printf("[dashboard.rfm-segments] respond 200 total=%d page=%d", total, page)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "RFM profiles retrieved successfully", profiles[offset:end], meta))
}
