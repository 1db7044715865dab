package analytics_controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/gin-gonic/gin"
)

// GetTopProducts returns the top revenue-driving product descriptions.
func GetTopProducts(c *gin.Context) {
	log.Printf("[dashboard.top-products] start")

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit < 1 || limit > 50 {
		limit = 5
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var products []models.TopProduct
	if err := config.Gorm.WithContext(ctx).
		Raw(`
			SELECT
				description,
				COALESCE(SUM(line_total), 0)::float8 AS revenue,
				COALESCE(SUM(quantity), 0)::int AS units_sold
			FROM transactions
			GROUP BY description
			ORDER BY revenue DESC
			LIMIT ?
		`, limit).
		Scan(&products).Error; err != nil {
		log.Printf("[dashboard.top-products] ERROR query top products err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch top products"))
		return
	}

	log.Printf("[dashboard.top-products] respond 200 products=%d", len(products))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Top products retrieved successfully", products))
}
