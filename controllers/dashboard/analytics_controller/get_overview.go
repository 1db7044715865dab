package analytics_controller

import (
	"log"
	"net/http"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/gin-gonic/gin"
)

// GetOverview returns the executive cockpit KPI cards: total revenue,
// distinct orders, unique customers and the span of the snapshot.
func GetOverview(c *gin.Context) {
	log.Printf("[dashboard.analytics-overview] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	var overview models.AnalyticsOverview
	if err := config.Gorm.WithContext(ctx).
		Raw(`
			SELECT
				COALESCE(SUM(line_total), 0)::float8 AS total_revenue,
				COUNT(DISTINCT invoice)::int AS total_orders,
				COUNT(DISTINCT customer_id) FILTER (WHERE customer_id <> '')::int AS unique_customers,
				COUNT(*)::int AS rows_in_snapshot,
				MIN(invoice_date) AS first_invoice_at,
				MAX(invoice_date) AS last_invoice_at
			FROM transactions
		`).
		Scan(&overview).Error; err != nil {
		log.Printf("[dashboard.analytics-overview] ERROR query overview err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch analytics overview"))
		return
	}

	if overview.RowsInSnapshot == 0 {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No transaction data ingested yet", overview))
		return
	}

	log.Printf("[dashboard.analytics-overview] respond 200 revenue=%.2f orders=%d customers=%d",
		overview.TotalRevenue, overview.TotalOrders, overview.UniqueCustomers)

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Analytics overview retrieved successfully", overview))
}
