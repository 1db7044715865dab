package analytics_controller

import (
	"log"
	"net/http"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/gin-gonic/gin"
)

// GetGeographicData returns revenue attribution by country for the
// logistics choropleth. Runs on the pgx pool: the grouped scan over the
// whole snapshot is the heaviest SQL in the dashboard.
func GetGeographicData(c *gin.Context) {
	log.Printf("[dashboard.geographic-data] start")

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rows, err := config.DB.Query(ctx, `
		SELECT
			COALESCE(NULLIF(country, ''), 'Unspecified') AS country,
			COALESCE(SUM(line_total), 0)::float8 AS revenue,
			COUNT(DISTINCT invoice)::int AS order_count
		FROM transactions
		GROUP BY 1
		ORDER BY 2 DESC
	`)
	if err != nil {
		log.Printf("[dashboard.geographic-data] ERROR query geographic data err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch geographic data"))
		return
	}
	defer rows.Close()

	var out []models.GeographicData
	totalRevenue := 0.0
	for rows.Next() {
		var g models.GeographicData
		if err := rows.Scan(&g.Country, &g.Revenue, &g.OrderCount); err != nil {
			log.Printf("[dashboard.geographic-data] ERROR scan row err=%v", err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch geographic data"))
			return
		}
		totalRevenue += g.Revenue
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[dashboard.geographic-data] ERROR rows err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch geographic data"))
		return
	}

	for i := range out {
		if totalRevenue > 0 {
			out[i].Percentage = out[i].Revenue / totalRevenue * 100
		}
	}

	if len(out) == 0 {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "No transaction data ingested yet", []models.GeographicData{}))
		return
	}

	log.Printf("[dashboard.geographic-data] respond 200 countries=%d", len(out))
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Geographic data retrieved successfully", out))
}
