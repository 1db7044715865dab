package dashboard_routes

import (
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/controllers/dashboard/analytics_controller"
	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup) {
	analytics := rg.Group("/analytics")

	analytics.GET("/overview", analytics_controller.GetOverview)
	analytics.GET("/monthly-revenue", analytics_controller.GetMonthlyRevenue)
	analytics.GET("/rfm-segments", analytics_controller.GetRFMSegments)
	analytics.GET("/segment-summary", analytics_controller.GetSegmentSummary)
	analytics.GET("/top-products", analytics_controller.GetTopProducts)
	analytics.GET("/geographic-data", analytics_controller.GetGeographicData)
	analytics.GET("/forecast", analytics_controller.GetForecast)
}
