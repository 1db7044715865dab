package dashboard_routes

import (
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/controllers/dashboard/ingest_controller"
	"github.com/gin-gonic/gin"
)

func SetupIngestRoutes(rg *gin.RouterGroup) {
	ingest := rg.Group("/ingest")

	ingest.POST("/upload", ingest_controller.UploadTransactions)
}
