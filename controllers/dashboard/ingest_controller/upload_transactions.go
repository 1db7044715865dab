package ingest_controller

import (
	"errors"
	"log"
	"net/http"
	"time"

	analytics_cache "github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/cache"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadTransactions accepts a raw CSV export (multipart field "file"),
// runs the cleaning transform and atomically replaces the snapshot. The
// response is the cleaning report so the dashboard can show what was
// dropped and why.
func UploadTransactions(c *gin.Context) {
	log.Printf("[dashboard.ingest-upload] start")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "CSV file is required (multipart field 'file')"))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		log.Printf("[dashboard.ingest-upload] ERROR open upload err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to read uploaded file"))
		return
	}
	defer f.Close()

	rows, report, err := services.Normalize(f)
	if err != nil {
		log.Printf("[dashboard.ingest-upload] ERROR normalize err=%v", err)
		if errors.Is(err, models.ErrSchemaMismatch) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Uploaded file does not match the expected invoice schema"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to normalize uploaded file"))
		return
	}

	version := uuid.Must(uuid.NewV7()).String()

	// Full snapshot replace can outlive the default request timeout on the
	// year-sized exports, hence the custom budget.
	ctx, cancel := config.WithCustomTimeout(2 * time.Minute)
	defer cancel()

	if err := services.ReplaceSnapshot(ctx, rows, version, nil); err != nil {
		log.Printf("[dashboard.ingest-upload] ERROR replace snapshot err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to persist snapshot"))
		return
	}
	report.DatasetVersion = version
	analytics_cache.Invalidate()

	log.Printf("[dashboard.ingest-upload] respond 200 version=%s kept=%d dropped=%d",
		version, report.RowsKept, report.RowsRead-report.RowsKept)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Snapshot ingested successfully", report))
}
