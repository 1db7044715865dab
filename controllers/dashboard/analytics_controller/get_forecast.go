package analytics_controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/config"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/services"
	"github.com/gin-gonic/gin"
)

// GetForecast runs the pre-trained revenue model over the engineered
// monthly features and applies the strategy-simulator lift. lift is a
// fraction in [0, 0.5]; 0 means simulated == baseline.
func GetForecast(c *gin.Context) {
	log.Printf("[dashboard.forecast] start rawQuery=%s", c.Request.URL.RawQuery)

	lift, err := strconv.ParseFloat(c.DefaultQuery("lift", "0"), 64)
	if err != nil || lift < 0 || lift > services.MaxLift {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "lift must be a number between 0 and 0.5"))
		return
	}

	if revenueModel == nil {
		log.Printf("[dashboard.forecast] ERROR no revenue model loaded")
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Revenue model is not available. Run cmd/train first."))
		return
	}

	ctx, cancel := config.WithTimeout()
	defer cancel()

	rows, _, err := loadSnapshot(ctx)
	if err != nil {
		log.Printf("[dashboard.forecast] ERROR load snapshot err=%v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to load transaction snapshot"))
		return
	}

	features := services.BuildMonthlyFeatures(rows)
	if len(features) == 0 {
		c.JSON(http.StatusOK, models.SuccessResponse(c,
			"Not enough monthly history to forecast (need at least 4 months)",
			models.ForecastResponse{Lift: lift, Points: []models.ForecastPoint{}}))
		return
	}

	baseline, simulated, err := services.ScoreForecast(revenueModel, features, lift)
	if err != nil {
		log.Printf("[dashboard.forecast] ERROR score forecast err=%v", err)
		if errors.Is(err, models.ErrFeatureMismatch) {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Revenue model does not match the serving feature set"))
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to score forecast"))
		return
	}

	points := make([]models.ForecastPoint, len(features))
	for i, f := range features {
		points[i] = models.ForecastPoint{
			Month:     f.Month,
			Actual:    f.Revenue,
			Baseline:  baseline[i],
			Simulated: simulated[i],
		}
	}

	log.Printf("[dashboard.forecast] respond 200 months=%d lift=%.2f", len(points), lift)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Forecast retrieved successfully", models.ForecastResponse{
		Lift:   lift,
		Months: len(points),
		Points: points,
	}))
}
