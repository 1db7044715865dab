package services

import (
	"sort"
	"time"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
)

// MonthlyRevenueSeries buckets line totals into calendar months (month-start
// anchored, UTC) and sums each bucket. Only months that actually contain
// transactions appear; gaps are not zero-filled, which also means lag and
// rolling features downstream step over missing months rather than through
// zeros. Empty input yields an empty series.
func MonthlyRevenueSeries(rows []models.Transaction) []models.MonthlyRevenue {
	buckets := make(map[time.Time]float64)
	for _, tx := range rows {
		buckets[monthStart(tx.InvoiceDate)] += tx.LineTotal
	}

	out := make([]models.MonthlyRevenue, 0, len(buckets))
	for month, revenue := range buckets {
		out = append(out, models.MonthlyRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out
}

// BuildMonthlyFeatures derives the engineered feature table the revenue
// model is trained and scored on: ordinal month index, the previous two
// months' revenue and the mean of the three strictly prior months.
//
// Ordinals are assigned over the full chronological series before any row
// is dropped. Rows lacking a complete 3-prior window (the first three) are
// then removed, so fewer than four distinct months of data yields an empty
// table - callers must handle emptiness, this never errors.
func BuildMonthlyFeatures(rows []models.Transaction) []models.MonthlyFeatureRow {
	series := MonthlyRevenueSeries(rows)
	if len(series) < 4 {
		return []models.MonthlyFeatureRow{}
	}

	out := make([]models.MonthlyFeatureRow, 0, len(series)-3)
	for i := 3; i < len(series); i++ {
		rolling := (series[i-1].Revenue + series[i-2].Revenue + series[i-3].Revenue) / 3
		out = append(out, models.MonthlyFeatureRow{
			Month:       series[i].Month,
			Revenue:     series[i].Revenue,
			Ordinal:     i,
			Lag1:        series[i-1].Revenue,
			Lag2:        series[i-2].Revenue,
			RollingMean: rolling,
		})
	}
	return out
}

func monthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}
