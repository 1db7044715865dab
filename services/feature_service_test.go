package services

import (
	"testing"
	"time"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func monthTx(year int, month time.Month, total float64) models.Transaction {
	return models.Transaction{
		Invoice:     "inv",
		InvoiceDate: time.Date(year, month, 15, 10, 30, 0, 0, time.UTC),
		LineTotal:   total,
	}
}

func TestMonthlyRevenueSeries(t *testing.T) {
	rows := []models.Transaction{
		monthTx(2010, time.February, 20),
		monthTx(2010, time.January, 10),
		monthTx(2010, time.January, 5),
	}
	series := MonthlyRevenueSeries(rows)
	require.Len(t, series, 2)

	assert.Equal(t, time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC), series[0].Month)
	assert.InDelta(t, 15.0, series[0].Revenue, 1e-9)
	assert.Equal(t, time.Date(2010, time.February, 1, 0, 0, 0, 0, time.UTC), series[1].Month)
	assert.InDelta(t, 20.0, series[1].Revenue, 1e-9)
}

func TestMonthlyRevenueSeries_Empty(t *testing.T) {
	assert.Empty(t, MonthlyRevenueSeries(nil))
}

func TestBuildMonthlyFeatures(t *testing.T) {
	rows := []models.Transaction{
		monthTx(2010, time.January, 10),
		monthTx(2010, time.February, 20),
		monthTx(2010, time.March, 30),
		monthTx(2010, time.April, 40),
		monthTx(2010, time.May, 50),
		monthTx(2010, time.June, 60),
	}

	features := BuildMonthlyFeatures(rows)
	require.Len(t, features, 3, "6 months - 3 incomplete rows")

	apr := features[0]
	assert.Equal(t, time.Date(2010, time.April, 1, 0, 0, 0, 0, time.UTC), apr.Month)
	assert.Equal(t, 3, apr.Ordinal, "ordinal counts from the full series, not the trimmed one")
	assert.InDelta(t, 40.0, apr.Revenue, 1e-9)
	assert.InDelta(t, 30.0, apr.Lag1, 1e-9)
	assert.InDelta(t, 20.0, apr.Lag2, 1e-9)
	assert.InDelta(t, 20.0, apr.RollingMean, 1e-9, "mean of Jan..Mar, current month excluded")

	jun := features[2]
	assert.Equal(t, 5, jun.Ordinal)
	assert.InDelta(t, 50.0, jun.Lag1, 1e-9)
	assert.InDelta(t, 40.0, jun.Lag2, 1e-9)
	assert.InDelta(t, 40.0, jun.RollingMean, 1e-9)
}

func TestBuildMonthlyFeatures_RowCount(t *testing.T) {
	var rows []models.Transaction
	for i, m := range []time.Month{time.January, time.February, time.March, time.April, time.May} {
		rows = append(rows, monthTx(2010, m, float64(10*(i+1))))
		features := BuildMonthlyFeatures(rows)
		want := len(rows) - 3
		if want < 0 {
			want = 0
		}
		assert.Len(t, features, want, "after %d months", len(rows))
	}
}

func TestBuildMonthlyFeatures_TooFewMonths(t *testing.T) {
	rows := []models.Transaction{
		monthTx(2010, time.January, 10),
		monthTx(2010, time.February, 20),
		monthTx(2010, time.March, 30),
	}
	features := BuildMonthlyFeatures(rows)
	require.NotNil(t, features)
	assert.Empty(t, features, "fewer than 4 months never errors, just yields nothing")
}

// Appending one more month shifts the lags: the new final row's Lag1 must
// equal the previous run's final-month revenue.
func TestBuildMonthlyFeatures_AppendShiftsLags(t *testing.T) {
	rows := []models.Transaction{
		monthTx(2010, time.January, 10),
		monthTx(2010, time.February, 20),
		monthTx(2010, time.March, 30),
		monthTx(2010, time.April, 40),
		monthTx(2010, time.May, 50),
		monthTx(2010, time.June, 60),
	}
	before := BuildMonthlyFeatures(rows)
	prevFinalRevenue := before[len(before)-1].Revenue

	rows = append(rows, monthTx(2010, time.July, 70))
	after := BuildMonthlyFeatures(rows)
	require.Len(t, after, len(before)+1)
	assert.InDelta(t, prevFinalRevenue, after[len(after)-1].Lag1, 1e-9)
	assert.InDelta(t, before[len(before)-1].Lag1, after[len(after)-1].Lag2, 1e-9)
}

// Months with no transactions simply do not exist in the series: lags step
// over the gap rather than through a zero-revenue month.
func TestBuildMonthlyFeatures_GapsNotFilled(t *testing.T) {
	rows := []models.Transaction{
		monthTx(2010, time.January, 10),
		monthTx(2010, time.February, 20),
		monthTx(2010, time.March, 30),
		monthTx(2010, time.May, 50), // April missing
	}
	features := BuildMonthlyFeatures(rows)
	require.Len(t, features, 1)
	assert.Equal(t, time.Date(2010, time.May, 1, 0, 0, 0, 0, time.UTC), features[0].Month)
	assert.InDelta(t, 30.0, features[0].Lag1, 1e-9, "lag-1 is the prior observed month, March")
}
