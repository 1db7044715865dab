package models

import "time"

// MonthlyRevenue is one month-start bucket of summed line totals.
// Only months with at least one transaction appear; gaps are not zero-filled.
type MonthlyRevenue struct {
	Month   time.Time `json:"month"` // first day of the month, UTC
	Revenue float64   `json:"revenue"`
}

// MonthlyFeatureRow is one row of the engineered monthly feature table fed
// to the revenue model. Ordinal is assigned over the full chronological
// series before incomplete rows are dropped.
type MonthlyFeatureRow struct {
	Month       time.Time `json:"month"`
	Revenue     float64   `json:"revenue"`
	Ordinal     int       `json:"ordinal"`
	Lag1        float64   `json:"lag_1"`
	Lag2        float64   `json:"lag_2"`
	RollingMean float64   `json:"rolling_mean"` // mean of the 3 strictly prior months
}

// ForecastPoint pairs the model baseline with the lift-adjusted simulation
// for one month of the feature table.
type ForecastPoint struct {
	Month     time.Time `json:"month"`
	Actual    float64   `json:"actual"`
	Baseline  float64   `json:"baseline"`
	Simulated float64   `json:"simulated"`
}

// ForecastResponse is the payload of the strategy-simulator endpoint.
type ForecastResponse struct {
	Lift   float64         `json:"lift"`
	Months int             `json:"months"`
	Points []ForecastPoint `json:"points"`
}
