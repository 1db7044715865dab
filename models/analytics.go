package models

import "time"

// AnalyticsOverview backs the executive cockpit KPI cards.
type AnalyticsOverview struct {
	TotalRevenue    float64    `json:"total_revenue"`    // sum of all line totals in the snapshot
	TotalOrders     int        `json:"total_orders"`     // distinct invoices
	UniqueCustomers int        `json:"unique_customers"` // distinct known customer ids
	RowsInSnapshot  int        `json:"rows_in_snapshot"`
	FirstInvoiceAt  *time.Time `json:"first_invoice_at"`
	LastInvoiceAt   *time.Time `json:"last_invoice_at"`
}

// TopProduct is one row of the revenue-drivers table.
type TopProduct struct {
	Description string  `json:"description"`
	Revenue     float64 `json:"revenue"`
	UnitsSold   int     `json:"units_sold"`
}

// GeographicData is revenue attribution by shipping country.
type GeographicData struct {
	Country    string  `json:"country"`
	Revenue    float64 `json:"revenue"`
	OrderCount int     `json:"order_count"` // distinct invoices
	Percentage float64 `json:"percentage"`  // share of total revenue
}
