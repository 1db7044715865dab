package models

// RFMProfile is one customer's recency/frequency/monetary profile with
// quintile scores and the resulting segment label.
type RFMProfile struct {
	CustomerID string  `json:"customer_id"`
	Recency    int     `json:"recency"`   // whole days since last purchase, vs snapshot date
	Frequency  int     `json:"frequency"` // distinct invoices
	Monetary   float64 `json:"monetary"`  // sum of line totals (cancellations included)
	RScore     int     `json:"r_score"`
	FScore     int     `json:"f_score"`
	MScore     int     `json:"m_score"`
	RFMScore   string  `json:"rfm_score"` // R digit + F digit, e.g. "54"
	Segment    string  `json:"segment"`
}

// SegmentSummary is one slice of the segmentation donut chart.
type SegmentSummary struct {
	Segment     string  `json:"segment"`
	Customers   int     `json:"customers"`
	Share       float64 `json:"share"` // percentage of all profiled customers
	AvgRecency  float64 `json:"avg_recency"`
	AvgMonetary float64 `json:"avg_monetary"`
}
