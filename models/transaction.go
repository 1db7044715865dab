package models

import "time"

// Transaction is one cleaned invoice line from the gold-layer snapshot.
// Rows are immutable once written: ingest replaces the whole snapshot,
// nothing updates individual lines.
type Transaction struct {
	ID             uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	Invoice        string    `json:"invoice" gorm:"index"`
	StockCode      string    `json:"stock_code"`
	Description    string    `json:"description"`
	Quantity       int32     `json:"quantity"`
	Price          float64   `json:"price"`
	CustomerID     string    `json:"customer_id" gorm:"index"` // empty = unknown customer
	Country        string    `json:"country"`
	InvoiceDate    time.Time `json:"invoice_date" gorm:"index"`
	LineTotal      float64   `json:"line_total"`   // Quantity * Price, derived at ingest
	IsCancelled    bool      `json:"is_cancelled"` // invoice id starts with 'C'
	DatasetVersion string    `json:"-" gorm:"index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// CleaningReport summarizes what the normalizer dropped and why.
// Returned to the caller on every ingest for observability.
type CleaningReport struct {
	DatasetVersion      string `json:"dataset_version"`
	RowsRead            int    `json:"rows_read"`
	RowsKept            int    `json:"rows_kept"`
	DroppedNoDescription int   `json:"dropped_no_description"`
	DroppedBadPrice     int    `json:"dropped_bad_price"` // price <= 0
	DroppedUnparseable  int    `json:"dropped_unparseable"`
	CancelledFlagged    int    `json:"cancelled_flagged"`
}
