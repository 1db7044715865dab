package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
	"golang.org/x/text/encoding/charmap"
)

// cancelPrefix marks cancellation invoices in the raw export (e.g. "C489449").
const cancelPrefix = "C"

// requiredColumns must all be present in the raw CSV header.
var requiredColumns = []string{
	"Invoice", "StockCode", "Description", "Quantity", "Price", "Customer ID", "InvoiceDate",
}

// countryColumn is optional: kept when the export carries it, empty otherwise.
const countryColumn = "Country"

// dateLayouts accepted for InvoiceDate, tried in order.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"1/2/2006 15:04",
	"01/02/2006 15:04",
	"2006-01-02",
}

// NormalizeFile opens a raw CSV export and runs the cleaning transform.
// Returns models.ErrMissingSource when the path cannot be opened.
func NormalizeFile(path string) ([]models.Transaction, *models.CleaningReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", models.ErrMissingSource, path)
	}
	defer f.Close()
	return Normalize(f)
}

// Normalize reads raw invoice lines and produces the canonical transaction
// table plus a per-rule cleaning report. The transform is pure: persistence
// of the resulting snapshot is the caller's concern.
//
// Cleaning rules, in order per row:
//  1. rows that fail type coercion are dropped (counted as unparseable)
//  2. rows with an empty description are dropped
//  3. rows with price <= 0 are dropped
//
// Kept rows get two derived fields: LineTotal = Quantity * Price and
// IsCancelled = invoice id starts with the cancellation prefix.
func Normalize(r io.Reader) ([]models.Transaction, *models.CleaningReport, error) {
	// Raw exports of this dataset are ISO-8859-1, not UTF-8.
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: no header row", models.ErrSchemaMismatch)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, nil, fmt.Errorf("%w: missing column %q", models.ErrSchemaMismatch, name)
		}
	}
	countryIdx, hasCountry := col[countryColumn]

	report := &models.CleaningReport{}
	out := []models.Transaction{}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// ragged or malformed line: drop it, keep going
			report.RowsRead++
			report.DroppedUnparseable++
			continue
		}
		report.RowsRead++

		field := func(name string) string {
			idx := col[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		quantity, err := strconv.ParseInt(field("Quantity"), 10, 32)
		if err != nil {
			report.DroppedUnparseable++
			continue
		}
		// coerce through float32 like the original export pipeline did
		price, err := strconv.ParseFloat(field("Price"), 32)
		if err != nil {
			report.DroppedUnparseable++
			continue
		}
		invoiceDate, ok := parseDate(field("InvoiceDate"))
		if !ok {
			report.DroppedUnparseable++
			continue
		}

		description := field("Description")
		if description == "" {
			report.DroppedNoDescription++
			continue
		}
		if price <= 0 {
			report.DroppedBadPrice++
			continue
		}

		invoice := field("Invoice")
		tx := models.Transaction{
			Invoice:     invoice,
			StockCode:   field("StockCode"),
			Description: description,
			Quantity:    int32(quantity),
			Price:       price,
			CustomerID:  field("Customer ID"),
			InvoiceDate: invoiceDate,
			LineTotal:   float64(quantity) * price,
			IsCancelled: strings.HasPrefix(invoice, cancelPrefix),
		}
		if hasCountry && countryIdx < len(record) {
			tx.Country = strings.TrimSpace(record[countryIdx])
		}
		if tx.IsCancelled {
			report.CancelledFlagged++
		}
		out = append(out, tx)
	}

	report.RowsKept = len(out)
	log.Printf("[normalizer] read=%d kept=%d no_description=%d bad_price=%d unparseable=%d cancelled=%d",
		report.RowsRead, report.RowsKept, report.DroppedNoDescription,
		report.DroppedBadPrice, report.DroppedUnparseable, report.CancelledFlagged)
	return out, report, nil
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
