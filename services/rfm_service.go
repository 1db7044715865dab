package services

import (
	"math"
	"sort"
	"time"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
)

// degenerateScore is assigned to every customer for a metric that has too
// few distinct values to cut into quintiles.
const degenerateScore = 1

// GenerateRFM computes one recency/frequency/monetary profile per known
// customer, scores each metric into population quintiles and attaches the
// segment label. An empty input yields an empty result, never an error.
//
// The snapshot date is one day after the latest invoice in the table, so
// recency is always >= 0 in whole days. Rows without a customer id are
// excluded; cancellation lines are NOT filtered out before aggregation.
// Output is sorted by customer id and fully deterministic for a fixed input.
func GenerateRFM(rows []models.Transaction) []models.RFMProfile {
	if len(rows) == 0 {
		return []models.RFMProfile{}
	}

	var maxDate time.Time
	for _, tx := range rows {
		if tx.InvoiceDate.After(maxDate) {
			maxDate = tx.InvoiceDate
		}
	}
	snapshot := maxDate.Add(24 * time.Hour)

	type group struct {
		lastPurchase time.Time
		invoices     map[string]struct{}
		monetary     float64
	}
	groups := make(map[string]*group)
	for _, tx := range rows {
		if tx.CustomerID == "" {
			continue
		}
		g, ok := groups[tx.CustomerID]
		if !ok {
			g = &group{invoices: make(map[string]struct{})}
			groups[tx.CustomerID] = g
		}
		if tx.InvoiceDate.After(g.lastPurchase) {
			g.lastPurchase = tx.InvoiceDate
		}
		g.invoices[tx.Invoice] = struct{}{}
		g.monetary += tx.LineTotal
	}
	if len(groups) == 0 {
		return []models.RFMProfile{}
	}

	customers := make([]string, 0, len(groups))
	for id := range groups {
		customers = append(customers, id)
	}
	sort.Strings(customers)

	profiles := make([]models.RFMProfile, len(customers))
	recency := make([]float64, len(customers))
	frequency := make([]float64, len(customers))
	monetary := make([]float64, len(customers))
	for i, id := range customers {
		g := groups[id]
		days := int(snapshot.Sub(g.lastPurchase).Hours() / 24)
		profiles[i] = models.RFMProfile{
			CustomerID: id,
			Recency:    days,
			Frequency:  len(g.invoices),
			Monetary:   g.monetary,
		}
		recency[i] = float64(days)
		frequency[i] = float64(len(g.invoices))
		monetary[i] = g.monetary
	}

	// Recency scores descend: the most recent buyers land in the top bin.
	rScores := invertScores(quintileScores(recency))
	// Frequency is rank-transformed first so heavy ties cannot collapse the
	// cut points; ties break on the sorted customer order above.
	fScores := quintileScores(rankFirst(frequency))
	mScores := quintileScores(monetary)

	for i := range profiles {
		profiles[i].RScore = rScores[i]
		profiles[i].FScore = fScores[i]
		profiles[i].MScore = mScores[i]
		profiles[i].RFMScore = rfmCode(rScores[i], fScores[i])
		profiles[i].Segment = SegmentFor(rScores[i], fScores[i])
	}
	return profiles
}

// quintileScores assigns each value an ascending score 1..5 using
// equal-population quintile cut points (linear interpolation between order
// statistics, right-closed intervals). When the values have fewer than 5
// distinct members the metric cannot be cut and every entry gets the
// documented degenerate score instead.
func quintileScores(values []float64) []int {
	scores := make([]int, len(values))
	if distinctCount(values) < 5 {
		for i := range scores {
			scores[i] = degenerateScore
		}
		return scores
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	cuts := [4]float64{
		quantile(sorted, 0.2),
		quantile(sorted, 0.4),
		quantile(sorted, 0.6),
		quantile(sorted, 0.8),
	}

	for i, v := range values {
		score := 1
		for j, cut := range cuts {
			if v > cut {
				score = j + 2
			}
		}
		scores[i] = score
	}
	return scores
}

// quantile interpolates linearly between order statistics of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// rankFirst maps values to their 1-based rank, ties resolved by slice
// position, so the result always has len(values) distinct members.
func rankFirst(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return values[idx[a]] < values[idx[b]]
	})
	ranks := make([]float64, len(values))
	for rank, i := range idx {
		ranks[i] = float64(rank + 1)
	}
	return ranks
}

// invertScores flips ascending quintile scores (1..5 -> 5..1), leaving the
// degenerate constant untouched so a fallback metric stays at its constant.
func invertScores(scores []int) []int {
	out := make([]int, len(scores))
	degenerate := true
	for _, s := range scores {
		if s != degenerateScore {
			degenerate = false
			break
		}
	}
	for i, s := range scores {
		if degenerate {
			out[i] = s
			continue
		}
		out[i] = 6 - s
	}
	return out
}

func distinctCount(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
