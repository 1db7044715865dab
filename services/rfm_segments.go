package services

import (
	"sort"
	"strconv"

	"github.com/Ajay2478/AjayDataLabs-Enterprise-BI-V2.0/models"
)

// segmentRule matches an inclusive range of R and F scores. Rules are
// evaluated in order; the first match wins.
type segmentRule struct {
	rMin, rMax int
	fMin, fMax int
	label      string
}

var segmentRules = []segmentRule{
	{1, 2, 1, 2, "Hibernating"},
	{1, 2, 3, 4, "At Risk"},
	{1, 2, 5, 5, "Can't Lose Them"},
	{3, 3, 1, 2, "About to Sleep"},
	{3, 3, 3, 3, "Need Attention"},
	{3, 4, 4, 5, "Loyalists"},
	{4, 4, 1, 1, "Promising"},
	{5, 5, 1, 1, "New Customers"},
	{4, 5, 2, 3, "Potential Loyalists"},
	{5, 5, 4, 5, "Champions"},
}

// SegmentFor maps an R/F score pair to its segment label. Combinations not
// covered by any rule keep the raw two-digit code so they stay visible in
// the dashboard instead of being silently dropped.
func SegmentFor(r, f int) string {
	for _, rule := range segmentRules {
		if r >= rule.rMin && r <= rule.rMax && f >= rule.fMin && f <= rule.fMax {
			return rule.label
		}
	}
	return rfmCode(r, f)
}

func rfmCode(r, f int) string {
	return strconv.Itoa(r) + strconv.Itoa(f)
}

// SummarizeSegments aggregates profiles into per-segment counts and averages
// for the segmentation donut, sorted by descending customer count (label
// as tiebreaker, so output order is stable).
func SummarizeSegments(profiles []models.RFMProfile) []models.SegmentSummary {
	type acc struct {
		customers   int
		sumRecency  int
		sumMonetary float64
	}
	byLabel := make(map[string]*acc)
	for _, p := range profiles {
		a, ok := byLabel[p.Segment]
		if !ok {
			a = &acc{}
			byLabel[p.Segment] = a
		}
		a.customers++
		a.sumRecency += p.Recency
		a.sumMonetary += p.Monetary
	}

	out := make([]models.SegmentSummary, 0, len(byLabel))
	total := len(profiles)
	for label, a := range byLabel {
		s := models.SegmentSummary{
			Segment:     label,
			Customers:   a.customers,
			AvgRecency:  float64(a.sumRecency) / float64(a.customers),
			AvgMonetary: a.sumMonetary / float64(a.customers),
		}
		if total > 0 {
			s.Share = float64(a.customers) / float64(total) * 100
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Customers != out[j].Customers {
			return out[i].Customers > out[j].Customers
		}
		return out[i].Segment < out[j].Segment
	})
	return out
}
