package report

import "math"

// Placeholder fills breakdown columns when the service returned campaign
// names without a detail map.
const Placeholder = "-"

// BreakdownRow is one pre-formatted row of the campaign-breakdown table.
type BreakdownRow struct {
	Campaign    string
	Monograms   string
	Bigrams     string
	Trigrams    string
	SearchTerms string
	Spend       string
	Sales       string
}

// BreakdownRows builds the campaign-breakdown table for a snapshot, one row
// per campaign in server order. With a detail map, missing fields are treated
// as 0 before formatting; without one, every column but the name is a
// placeholder.
func BreakdownRows(snap AnalyticsSnapshot) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(snap.Campaigns))
	for _, name := range snap.Campaigns {
		if snap.Details == nil {
			rows = append(rows, BreakdownRow{
				Campaign:    name,
				Monograms:   Placeholder,
				Bigrams:     Placeholder,
				Trigrams:    Placeholder,
				SearchTerms: Placeholder,
				Spend:       Placeholder,
				Sales:       Placeholder,
			})
			continue
		}
		d := snap.Details[name] // zero value when absent
		rows = append(rows, BreakdownRow{
			Campaign:    name,
			Monograms:   FormatCount(d.Monograms),
			Bigrams:     FormatCount(d.Bigrams),
			Trigrams:    FormatCount(d.Trigrams),
			SearchTerms: FormatCount(d.SearchTerms),
			Spend:       FormatCurrency(d.Spend),
			Sales:       FormatCurrency(d.Sales),
		})
	}
	return rows
}

// DistributionSegment is one n-gram category's share of a campaign total.
type DistributionSegment struct {
	Label   string
	Count   int
	Percent float64
}

// Distribution is the three-segment n-gram split for one campaign.
type Distribution struct {
	Campaign string
	Total    int
	Segments [3]DistributionSegment
}

// Distributions computes the per-campaign n-gram distribution view. Campaigns
// whose mono+bi+trigram total is zero are excluded entirely. Percentages are
// rounded to one decimal place with the trigram share taking the remainder,
// so the three always sum to 100.0.
func Distributions(snap AnalyticsSnapshot) []Distribution {
	if snap.Details == nil {
		return nil
	}
	var out []Distribution
	for _, name := range snap.Campaigns {
		d, ok := snap.Details[name]
		if !ok {
			continue
		}
		total := d.Monograms + d.Bigrams + d.Trigrams
		if total == 0 {
			continue
		}
		monoPct := round1(float64(d.Monograms) / float64(total) * 100)
		biPct := round1(float64(d.Bigrams) / float64(total) * 100)
		triPct := round1(100 - monoPct - biPct)
		out = append(out, Distribution{
			Campaign: name,
			Total:    total,
			Segments: [3]DistributionSegment{
				{Label: "Monograms", Count: d.Monograms, Percent: monoPct},
				{Label: "Bigrams", Count: d.Bigrams, Percent: biPct},
				{Label: "Trigrams", Count: d.Trigrams, Percent: triPct},
			},
		})
	}
	return out
}

// SummaryLine is one labeled, formatted figure from the processing summary.
type SummaryLine struct {
	Label string
	Value string
}

// SummaryLines builds the headline figures for the results and analytics
// views. Optional fields (orders) are omitted when the service did not
// report them.
func SummaryLines(s Summary) []SummaryLine {
	lines := []SummaryLine{
		{Label: "Rows in report", Value: FormatCount(s.OriginalRows)},
		{Label: "ASIN rows removed", Value: FormatCount(s.ASINsRemoved)},
		{Label: "Campaigns processed", Value: FormatCount(s.CampaignsProcessed)},
		{Label: "Terms flagged", Value: FormatCount(s.TotalFlagged)},
		{Label: "Total spend", Value: FormatCurrency(s.TotalSpend)},
		{Label: "Total sales", Value: FormatCurrency(s.TotalSales)},
		{Label: "ACOS", Value: FormatACOS(s.TotalSpend, s.TotalSales)},
	}
	if s.TotalOrders > 0 {
		lines = append(lines, SummaryLine{Label: "Total orders", Value: FormatCount(s.TotalOrders)})
	}
	return lines
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
