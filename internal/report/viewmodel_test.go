package report

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func sampleSnapshot() AnalyticsSnapshot {
	return AnalyticsSnapshot{
		SourceFile:  "terms.csv",
		ProcessedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Summary: Summary{
			OriginalRows:       12500,
			ASINsRemoved:       340,
			CampaignsProcessed: 2,
			TotalFlagged:       87,
			TotalSpend:         1234.5,
			TotalSales:         4938,
		},
		Campaigns: []string{"Brand - Exact", "Generic - Broad"},
		Details: map[string]CampaignDetail{
			"Brand - Exact":   {Monograms: 1, Bigrams: 1, Trigrams: 2, SearchTerms: 40, Spend: 500, Sales: 2000},
			"Generic - Broad": {Monograms: 0, Bigrams: 0, Trigrams: 0, SearchTerms: 10, Spend: 734.5, Sales: 2938},
		},
	}
}

func TestBreakdownRows_WithDetails(t *testing.T) {
	rows := BreakdownRows(sampleSnapshot())
	want := []BreakdownRow{
		{Campaign: "Brand - Exact", Monograms: "1", Bigrams: "1", Trigrams: "2",
			SearchTerms: "40", Spend: "$500.00", Sales: "$2,000.00"},
		{Campaign: "Generic - Broad", Monograms: "0", Bigrams: "0", Trigrams: "0",
			SearchTerms: "10", Spend: "$734.50", Sales: "$2,938.00"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("BreakdownRows mismatch (-want +got):\n%s", diff)
	}
}

func TestBreakdownRows_MissingDetailDefaultsToZero(t *testing.T) {
	snap := sampleSnapshot()
	delete(snap.Details, "Generic - Broad")

	rows := BreakdownRows(snap)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[1].Monograms != "0" || rows[1].Spend != "$0.00" {
		t.Errorf("missing detail should format as zero, got %+v", rows[1])
	}
}

func TestBreakdownRows_NoDetailMapUsesPlaceholders(t *testing.T) {
	snap := sampleSnapshot()
	snap.Details = nil

	rows := BreakdownRows(snap)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Monograms != Placeholder || row.Spend != Placeholder {
			t.Errorf("expected placeholder columns, got %+v", row)
		}
	}
}

func TestDistributions_PercentagesSumTo100(t *testing.T) {
	dists := Distributions(sampleSnapshot())

	// The all-zero campaign is excluded entirely.
	if len(dists) != 1 {
		t.Fatalf("expected 1 distribution, got %d", len(dists))
	}

	d := dists[0]
	if d.Campaign != "Brand - Exact" || d.Total != 4 {
		t.Fatalf("unexpected distribution %+v", d)
	}

	var sum float64
	for _, seg := range d.Segments {
		sum += seg.Percent
	}
	if sum != 100.0 {
		t.Errorf("segment percentages sum to %.1f, want 100.0", sum)
	}
	// 1/4 and 1/4 round to 25.0 each; the trigram share takes the remainder.
	if d.Segments[0].Percent != 25.0 || d.Segments[1].Percent != 25.0 || d.Segments[2].Percent != 50.0 {
		t.Errorf("unexpected segment split %+v", d.Segments)
	}
}

func TestDistributions_ThirdsRounding(t *testing.T) {
	snap := sampleSnapshot()
	snap.Campaigns = []string{"Thirds"}
	snap.Details = map[string]CampaignDetail{
		"Thirds": {Monograms: 1, Bigrams: 1, Trigrams: 1},
	}

	dists := Distributions(snap)
	if len(dists) != 1 {
		t.Fatalf("expected 1 distribution, got %d", len(dists))
	}
	segs := dists[0].Segments
	if segs[0].Percent != 33.3 || segs[1].Percent != 33.3 || segs[2].Percent != 33.4 {
		t.Errorf("thirds should split 33.3/33.3/33.4, got %+v", segs)
	}
}

func TestDistributions_NoDetails(t *testing.T) {
	snap := sampleSnapshot()
	snap.Details = nil
	if dists := Distributions(snap); dists != nil {
		t.Errorf("expected nil distributions without details, got %+v", dists)
	}
}

func TestSummaryLines(t *testing.T) {
	lines := SummaryLines(sampleSnapshot().Summary)

	byLabel := make(map[string]string, len(lines))
	for _, l := range lines {
		byLabel[l.Label] = l.Value
	}
	if byLabel["Rows in report"] != "12,500" {
		t.Errorf("rows = %q", byLabel["Rows in report"])
	}
	if byLabel["Total spend"] != "$1,234.50" {
		t.Errorf("spend = %q", byLabel["Total spend"])
	}
	if byLabel["ACOS"] != "25.0%" {
		t.Errorf("acos = %q", byLabel["ACOS"])
	}
	if _, ok := byLabel["Total orders"]; ok {
		t.Error("orders line should be omitted when not reported")
	}
}

func TestNewSnapshot_RoundTripRendersIdentically(t *testing.T) {
	res := ProcessingResult{
		OutputFile: "out.xlsx",
		Summary:    sampleSnapshot().Summary,
		Campaigns:  sampleSnapshot().Campaigns,
		Details:    sampleSnapshot().Details,
	}
	at := time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)
	snap := NewSnapshot(res, "terms.csv", at)

	if snap.SourceFile != "terms.csv" || !snap.ProcessedAt.Equal(at) {
		t.Fatalf("provenance not stamped: %+v", snap)
	}
	if diff := cmp.Diff(BreakdownRows(sampleSnapshot()), BreakdownRows(snap)); diff != "" {
		t.Errorf("snapshot breakdown differs from source (-want +got):\n%s", diff)
	}
}
