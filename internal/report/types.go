// Package report holds the client-side data model for processed search-term
// reports and the pure formatting/view-model logic that turns a server summary
// into renderable text. Nothing in this package touches the network or the
// terminal; the TUI and CLI layers render what these functions return.
package report

import "time"

// MaxUploadBytes is the largest report the service accepts (50 MB).
const MaxUploadBytes = 50 * 1024 * 1024

// SelectedFile is the report the user has picked but not yet submitted.
// It is replaced wholesale on a new selection and cleared on reset.
type SelectedFile struct {
	Path string
	Name string
	Size int64
}

// Summary is the top-level processing summary returned by the service.
type Summary struct {
	OriginalRows       int     `json:"original_rows"`
	ASINsRemoved       int     `json:"asins_removed"`
	CampaignsProcessed int     `json:"campaigns_processed"`
	TotalSearchTerms   int     `json:"total_search_terms,omitempty"`
	TotalFlagged       int     `json:"total_flagged"`
	TotalSpend         float64 `json:"total_spend"`
	TotalSales         float64 `json:"total_sales"`
	TotalOrders        int     `json:"total_orders,omitempty"`
}

// CampaignDetail is the per-campaign breakdown attached to a summary when the
// service computed n-gram distributions.
type CampaignDetail struct {
	Monograms   int     `json:"monograms"`
	Bigrams     int     `json:"bigrams"`
	Trigrams    int     `json:"trigrams"`
	SearchTerms int     `json:"search_terms"`
	Spend       float64 `json:"spend"`
	Sales       float64 `json:"sales"`
}

// ProcessingResult is the immutable outcome of one successful upload.
// Campaigns preserves server order; Details may be nil on the simpler
// service variant.
type ProcessingResult struct {
	OutputFile string
	ASINFile   string
	Summary    Summary
	Campaigns  []string
	Details    map[string]CampaignDetail
}

// AnalyticsSnapshot is a ProcessingResult plus provenance. It drives the
// analytics view and serializes into an archive-creation request. A snapshot
// fetched back from the archive renders identically to the one it was
// created from.
type AnalyticsSnapshot struct {
	SourceFile  string                    `json:"sourceFile"`
	ProcessedAt time.Time                 `json:"processedAt"`
	Summary     Summary                   `json:"summary"`
	Campaigns   []string                  `json:"campaigns"`
	Details     map[string]CampaignDetail `json:"campaignDetails,omitempty"`
}

// NewSnapshot stamps a processing result with its provenance.
func NewSnapshot(res ProcessingResult, sourceFile string, at time.Time) AnalyticsSnapshot {
	return AnalyticsSnapshot{
		SourceFile:  sourceFile,
		ProcessedAt: at,
		Summary:     res.Summary,
		Campaigns:   res.Campaigns,
		Details:     res.Details,
	}
}
