package api

import (
	"fmt"

	"termgram/internal/report"
)

// envelope fields shared by every service response.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// uploadResponse is the /upload reply. campaign_details is only present on
// the richer service variant.
type uploadResponse struct {
	envelope
	OutputFile      string                           `json:"output_file"`
	ASINFile        string                           `json:"asin_file"`
	Summary         report.Summary                   `json:"summary"`
	Campaigns       []string                         `json:"campaigns"`
	CampaignDetails map[string]report.CampaignDetail `json:"campaign_details"`
}

// ArchiveEntry is one stored report as listed by GET /archive. The client
// mirrors entries transiently; their lifecycle is owned by the server.
type ArchiveEntry struct {
	ID               string                   `json:"id"`
	Filename         string                   `json:"filename"`
	OriginalFilename string                   `json:"originalFilename"`
	ProcessedAt      string                   `json:"processedAt"`
	Summary          report.AnalyticsSnapshot `json:"summary"`
}

// CreateArchiveRequest is the POST /archive body.
type CreateArchiveRequest struct {
	Filename         string                   `json:"filename"`
	OriginalFilename string                   `json:"originalFilename"`
	Summary          report.AnalyticsSnapshot `json:"summary"`
	ProcessedAt      string                   `json:"processedAt"`
}

type listArchivesResponse struct {
	envelope
	Archives []ArchiveEntry `json:"archives"`
}

type getArchiveResponse struct {
	envelope
	Archive *ArchiveEntry `json:"archive"`
}

// HealthStatus is the GET /health reply.
type HealthStatus struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// APIError is a failure reported by the service or the transport. Message
// carries the server-supplied text when there was one.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, GenericErrorMessage)
}

// GenericErrorMessage is shown when the server failed without an explanation.
const GenericErrorMessage = "an unknown error occurred, please try again"
