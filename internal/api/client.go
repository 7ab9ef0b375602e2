// Package api is the HTTP client for the n-gram report-processing service.
// The service owns all analytics computation; this client only ships a CSV
// up, interprets the success/error JSON envelope, and mirrors archive state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"termgram/internal/logging"
	"termgram/internal/report"
)

// UploadOptions carries the optional flagging thresholds. Nil fields are not
// sent, leaving the server's defaults in force.
type UploadOptions struct {
	MinClicks *int
	MinSpend  *float64
}

// Client talks to one report service instance. Safe for concurrent use,
// though the UI only ever keeps one upload and one archive call in flight.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logging.Logger
	archiveLog *logging.Logger
}

// New creates a client for the service at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        logging.Get(logging.CategoryAPI),
		archiveLog: logging.Get(logging.CategoryArchive),
	}
}

// Upload submits a CSV report for processing and returns the parsed result.
// The caller is responsible for pre-flight validation of the selection.
func (c *Client) Upload(ctx context.Context, path string, opts UploadOptions) (report.ProcessingResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return report.ProcessingResult{}, fmt.Errorf("open report: %w", err)
	}
	defer file.Close()

	// Reports are capped at 50 MB, so buffering the body is acceptable.
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return report.ProcessingResult{}, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return report.ProcessingResult{}, fmt.Errorf("read report: %w", err)
	}
	if opts.MinClicks != nil {
		if err := mw.WriteField("min_clicks", strconv.Itoa(*opts.MinClicks)); err != nil {
			return report.ProcessingResult{}, fmt.Errorf("build multipart body: %w", err)
		}
	}
	if opts.MinSpend != nil {
		if err := mw.WriteField("min_spend", strconv.FormatFloat(*opts.MinSpend, 'f', -1, 64)); err != nil {
			return report.ProcessingResult{}, fmt.Errorf("build multipart body: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return report.ProcessingResult{}, fmt.Errorf("build multipart body: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload", &body)
	if err != nil {
		return report.ProcessingResult{}, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.log.Info("POST /upload file=%s size=%d", filepath.Base(path), body.Len())

	var resp uploadResponse
	if err := c.do(req, "upload", &resp); err != nil {
		return report.ProcessingResult{}, err
	}

	return report.ProcessingResult{
		OutputFile: resp.OutputFile,
		ASINFile:   resp.ASINFile,
		Summary:    resp.Summary,
		Campaigns:  resp.Campaigns,
		Details:    resp.CampaignDetails,
	}, nil
}

// Download fetches a generated output file into destDir and returns the
// local path. The download endpoint serves raw bytes, not a JSON envelope.
func (c *Client) Download(ctx context.Context, filename, destDir string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/download/"+url.PathEscape(filename), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &APIError{Op: "download", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Op: "download", StatusCode: resp.StatusCode}
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	dest := filepath.Join(destDir, filepath.Base(filename))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("write %s: %w", dest, err)
	}
	c.log.Info("downloaded %s", dest)
	return dest, nil
}

// Health pings the service.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return HealthStatus{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HealthStatus{}, &APIError{Op: "health", Message: err.Error()}
	}
	defer resp.Body.Close()

	var status HealthStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return HealthStatus{}, &APIError{Op: "health", StatusCode: resp.StatusCode}
	}
	return status, nil
}

// ListArchives fetches every stored report.
func (c *Client) ListArchives(ctx context.Context) ([]ArchiveEntry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/archive", nil)
	if err != nil {
		return nil, err
	}
	var resp listArchivesResponse
	if err := c.do(req, "archive list", &resp); err != nil {
		return nil, err
	}
	return resp.Archives, nil
}

// CreateArchive stores a processed report's snapshot server-side.
func (c *Client) CreateArchive(ctx context.Context, create CreateArchiveRequest) error {
	payload, err := json.Marshal(create)
	if err != nil {
		return fmt.Errorf("encode archive request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/archive", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp envelope
	if err := c.do(req, "archive create", &resp); err != nil {
		return err
	}
	c.archiveLog.Info("archived %s", create.Filename)
	return nil
}

// GetArchive fetches one stored report by id. Missing campaigns or detail
// maps in the stored snapshot default to empty so the analytics view always
// has something to render.
func (c *Client) GetArchive(ctx context.Context, id string) (report.AnalyticsSnapshot, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/archive/"+url.PathEscape(id), nil)
	if err != nil {
		return report.AnalyticsSnapshot{}, err
	}
	var resp getArchiveResponse
	if err := c.do(req, "archive fetch", &resp); err != nil {
		return report.AnalyticsSnapshot{}, err
	}
	if resp.Archive == nil {
		return report.AnalyticsSnapshot{}, &APIError{Op: "archive fetch", Message: "archive not found"}
	}

	snap := resp.Archive.Summary
	if snap.Campaigns == nil {
		snap.Campaigns = []string{}
	}
	return snap, nil
}

// DeleteArchive removes one stored report by id.
func (c *Client) DeleteArchive(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/archive/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	var resp envelope
	if err := c.do(req, "archive delete", &resp); err != nil {
		return err
	}
	c.archiveLog.Info("deleted archive %s", id)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// do executes a request expecting a JSON envelope and decodes into out,
// which must embed envelope. A success:false reply or a non-JSON body
// becomes an APIError carrying whatever message the server gave.
func (c *Client) do(req *http.Request, op string, out interface {
	ok() bool
	errMessage() string
}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("%s: %v", op, err)
		return &APIError{Op: op, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: err.Error()}
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Error("%s: non-JSON response (status %d)", op, resp.StatusCode)
		return &APIError{Op: op, StatusCode: resp.StatusCode}
	}
	if !out.ok() {
		msg := out.errMessage()
		c.log.Warn("%s: server reported failure: %s", op, msg)
		return &APIError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}
	return nil
}

func (e envelope) ok() bool           { return e.Success }
func (e envelope) errMessage() string { return e.Error }
