package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"termgram/internal/api"
	"termgram/internal/report"
)

var (
	processMinClicks int
	processMinSpend  float64
	processDownload  bool
	processArchive   bool
)

// processCmd uploads one report and prints the processing summary.
var processCmd = &cobra.Command{
	Use:   "process [report.csv]",
	Short: "Upload a search term report and print the processing summary",
	Long: `Uploads one report CSV to the service, waits for processing, and prints
the summary figures and per-campaign n-gram breakdown.

Example:
  termgram process report.csv --min-clicks 3 --min-spend 0.01 --download`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().IntVar(&processMinClicks, "min-clicks", -1, "Flag terms at or above this click count (server default when unset)")
	processCmd.Flags().Float64Var(&processMinSpend, "min-spend", -1, "Flag terms at or above this spend (server default when unset)")
	processCmd.Flags().BoolVar(&processDownload, "download", false, "Download the processed output afterwards")
	processCmd.Flags().BoolVar(&processArchive, "archive", false, "Save the result to the server-side archive")
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	selected, err := report.Select(args[0])
	if err != nil {
		return err
	}
	logger.Info("Uploading report",
		zap.String("file", selected.Name),
		zap.String("size", report.FormatFileSize(selected.Size)))

	opts := api.UploadOptions{
		MinClicks: cfg.Thresholds.MinClicks,
		MinSpend:  cfg.Thresholds.MinSpend,
	}
	if cmd.Flags().Changed("min-clicks") {
		opts.MinClicks = &processMinClicks
	}
	if cmd.Flags().Changed("min-spend") {
		opts.MinSpend = &processMinSpend
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Server.TimeoutDuration())
	defer cancel()

	result, err := client.Upload(ctx, selected.Path, opts)
	if err != nil {
		return err
	}

	snap := report.NewSnapshot(result, selected.Name, time.Now())
	printSnapshot(snap)

	if processDownload {
		path, err := client.Download(ctx, result.OutputFile, cfg.Paths.DownloadDir)
		if err != nil {
			return err
		}
		logger.Info("Downloaded output", zap.String("path", path))
		if result.ASINFile != "" {
			path, err = client.Download(ctx, result.ASINFile, cfg.Paths.DownloadDir)
			if err != nil {
				return err
			}
			logger.Info("Downloaded ASIN list", zap.String("path", path))
		}
	}

	if processArchive {
		err := client.CreateArchive(ctx, api.CreateArchiveRequest{
			Filename:         result.OutputFile,
			OriginalFilename: selected.Name,
			Summary:          snap,
			ProcessedAt:      time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}
		logger.Info("Saved to archive")
	}
	return nil
}

// printSnapshot writes the summary figures and campaign breakdown to stdout.
func printSnapshot(snap report.AnalyticsSnapshot) {
	for _, line := range report.SummaryLines(snap.Summary) {
		fmt.Printf("%-22s %s\n", line.Label, line.Value)
	}

	rows := report.BreakdownRows(snap)
	if len(rows) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%-40s %10s %10s %10s %12s %12s %12s\n",
		"Campaign", "Monograms", "Bigrams", "Trigrams", "Search terms", "Spend", "Sales")
	for _, r := range rows {
		fmt.Printf("%-40s %10s %10s %10s %12s %12s %12s\n",
			r.Campaign, r.Monograms, r.Bigrams, r.Trigrams, r.SearchTerms, r.Spend, r.Sales)
	}

	for _, dist := range report.Distributions(snap) {
		fmt.Println()
		fmt.Printf("%s (%s terms)\n", dist.Campaign, report.FormatCount(dist.Total))
		for _, seg := range dist.Segments {
			fmt.Printf("  %-10s %6s  %s\n", seg.Label,
				report.FormatPercent(seg.Percent), report.FormatCount(seg.Count))
		}
	}
}
