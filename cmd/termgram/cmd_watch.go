package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"termgram/internal/api"
	"termgram/internal/config"
	"termgram/internal/report"
	"termgram/internal/watch"
)

var watchDownload bool

// watchCmd runs the drop-folder pipeline headless: every CSV that lands in
// the folder is uploaded and its summary printed.
var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a folder and process every CSV dropped into it",
	Long: `Watches a directory (the configured drop folder by default) and uploads
every CSV that lands in it, printing each processing summary. Runs until
interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDownload, "download", false, "Download each processed output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, client, err := setup()
	if err != nil {
		return err
	}

	dir := cfg.Paths.DropDir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return fmt.Errorf("no directory given and paths.drop_dir is not configured")
	}

	w, err := watch.New(dir)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
		w.Stop()
	}()

	if err := w.Start(ctx); err != nil {
		return err
	}
	logger.Info("Watching for reports", zap.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-w.Files():
			if !ok {
				return nil
			}
			if err := processDropped(ctx, cfg, client, path); err != nil {
				logger.Error("Processing failed", zap.String("file", path), zap.Error(err))
			}
		}
	}
}

func processDropped(ctx context.Context, cfg *config.Config, client *api.Client, path string) error {
	selected, err := report.Select(path)
	if err != nil {
		return err
	}
	logger.Info("Processing dropped report", zap.String("file", selected.Name))

	reqCtx, cancel := context.WithTimeout(ctx, cfg.Server.TimeoutDuration())
	defer cancel()

	opts := api.UploadOptions{
		MinClicks: cfg.Thresholds.MinClicks,
		MinSpend:  cfg.Thresholds.MinSpend,
	}
	result, err := client.Upload(reqCtx, selected.Path, opts)
	if err != nil {
		return err
	}
	printSnapshot(report.NewSnapshot(result, selected.Name, time.Now()))

	if watchDownload {
		dest, err := client.Download(reqCtx, result.OutputFile, cfg.Paths.DownloadDir)
		if err != nil {
			return err
		}
		logger.Info("Downloaded output", zap.String("path", dest))
	}
	return nil
}
