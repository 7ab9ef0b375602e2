package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"termgram/internal/api"
	"termgram/internal/appstate"
	"termgram/internal/report"
	"termgram/internal/watch"
)

func (m Model) checkHealth() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		status, err := m.client.Health(ctx)
		return healthMsg{status: status, err: err}
	}
}

// waitForDrop listens for the next file from the drop-folder watcher.
func waitForDrop(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Files()
		if !ok {
			return nil
		}
		return fileDroppedMsg(path)
	}
}

// submitUpload sends the selected report to the service. One request, no
// retry; the result message carries either the parsed summary or the error.
func (m Model) submitUpload() tea.Cmd {
	selected := m.selected
	opts := api.UploadOptions{
		MinClicks: m.cfg.Thresholds.MinClicks,
		MinSpend:  m.cfg.Thresholds.MinSpend,
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Server.TimeoutDuration())
		defer cancel()
		result, err := m.client.Upload(ctx, selected.Path, opts)
		return uploadDoneMsg{result: result, source: selected, err: err}
	}
}

// stageProcessing surfaces the second progress line while the request is in
// flight. The envelope response, not this timer, decides the outcome.
func stageProcessing() tea.Cmd {
	return tea.Tick(600*time.Millisecond, func(time.Time) tea.Msg {
		return progressMsg("Processing CSV data...")
	})
}

func (m Model) downloadOutputs() tea.Cmd {
	result := m.result
	destDir := m.cfg.Paths.DownloadDir
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Server.TimeoutDuration())
		defer cancel()

		path, err := m.client.Download(ctx, result.OutputFile, destDir)
		if err != nil {
			return downloadDoneMsg{err: err}
		}
		if result.ASINFile != "" {
			if _, err := m.client.Download(ctx, result.ASINFile, destDir); err != nil {
				return downloadDoneMsg{err: err}
			}
		}
		return downloadDoneMsg{path: path}
	}
}

func (m Model) fetchArchiveList() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Server.TimeoutDuration())
		defer cancel()
		entries, err := m.client.ListArchives(ctx)
		return archiveListMsg{entries: entries, err: err}
	}
}

func (m Model) saveArchive() tea.Cmd {
	snap := *m.snapshot
	outputFile := m.result.OutputFile
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Server.TimeoutDuration())
		defer cancel()
		err := m.client.CreateArchive(ctx, api.CreateArchiveRequest{
			Filename:         outputFile,
			OriginalFilename: snap.SourceFile,
			Summary:          snap,
			ProcessedAt:      time.Now().Format(time.RFC3339),
		})
		return archiveSavedMsg{err: err}
	}
}

func revertArchiveConfirm() tea.Cmd {
	return tea.Tick(archiveConfirmRevert, func(time.Time) tea.Msg {
		return archiveRevertMsg{}
	})
}

func (m Model) fetchArchive(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Server.TimeoutDuration())
		defer cancel()
		snap, err := m.client.GetArchive(ctx, id)
		return archiveFetchedMsg{snap: snap, err: err}
	}
}

func (m Model) deleteArchive(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Server.TimeoutDuration())
		defer cancel()
		err := m.client.DeleteArchive(ctx, id)
		return archiveDeletedMsg{id: id, err: err}
	}
}

// selectFile validates a candidate path and, on success, replaces the
// current selection and advances to the process panel. On failure the prior
// selection is untouched and the error panel shows the rejection.
func (m *Model) selectFile(path string) {
	selected, err := report.Select(path)
	if err != nil {
		m.errMsg = err.Error()
		m.panel = appstate.PanelError
		m.log.Warn("selection rejected: %v", err)
		return
	}
	m.selected = selected
	m.errMsg = ""
	m.panel = appstate.PanelProcess
	m.log.Info("selected %s (%s)", selected.Name, report.FormatFileSize(selected.Size))
}
