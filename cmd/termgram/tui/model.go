// Package tui provides the interactive terminal interface for termgram.
// The interface is split across multiple files:
//   - model.go: Model, message types, Init (this file)
//   - update.go: Update loop and key handling
//   - commands.go: tea.Cmd constructors (uploads, archive calls, watcher)
//   - view.go: Rendering functions
//   - docs.go: Embedded documentation section
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"termgram/cmd/termgram/ui"
	"termgram/internal/api"
	"termgram/internal/appstate"
	"termgram/internal/config"
	"termgram/internal/logging"
	"termgram/internal/report"
	"termgram/internal/watch"
)

// archiveConfirmRevert is how long the "Archived!" confirmation shows before
// the save action becomes available again.
const archiveConfirmRevert = 2 * time.Second

// Model is the main model for the interactive interface.
type Model struct {
	// UI components
	filepicker filepicker.Model
	spinner    spinner.Model
	viewport   viewport.Model
	styles     ui.Styles
	renderer   *glamour.TermRenderer

	// View state: top-level section and upload-flow panel, each an
	// explicit state machine.
	section appstate.Section
	panel   appstate.Panel
	picking bool // file picker overlay active

	width  int
	height int
	ready  bool

	// Current report state, cleared wholesale on reset
	selected  report.SelectedFile
	result    *report.ProcessingResult
	snapshot  *report.AnalyticsSnapshot
	progress  []string
	errMsg    string
	uploading bool

	// Archive state, mirrored transiently from the server
	archives       []api.ArchiveEntry
	archivesLoaded bool
	archiveCursor  int
	confirmDelete  string // id pending delete confirmation, "" when none
	archiveSaving  bool
	archiveSaved   bool
	archiveErr     string
	lastDownload   string

	// Server status from the boot health check
	serverStatus string

	// Backend
	client  *api.Client
	cfg     *config.Config
	watcher *watch.Watcher
	log     *logging.Logger
}

// Messages for tea updates
type (
	healthMsg struct {
		status api.HealthStatus
		err    error
	}

	fileDroppedMsg string // path from the drop-folder watcher

	progressMsg string // staged human-readable progress line

	uploadDoneMsg struct {
		result report.ProcessingResult
		source report.SelectedFile
		err    error
	}

	downloadDoneMsg struct {
		path string
		err  error
	}

	archiveListMsg struct {
		entries []api.ArchiveEntry
		err     error
	}

	archiveSavedMsg struct{ err error }

	archiveRevertMsg struct{}

	archiveFetchedMsg struct {
		snap report.AnalyticsSnapshot
		err  error
	}

	archiveDeletedMsg struct {
		id  string
		err error
	}
)

// New creates the interactive model.
func New(cfg *config.Config, client *api.Client) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv"}
	fp.CurrentDirectory = "."

	m := Model{
		filepicker:   fp,
		spinner:      sp,
		styles:       ui.DefaultStyles(),
		section:      appstate.SectionUpload,
		panel:        appstate.PanelUpload,
		client:       client,
		cfg:          cfg,
		serverStatus: "connecting...",
		log:          logging.Get(logging.CategoryUI),
	}

	if cfg.Paths.DropDir != "" {
		if w, err := watch.New(cfg.Paths.DropDir); err == nil {
			m.watcher = w
		} else {
			m.log.Warn("drop folder unavailable: %v", err)
		}
	}
	return m
}

// Init starts the spinner, the boot health check, and the drop watcher.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.filepicker.Init(),
		m.checkHealth(),
	}
	if m.watcher != nil {
		// Stop() is the cancellation path; the background context just
		// satisfies the watcher's run loop.
		if err := m.watcher.Start(context.Background()); err == nil {
			cmds = append(cmds, waitForDrop(m.watcher))
		} else {
			m.log.Warn("drop watcher failed to start: %v", err)
		}
	}
	return tea.Batch(cmds...)
}

// Shutdown stops background work. Safe to call on quit.
func (m *Model) Shutdown() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// hasSelection reports whether a validated file is currently selected.
func (m Model) hasSelection() bool {
	return m.selected.Name != ""
}

// reset clears the upload cycle back to the initial panel. The archive
// mirror and section stay as they are.
func (m *Model) reset() {
	m.selected = report.SelectedFile{}
	m.result = nil
	m.snapshot = nil
	m.progress = nil
	m.errMsg = ""
	m.uploading = false
	m.archiveSaving = false
	m.archiveSaved = false
	m.lastDownload = ""
	m.panel = appstate.PanelUpload
}

// RunInteractive starts the interactive session.
func RunInteractive(cfg *config.Config, client *api.Client) error {
	model := New(cfg, client)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	model.Shutdown()
	return err
}
