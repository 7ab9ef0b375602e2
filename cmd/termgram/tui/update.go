package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"termgram/internal/api"
	"termgram/internal/appstate"
	"termgram/internal/report"
)

// Update is the single message loop. Key handling depends on the active
// section and, inside the upload section, the active panel.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case healthMsg:
		if msg.err != nil {
			m.serverStatus = "offline"
			m.log.Warn("health check failed: %v", msg.err)
		} else {
			m.serverStatus = msg.status.Status
		}
		return m, nil

	case fileDroppedMsg:
		// A CSV landed in the drop folder. Treat it like a picked file,
		// but only while the upload flow is waiting for one.
		if m.section == appstate.SectionUpload &&
			(m.panel == appstate.PanelUpload || m.panel == appstate.PanelProcess) {
			m.selectFile(string(msg))
		}
		return m, waitForDrop(m.watcher)

	case progressMsg:
		if m.uploading {
			m.progress = append(m.progress, string(msg))
		}
		return m, nil

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case downloadDoneMsg:
		if msg.err != nil {
			m.lastDownload = ""
			m.errMsg = msg.err.Error()
		} else {
			m.lastDownload = msg.path
			m.errMsg = ""
		}
		return m, nil

	case archiveListMsg:
		m.archivesLoaded = true
		if msg.err != nil {
			m.archiveErr = msg.err.Error()
			return m, nil
		}
		m.archiveErr = ""
		m.archives = msg.entries
		if m.archiveCursor >= len(m.archives) {
			m.archiveCursor = 0
		}
		return m, nil

	case archiveSavedMsg:
		m.archiveSaving = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.archiveSaved = true
		return m, revertArchiveConfirm()

	case archiveRevertMsg:
		m.archiveSaved = false
		return m, nil

	case archiveFetchedMsg:
		if msg.err != nil {
			m.archiveErr = msg.err.Error()
			return m, nil
		}
		m.archiveErr = ""
		snap := msg.snap
		m.snapshot = &snap
		m.section, _ = appstate.Navigate(appstate.SectionAnalytics)
		return m, nil

	case archiveDeletedMsg:
		m.confirmDelete = ""
		if msg.err != nil {
			m.archiveErr = msg.err.Error()
			return m, nil
		}
		m.archiveErr = ""
		m.log.Info("deleted archive %s, refreshing list", msg.id)
		// The server owns the list; re-fetch rather than prune the mirror.
		m.archivesLoaded = false
		return m, m.fetchArchiveList()
	}

	if m.picking {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)
		return m, cmd
	}
	if m.section == appstate.SectionDocs {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.filepicker.Height = msg.Height - 8

	headerHeight := 4
	if !m.ready {
		m.viewport = newDocsViewport(msg.Width, msg.Height-headerHeight)
		m.ready = true
	} else {
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight
	}
	m.renderer = nil // rebuilt lazily at the new width
	m.setDocsContent()
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.picking {
		return m.handlePickerKey(msg)
	}

	switch key {
	case "ctrl+c", "q":
		m.Shutdown()
		return m, tea.Quit
	case "1":
		return m.navigate(appstate.SectionUpload)
	case "2":
		return m.navigate(appstate.SectionAnalytics)
	case "3":
		return m.navigate(appstate.SectionArchive)
	case "4":
		return m.navigate(appstate.SectionDocs)
	case "tab":
		next := (m.section + 1) % 4
		return m.navigate(next)
	case "shift+tab":
		prev := (m.section + 3) % 4
		return m.navigate(prev)
	}

	switch m.section {
	case appstate.SectionUpload:
		return m.handleUploadKey(key)
	case appstate.SectionArchive:
		return m.handleArchiveKey(key)
	case appstate.SectionDocs:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.picking = false
		return m, nil
	}
	var cmd tea.Cmd
	m.filepicker, cmd = m.filepicker.Update(msg)
	if ok, path := m.filepicker.DidSelectFile(msg); ok {
		m.picking = false
		m.selectFile(path)
	}
	return m, cmd
}

func (m Model) handleUploadKey(key string) (tea.Model, tea.Cmd) {
	switch m.panel {
	case appstate.PanelUpload:
		if key == "enter" || key == "o" {
			m.picking = true
			return m, m.filepicker.Init()
		}

	case appstate.PanelProcess:
		switch key {
		case "enter", "s":
			return m.startUpload()
		case "o":
			m.picking = true
			return m, m.filepicker.Init()
		case "esc", "c":
			m.reset()
		}

	case appstate.PanelResults:
		switch key {
		case "d":
			if m.result != nil && m.lastDownload == "" {
				return m, m.downloadOutputs()
			}
		case "s":
			if m.snapshot != nil && !m.archiveSaving && !m.archiveSaved {
				m.archiveSaving = true
				return m, tea.Batch(m.saveArchive(), m.spinner.Tick)
			}
		case "a":
			return m.navigate(appstate.SectionAnalytics)
		case "n", "enter":
			m.reset()
		}

	case appstate.PanelError:
		if key == "enter" || key == "esc" {
			m.reset()
		}
	}
	return m, nil
}

func (m Model) handleArchiveKey(key string) (tea.Model, tea.Cmd) {
	// Pending delete: only y confirms, anything else cancels.
	if m.confirmDelete != "" {
		if key == "y" {
			return m, m.deleteArchive(m.confirmDelete)
		}
		m.confirmDelete = ""
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.archiveCursor > 0 {
			m.archiveCursor--
		}
	case "down", "j":
		if m.archiveCursor < len(m.archives)-1 {
			m.archiveCursor++
		}
	case "enter":
		if e, ok := m.cursorEntry(); ok {
			return m, m.fetchArchive(e.ID)
		}
	case "x", "delete":
		if e, ok := m.cursorEntry(); ok {
			m.confirmDelete = e.ID
		}
	case "r":
		m.archivesLoaded = false
		return m, m.fetchArchiveList()
	}
	return m, nil
}

func (m Model) cursorEntry() (api.ArchiveEntry, bool) {
	if len(m.archives) == 0 || m.archiveCursor >= len(m.archives) {
		return api.ArchiveEntry{}, false
	}
	return m.archives[m.archiveCursor], true
}

// navigate switches the top-level section and performs the refresh effect
// the state machine reports.
func (m Model) navigate(to appstate.Section) (tea.Model, tea.Cmd) {
	section, refresh := appstate.Navigate(to)
	m.section = section
	switch refresh {
	case appstate.RefreshArchive:
		m.archivesLoaded = false
		m.archiveErr = ""
		m.confirmDelete = ""
		return m, m.fetchArchiveList()
	case appstate.RefreshAnalytics:
		// Analytics renders from the current snapshot; nothing to fetch.
		return m, nil
	}
	return m, nil
}

// startUpload transitions to the progress panel and fires the request. The
// first progress line appears immediately; the second is staged while the
// request is in flight.
func (m Model) startUpload() (tea.Model, tea.Cmd) {
	m.panel = appstate.PanelProgress
	m.uploading = true
	m.progress = []string{"Uploading file..."}
	m.errMsg = ""
	m.log.Info("uploading %s", m.selected.Name)
	return m, tea.Batch(m.submitUpload(), stageProcessing(), m.spinner.Tick)
}

func (m Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.uploading = false
	if msg.err != nil {
		m.errMsg = msg.err.Error()
		m.panel = appstate.PanelError
		m.log.Error("upload failed: %v", msg.err)
		return m, nil
	}
	result := msg.result
	m.result = &result
	snap := report.NewSnapshot(result, msg.source.Name, time.Now())
	m.snapshot = &snap
	m.panel = appstate.PanelResults
	m.archiveSaved = false
	m.lastDownload = ""
	m.log.Info("processed %s: %d campaigns, %d flagged terms",
		msg.source.Name, result.Summary.CampaignsProcessed, result.Summary.TotalFlagged)
	return m, nil
}
