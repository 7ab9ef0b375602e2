package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termgram/internal/api"
	"termgram/internal/appstate"
	"termgram/internal/config"
	"termgram/internal/report"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(config.DefaultConfig(), nil)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func sampleResult() report.ProcessingResult {
	return report.ProcessingResult{
		OutputFile: "output_report.csv",
		Summary: report.Summary{
			OriginalRows:       1000,
			CampaignsProcessed: 3,
			TotalFlagged:       42,
			TotalSpend:         1234.5,
			TotalSales:         5000,
		},
		Campaigns: []string{"Campaign A"},
	}
}

func TestUpdate_UploadSuccessShowsResults(t *testing.T) {
	m := newTestModel(t)
	m.panel = appstate.PanelProgress
	m.uploading = true

	m, _ = update(t, m, uploadDoneMsg{
		result: sampleResult(),
		source: report.SelectedFile{Name: "report.csv"},
	})

	assert.Equal(t, appstate.PanelResults, m.panel)
	assert.False(t, m.uploading)
	require.NotNil(t, m.snapshot)
	assert.Equal(t, "report.csv", m.snapshot.SourceFile)
	require.NotNil(t, m.result)
	assert.Equal(t, "output_report.csv", m.result.OutputFile)
}

func TestUpdate_UploadErrorShowsErrorPanel(t *testing.T) {
	m := newTestModel(t)
	m.panel = appstate.PanelProgress
	m.uploading = true

	m, _ = update(t, m, uploadDoneMsg{err: errors.New("upload: only CSV files are accepted")})

	assert.Equal(t, appstate.PanelError, m.panel)
	assert.Equal(t, "upload: only CSV files are accepted", m.errMsg)
	assert.Nil(t, m.result)
}

func TestUpdate_ErrorPanelResetsOnEnter(t *testing.T) {
	m := newTestModel(t)
	m.panel = appstate.PanelError
	m.errMsg = "boom"

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, appstate.PanelUpload, m.panel)
	assert.Empty(t, m.errMsg)
	assert.False(t, m.hasSelection())
}

func TestUpdate_NavigateToArchiveFetchesList(t *testing.T) {
	m := newTestModel(t)
	m.archivesLoaded = true

	m, cmd := update(t, m, keyMsg("3"))

	assert.Equal(t, appstate.SectionArchive, m.section)
	assert.False(t, m.archivesLoaded)
	assert.NotNil(t, cmd)
}

func TestUpdate_NavigateToAnalyticsNoFetch(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, keyMsg("2"))

	assert.Equal(t, appstate.SectionAnalytics, m.section)
	assert.Nil(t, cmd)
}

func TestUpdate_NavigationPreservesUploadPanel(t *testing.T) {
	m := newTestModel(t)
	m.panel = appstate.PanelProcess
	m.selected = report.SelectedFile{Name: "report.csv", Size: 10}

	m, _ = update(t, m, keyMsg("2"))
	m, _ = update(t, m, keyMsg("1"))

	assert.Equal(t, appstate.PanelProcess, m.panel)
	assert.Equal(t, "report.csv", m.selected.Name)
}

func TestUpdate_FileDroppedSelectsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dropped.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0o644))

	m := newTestModel(t)
	m, _ = update(t, m, fileDroppedMsg(path))

	assert.Equal(t, appstate.PanelProcess, m.panel)
	assert.Equal(t, "dropped.csv", m.selected.Name)
}

func TestUpdate_FileDroppedIgnoredOutsideUploadFlow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dropped.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n"), 0o644))

	m := newTestModel(t)
	m.section = appstate.SectionAnalytics
	m, _ = update(t, m, fileDroppedMsg(path))

	assert.False(t, m.hasSelection())
}

func TestUpdate_SubmitTransitionsToProgress(t *testing.T) {
	m := newTestModel(t)
	m.panel = appstate.PanelProcess
	m.selected = report.SelectedFile{Path: "r.csv", Name: "r.csv", Size: 10}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, appstate.PanelProgress, m.panel)
	assert.True(t, m.uploading)
	assert.Equal(t, []string{"Uploading file..."}, m.progress)
	assert.NotNil(t, cmd)
}

func TestUpdate_ProgressMessageAppends(t *testing.T) {
	m := newTestModel(t)
	m.uploading = true
	m.progress = []string{"Uploading file..."}

	m, _ = update(t, m, progressMsg("Processing CSV data..."))

	assert.Equal(t, []string{"Uploading file...", "Processing CSV data..."}, m.progress)
}

func TestUpdate_ArchiveSaveConfirmationReverts(t *testing.T) {
	m := newTestModel(t)
	m.archiveSaving = true

	m, cmd := update(t, m, archiveSavedMsg{})
	assert.True(t, m.archiveSaved)
	assert.False(t, m.archiveSaving)
	assert.NotNil(t, cmd)

	m, _ = update(t, m, archiveRevertMsg{})
	assert.False(t, m.archiveSaved)
}

func TestUpdate_ArchiveDeleteConfirmFlow(t *testing.T) {
	m := newTestModel(t)
	m.section = appstate.SectionArchive
	m.archivesLoaded = true
	m.archives = []api.ArchiveEntry{{ID: "abc", OriginalFilename: "r.csv"}}

	m, _ = update(t, m, keyMsg("x"))
	assert.Equal(t, "abc", m.confirmDelete)

	// Anything but y cancels.
	m, _ = update(t, m, keyMsg("z"))
	assert.Empty(t, m.confirmDelete)

	m, _ = update(t, m, keyMsg("x"))
	_, cmd := update(t, m, keyMsg("y"))
	assert.NotNil(t, cmd)
}

func TestUpdate_ArchiveDeletedRefreshesList(t *testing.T) {
	m := newTestModel(t)
	m.section = appstate.SectionArchive
	m.archivesLoaded = true
	m.archives = []api.ArchiveEntry{{ID: "a"}, {ID: "b"}}
	m.archiveCursor = 1
	m.confirmDelete = "b"

	m, cmd := update(t, m, archiveDeletedMsg{id: "b"})

	assert.NotNil(t, cmd, "successful delete must re-fetch the list")
	assert.False(t, m.archivesLoaded)
	assert.Empty(t, m.confirmDelete)

	// The refreshed list replaces the mirror and clamps the cursor.
	m, _ = update(t, m, archiveListMsg{entries: []api.ArchiveEntry{{ID: "a"}}})
	require.Len(t, m.archives, 1)
	assert.Equal(t, 0, m.archiveCursor)
}

func TestUpdate_ArchiveDeleteErrorSurfacesOnce(t *testing.T) {
	m := newTestModel(t)
	m.section = appstate.SectionArchive
	m.archivesLoaded = true
	m.archives = []api.ArchiveEntry{{ID: "a"}}
	m.confirmDelete = "a"

	m, _ = update(t, m, archiveDeletedMsg{id: "a", err: errors.New("delete archive: not found")})

	assert.Equal(t, "delete archive: not found", m.archiveErr)
	assert.Len(t, m.archives, 1)
	assert.Empty(t, m.confirmDelete)
}

func TestUpdate_ArchiveOpenLoadsSnapshotIntoAnalytics(t *testing.T) {
	m := newTestModel(t)
	m.section = appstate.SectionArchive

	snap := report.AnalyticsSnapshot{SourceFile: "old.csv", Summary: sampleResult().Summary}
	m, _ = update(t, m, archiveFetchedMsg{snap: snap})

	assert.Equal(t, appstate.SectionAnalytics, m.section)
	require.NotNil(t, m.snapshot)
	assert.Equal(t, "old.csv", m.snapshot.SourceFile)
}

func TestUpdate_HealthStatus(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, healthMsg{status: api.HealthStatus{Status: "healthy"}})
	assert.Equal(t, "healthy", m.serverStatus)

	m, _ = update(t, m, healthMsg{err: errors.New("dial tcp: connection refused")})
	assert.Equal(t, "offline", m.serverStatus)
}

func TestUpdate_ArchiveSaveRejectedWithoutSnapshot(t *testing.T) {
	m := newTestModel(t)
	m.panel = appstate.PanelResults
	m.result = &report.ProcessingResult{OutputFile: "out.csv"}
	// No snapshot: the save key must not produce a network command.

	m, cmd := update(t, m, keyMsg("s"))

	assert.Nil(t, cmd)
	assert.False(t, m.archiveSaving)
}

func TestView_AnalyticsPlaceholderWithoutSnapshot(t *testing.T) {
	m := newTestModel(t)
	m.ready = true
	m.width = 80
	m.section = appstate.SectionAnalytics

	view := m.View()

	assert.Contains(t, view, "No data to show")
}

func TestView_ResultsShowOnlyResultsBox(t *testing.T) {
	m := newTestModel(t)
	m.ready = true
	m.width = 80
	m.panel = appstate.PanelResults
	m.result = &report.ProcessingResult{Summary: sampleResult().Summary}

	view := m.View()

	assert.Contains(t, view, "Results")
	assert.NotContains(t, view, "No file selected")
}

func TestView_DistributionTitleRenderedOnce(t *testing.T) {
	m := newTestModel(t)
	m.ready = true
	m.width = 80
	m.section = appstate.SectionAnalytics
	snap := report.AnalyticsSnapshot{
		SourceFile: "report.csv",
		Summary:    sampleResult().Summary,
		Campaigns:  []string{"Solo campaign"},
		Details: map[string]report.CampaignDetail{
			"Solo campaign": {Monograms: 5, Bigrams: 3, Trigrams: 2, SearchTerms: 10},
		},
	}
	m.snapshot = &snap

	view := m.View()

	// Once in the breakdown table, once as the distribution bar title.
	assert.Equal(t, 2, strings.Count(view, "Solo campaign"))
}
