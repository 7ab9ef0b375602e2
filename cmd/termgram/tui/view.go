package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"termgram/cmd/termgram/ui"
	"termgram/internal/appstate"
	"termgram/internal/report"
)

// View renders the header plus whichever section is active. The upload
// section renders exactly the boxes its panel state declares visible.
func (m Model) View() string {
	if !m.ready {
		return "Starting termgram..."
	}
	if m.picking {
		return m.viewPicker()
	}

	var body string
	switch m.section {
	case appstate.SectionUpload:
		body = m.viewUpload()
	case appstate.SectionAnalytics:
		body = m.viewAnalytics()
	case appstate.SectionArchive:
		body = m.viewArchive()
	case appstate.SectionDocs:
		body = m.viewport.View()
	}
	return m.viewHeader() + "\n" + m.styles.Content.Render(body)
}

func (m Model) viewHeader() string {
	sections := []appstate.Section{
		appstate.SectionUpload,
		appstate.SectionAnalytics,
		appstate.SectionArchive,
		appstate.SectionDocs,
	}
	tabs := make([]string, 0, len(sections))
	for i, s := range sections {
		label := fmt.Sprintf("%d %s", i+1, s.Breadcrumb())
		if s == m.section {
			tabs = append(tabs, m.styles.NavActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.NavInactive.Render(label))
		}
	}

	status := m.styles.Warning.Render("● " + m.serverStatus)
	switch m.serverStatus {
	case "healthy", "ok":
		status = m.styles.Success.Render("● online")
	case "offline":
		status = m.styles.Error.Render("● offline")
	}

	nav := strings.Join(tabs, " ")
	line := lipgloss.JoinHorizontal(lipgloss.Top, nav, "  ", status)
	return m.styles.Header.Render(
		m.styles.Title.Render("termgram")+"  "+line,
	) + "\n" + m.styles.RenderDivider(m.width)
}

func (m Model) viewPicker() string {
	return m.styles.Content.Render(
		m.styles.Subtitle.Render("Select a search term report (.csv)") + "\n\n" +
			m.filepicker.View() + "\n" +
			m.styles.Muted.Render("enter select · esc cancel"),
	)
}

func (m Model) viewUpload() string {
	var b strings.Builder
	for _, box := range m.panel.Visible() {
		switch box {
		case appstate.BoxUpload:
			b.WriteString(m.viewUploadBox())
		case appstate.BoxSettings:
			b.WriteString(m.viewSettingsBox())
		case appstate.BoxProgress:
			b.WriteString(m.viewProgressBox())
		case appstate.BoxResults:
			b.WriteString(m.viewResultsBox())
		case appstate.BoxError:
			b.WriteString(m.viewErrorBox())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewUploadBox() string {
	var body string
	if m.hasSelection() {
		body = fmt.Sprintf("%s\n%s",
			m.styles.Bold.Render(m.selected.Name),
			m.styles.Muted.Render(report.FormatFileSize(m.selected.Size)))
	} else {
		body = "No file selected.\n" +
			m.styles.Muted.Render("enter: browse · or drop a .csv into the drop folder")
	}
	return m.styles.Panel.Render(
		m.styles.Subtitle.Render("Upload report") + "\n\n" + body,
	)
}

func (m Model) viewSettingsBox() string {
	var lines []string
	if m.cfg.Thresholds.Enabled() {
		if m.cfg.Thresholds.MinClicks != nil {
			lines = append(lines, fmt.Sprintf("Min clicks: %d", *m.cfg.Thresholds.MinClicks))
		}
		if m.cfg.Thresholds.MinSpend != nil {
			lines = append(lines, fmt.Sprintf("Min spend: %s", report.FormatCurrency(*m.cfg.Thresholds.MinSpend)))
		}
	} else {
		lines = append(lines, m.styles.Muted.Render("Thresholds: server defaults"))
	}
	lines = append(lines, "", m.styles.Muted.Render("enter submit · o reselect · esc clear"))
	return m.styles.Panel.Render(
		m.styles.Subtitle.Render("Process") + "\n\n" + strings.Join(lines, "\n"),
	)
}

func (m Model) viewProgressBox() string {
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Processing"))
	b.WriteString("\n\n")
	for i, line := range m.progress {
		if i == len(m.progress)-1 && m.uploading {
			b.WriteString(m.spinner.View() + " " + line)
		} else {
			b.WriteString(m.styles.Success.Render("✓") + " " + line)
		}
		b.WriteString("\n")
	}
	return m.styles.Panel.Render(b.String())
}

func (m Model) viewResultsBox() string {
	if m.result == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Results"))
	b.WriteString("\n\n")
	b.WriteString(ui.SummaryList(m.styles, report.SummaryLines(m.result.Summary)))
	b.WriteString("\n")

	if m.lastDownload != "" {
		b.WriteString(m.styles.Success.Render("Saved to " + m.lastDownload))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render(m.errMsg))
		b.WriteString("\n")
	}

	archiveHint := "s archive"
	if m.archiveSaving {
		archiveHint = m.spinner.View() + " archiving"
	} else if m.archiveSaved {
		archiveHint = m.styles.Success.Render("Archived!")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("d download · " + archiveHint + " · a analytics · n new upload"))
	return m.styles.Panel.Render(b.String())
}

func (m Model) viewErrorBox() string {
	msg := m.errMsg
	if msg == "" {
		msg = "an unknown error occurred, please try again"
	}
	return m.styles.Panel.Render(
		m.styles.Error.Render("Processing failed") + "\n\n" +
			msg + "\n\n" +
			m.styles.Muted.Render("enter: start over"),
	)
}

func (m Model) viewAnalytics() string {
	if m.snapshot == nil {
		return m.styles.Panel.Render(
			m.styles.Subtitle.Render("Analytics") + "\n\n" +
				m.styles.Muted.Render("No data to show. Process a report or open an archive entry."),
		)
	}
	snap := *m.snapshot

	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Analytics: " + snap.SourceFile))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Processed " + snap.ProcessedAt.Format("2006-01-02 15:04")))
	b.WriteString("\n\n")
	b.WriteString(ui.SummaryList(m.styles, report.SummaryLines(snap.Summary)))
	b.WriteString("\n")
	b.WriteString(breakdownTable(m.styles, snap))

	for _, dist := range report.Distributions(snap) {
		b.WriteString("\n")
		b.WriteString(ui.DistributionBar(m.styles, dist, m.barWidth()))
	}
	return b.String()
}

func (m Model) viewArchive() string {
	var b strings.Builder
	b.WriteString(m.styles.Subtitle.Render("Archive"))
	b.WriteString("\n\n")

	switch {
	case !m.archivesLoaded:
		b.WriteString(m.spinner.View() + " Loading archive...")
	case m.archiveErr != "":
		b.WriteString(m.styles.Error.Render(m.archiveErr))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("r retry"))
	case len(m.archives) == 0:
		b.WriteString(m.styles.Muted.Render("The archive is empty. Saved results will appear here."))
	default:
		for i, e := range m.archives {
			cursor := "  "
			line := fmt.Sprintf("%-40s %s", e.OriginalFilename, e.ProcessedAt)
			if i == m.archiveCursor {
				cursor = m.styles.NavActive.Render("→ ")
				line = m.styles.Bold.Render(line)
			}
			if m.confirmDelete == e.ID {
				line += "  " + m.styles.Warning.Render("delete? y/n")
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("enter open · x delete · r reload"))
	}
	return m.styles.Panel.Render(b.String())
}

func (m Model) barWidth() int {
	w := m.width - 10
	if w < 20 {
		w = 20
	}
	if w > 60 {
		w = 60
	}
	return w
}

func breakdownTable(s ui.Styles, snap report.AnalyticsSnapshot) string {
	rows := report.BreakdownRows(snap)
	if len(rows) == 0 {
		return ""
	}
	t := ui.NewTable("Campaign breakdown",
		"Campaign", "Monograms", "Bigrams", "Trigrams", "Search terms", "Spend", "Sales")
	t.Numeric = []bool{false, true, true, true, true, true, true}
	for _, r := range rows {
		t.AddRow(r.Campaign, r.Monograms, r.Bigrams, r.Trigrams, r.SearchTerms, r.Spend, r.Sales)
	}
	return t.View(s)
}
