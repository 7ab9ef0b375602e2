package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"termgram/internal/report"
)

var segmentColors = [3]lipgloss.Color{SegMonogram, SegBigram, SegTrigram}

// DistributionBar renders one campaign's n-gram split as a proportional
// three-segment bar with a legend showing raw count and percentage per
// category. Campaigns with a zero total never reach this function; the
// view-model excludes them.
func DistributionBar(styles Styles, dist report.Distribution, width int) string {
	if width < 12 {
		width = 12
	}

	var sb strings.Builder
	sb.WriteString(styles.Bold.Render(dist.Campaign))
	sb.WriteString("\n")

	// Segment cell counts are proportional to percentage; the last segment
	// absorbs rounding so the bar is always exactly width cells.
	used := 0
	for i, seg := range dist.Segments {
		cells := int(seg.Percent / 100 * float64(width))
		if i == len(dist.Segments)-1 {
			cells = width - used
		}
		if cells < 0 {
			cells = 0
		}
		used += cells
		block := lipgloss.NewStyle().Foreground(segmentColors[i]).Render(strings.Repeat("█", cells))
		sb.WriteString(block)
	}
	sb.WriteString("\n")

	for i, seg := range dist.Segments {
		swatch := lipgloss.NewStyle().Foreground(segmentColors[i]).Render("■")
		sb.WriteString("  ")
		sb.WriteString(swatch)
		sb.WriteString(" ")
		sb.WriteString(styles.Body.Render(seg.Label))
		sb.WriteString(" ")
		sb.WriteString(styles.Muted.Render(
			report.FormatCount(seg.Count) + " (" + report.FormatPercent(seg.Percent) + ")"))
		sb.WriteString("\n")
	}

	return sb.String()
}

// SummaryList renders labeled summary figures as aligned rows.
func SummaryList(styles Styles, lines []report.SummaryLine) string {
	labelWidth := 0
	for _, l := range lines {
		if len(l.Label) > labelWidth {
			labelWidth = len(l.Label)
		}
	}

	var sb strings.Builder
	labelStyle := styles.Muted.Width(labelWidth + 2)
	for _, l := range lines {
		sb.WriteString(labelStyle.Render(l.Label))
		sb.WriteString(styles.Bold.Render(l.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}
