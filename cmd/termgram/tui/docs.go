package tui

import (
	_ "embed"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

//go:embed usage.md
var usageDoc string

func newDocsViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.SetContent("")
	return vp
}

// setDocsContent renders the embedded usage document at the current width.
// The renderer is rebuilt after a resize; until a size is known the raw
// markdown is shown.
func (m *Model) setDocsContent() {
	if m.width == 0 {
		m.viewport.SetContent(usageDoc)
		return
	}
	if m.renderer == nil {
		wrap := m.width - 4
		if wrap < 20 {
			wrap = 20
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			m.viewport.SetContent(usageDoc)
			return
		}
		m.renderer = r
	}
	out, err := m.renderer.Render(usageDoc)
	if err != nil {
		out = usageDoc
	}
	m.viewport.SetContent(out)
}
