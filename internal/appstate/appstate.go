// Package appstate models the client's two view-state machines as explicit
// enumerated states with pure transition functions: the primary upload flow
// panel and the top-level navigation section. "Exactly one visible" is a
// property of the types, not of show/hide call order. The UI layer renders
// whatever state these functions return and performs the refresh effects
// they report.
package appstate

import "strings"

// Panel is the active state of the primary upload flow. The flow lives under
// SectionUpload; no panel is visible when another section is active.
type Panel int

const (
	PanelUpload Panel = iota
	PanelProcess
	PanelProgress
	PanelResults
	PanelError
)

func (p Panel) String() string {
	switch p {
	case PanelUpload:
		return "upload"
	case PanelProcess:
		return "process"
	case PanelProgress:
		return "progress"
	case PanelResults:
		return "results"
	case PanelError:
		return "error"
	default:
		return "unknown"
	}
}

// Box is one visible region of the upload flow. PanelProcess is the only
// state that shows two boxes at once: the selected file alongside the
// settings/submit box.
type Box int

const (
	BoxUpload Box = iota
	BoxSettings
	BoxProgress
	BoxResults
	BoxError
)

// Visible returns the boxes shown for a panel state. Every box not returned
// is hidden.
func (p Panel) Visible() []Box {
	switch p {
	case PanelUpload:
		return []Box{BoxUpload}
	case PanelProcess:
		return []Box{BoxUpload, BoxSettings}
	case PanelProgress:
		return []Box{BoxProgress}
	case PanelResults:
		return []Box{BoxResults}
	case PanelError:
		return []Box{BoxError}
	default:
		return nil
	}
}

// Shows reports whether a box is visible in this panel state.
func (p Panel) Shows(b Box) bool {
	for _, v := range p.Visible() {
		if v == b {
			return true
		}
	}
	return false
}

// Section is the active top-level navigation section.
type Section int

const (
	SectionUpload Section = iota
	SectionAnalytics
	SectionArchive
	SectionDocs
)

func (s Section) String() string {
	switch s {
	case SectionUpload:
		return "upload"
	case SectionAnalytics:
		return "analytics"
	case SectionArchive:
		return "archive"
	case SectionDocs:
		return "documentation"
	default:
		return "unknown"
	}
}

// Breadcrumb is the capitalized section name shown in the nav bar.
func (s Section) Breadcrumb() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// Refresh is a side effect the UI must perform after a navigation change.
type Refresh int

const (
	// RefreshNone: show the section as-is.
	RefreshNone Refresh = iota
	// RefreshAnalytics: re-render the analytics view from the current
	// snapshot (or its empty placeholder).
	RefreshAnalytics
	// RefreshArchive: fetch the archive list from the server, exactly once.
	RefreshArchive
)

// Navigate returns the new active section and the refresh effect it demands.
// Entering the analytics section re-renders from current state; entering the
// archive section triggers one list fetch. The upload flow panel is
// untouched: it reappears unchanged when the user navigates back.
func Navigate(to Section) (Section, Refresh) {
	switch to {
	case SectionAnalytics:
		return to, RefreshAnalytics
	case SectionArchive:
		return to, RefreshArchive
	default:
		return to, RefreshNone
	}
}
