// Package tuiapp implements the interactive bubbletea application
// (§4.J, §5): the UI-mode state machine, navigation history, the
// background formatting worker, and the Model/Update/View loop that
// ties doclayout and docrender together, following the common
// single-large-Model pattern of a bubbletea app with a closed Update
// switch over typed tea.Msg values and embedded per-concern sub-state.
package tuiapp

import "rdoc/internal/doclayout"

// InputKind distinguishes the two buffered-text sub-modes nested
// inside Mode Input (§4.J: "Input{GoTo{buf} | Search{buf, all_crates}}").
type InputKind int

const (
	InputGoTo InputKind = iota
	InputSearch
)

// ModeKind is the closed set of top-level UI modes (§4.J: "Normal |
// Help | DevLog{...} | Input{...} | ThemePicker{...}").
type ModeKind int

const (
	ModeNormal ModeKind = iota
	ModeHelp
	ModeDevLog
	ModeInput
	ModeThemePicker
)

// Mode is the UI-mode state machine's current value. Exactly the
// fields relevant to Kind are meaningful, modeling a nested sum type
// without needing a Go sum-type library.
type Mode struct {
	Kind ModeKind

	// ModeDevLog: the document and scroll state Normal had before
	// entering DevLog, restored on Escape.
	SavedDoc    Document
	SavedScroll doclayout.Scroll

	// ModeInput
	InputKind InputKind
	Buffer    string
	AllCrates bool // Input{Search}'s scope flag

	// ModeThemePicker
	Selected   int
	SavedTheme string
}

// Escape implements "Escape collapses back toward Normal (from any
// mode)" (§4.J). It returns the mode after collapsing and whether the
// application should exit (escape from Normal).
func (m Mode) Escape() (next Mode, exit bool) {
	switch m.Kind {
	case ModeNormal:
		return m, true
	default:
		return Mode{Kind: ModeNormal}, false
	}
}

// EnterDevLog saves the current document/scroll and switches to
// DevLog mode.
func EnterDevLog(doc Document, scroll doclayout.Scroll) Mode {
	return Mode{Kind: ModeDevLog, SavedDoc: doc, SavedScroll: scroll}
}

// EnterInput switches to Input mode with an empty buffer.
func EnterInput(kind InputKind) Mode {
	return Mode{Kind: ModeInput, InputKind: kind}
}

// EnterThemePicker remembers the active theme so Escape can restore it
// if the user backs out without selecting.
func EnterThemePicker(current string, index int) Mode {
	return Mode{Kind: ModeThemePicker, Selected: index, SavedTheme: current}
}
