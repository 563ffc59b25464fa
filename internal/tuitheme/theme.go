// Package tuitheme supplies the light/dark StylePalette variants the
// interactive application and the ThemePicker mode switch between
// (§4.I, §4.J): a palette of named colors behind Light/Dark structs and
// a background-probe, keyed on rustdoc's own highlighting categories
// (docir.Style).
package tuitheme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"rdoc/internal/docir"
	"rdoc/internal/docrender"
)

// palette names a fixed set of hex colors a theme assigns to each
// docir.Style, plus the chrome colors the interactive Frame (gutter,
// scrollbar, status line) draws outside of any Style-tagged span.
type palette struct {
	keyword, typeName, ident, str, number, comment string
	macro, lifetime, attribute, operator           string
	emphasis, strong, inlineCode, heading          string
	chrome, accent, muted                          string
}

var darkPalette = palette{
	keyword:    "#c678dd",
	typeName:   "#e5c07b",
	ident:      "#61afef",
	str:        "#98c379",
	number:     "#d19a66",
	comment:    "#5c6370",
	macro:      "#56b6c2",
	lifetime:   "#e06c75",
	attribute:  "#d19a66",
	operator:   "#abb2bf",
	emphasis:   "#abb2bf",
	strong:     "#ffffff",
	inlineCode: "#e5c07b",
	heading:    "#61afef",
	chrome:     "#3b4048",
	accent:     "#56b6c2",
	muted:      "#5c6370",
}

var lightPalette = palette{
	keyword:    "#a626a4",
	typeName:   "#c18401",
	ident:      "#4078f2",
	str:        "#50a14f",
	number:     "#986801",
	comment:    "#a0a1a7",
	macro:      "#0184bc",
	lifetime:   "#e45649",
	attribute:  "#986801",
	operator:   "#383a42",
	emphasis:   "#383a42",
	strong:     "#000000",
	inlineCode: "#c18401",
	heading:    "#4078f2",
	chrome:     "#d3d3d3",
	accent:     "#0184bc",
	muted:      "#a0a1a7",
}

func (p palette) build() docrender.StylePalette {
	return docrender.StylePalette{
		docir.StyleKeyword:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.keyword)).Bold(true),
		docir.StyleTypeName:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.typeName)),
		docir.StyleIdent:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.ident)),
		docir.StyleString:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.str)),
		docir.StyleNumber:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.number)),
		docir.StyleComment:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.comment)).Italic(true),
		docir.StyleMacro:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.macro)),
		docir.StyleLifetime:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.lifetime)),
		docir.StyleAttribute:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.attribute)),
		docir.StyleOperator:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.operator)),
		docir.StyleEmphasis:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.emphasis)).Italic(true),
		docir.StyleStrong:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.strong)).Bold(true),
		docir.StyleInlineCode: lipgloss.NewStyle().Foreground(lipgloss.Color(p.inlineCode)),
		docir.StyleHeading:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.heading)).Bold(true).Underline(true),
	}
}

// Chrome holds the colors the interactive Frame needs outside of
// docir.Style (status line, scrollbar thumb/track, selection highlight).
type Chrome struct {
	Border, Accent, Muted lipgloss.Style
}

func (p palette) chromeStyles() Chrome {
	return Chrome{
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color(p.chrome)),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color(p.accent)).Bold(true),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)),
	}
}

// Names lists the themes the ThemePicker mode cycles through, in
// display order (§4.1 ThemePicker).
var Names = []string{"dark", "light"}

// Palette resolves a theme name to its StylePalette, falling back to
// dark for anything unrecognized rather than erroring — a bad config
// value shouldn't crash the picker.
func Palette(name string) docrender.StylePalette {
	return paletteFor(name).build()
}

// ChromeFor resolves a theme name to its non-Style chrome colors.
func ChromeFor(name string) Chrome {
	return paletteFor(name).chromeStyles()
}

func paletteFor(name string) palette {
	switch strings.ToLower(name) {
	case "light":
		return lightPalette
	default:
		return darkPalette
	}
}

// Detect guesses light or dark from the terminal's reported background
// via termenv rather than a hand-rolled OSC 11 query.
func Detect() string {
	if termenv.NewOutput(os.Stdout).HasDarkBackground() {
		return "dark"
	}
	return "light"
}
