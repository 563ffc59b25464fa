package main

import (
	"context"
	"fmt"
	"os"

	"github.com/muesli/termenv"

	"rdoc/internal/docerr"
	"rdoc/internal/docir"
	"rdoc/internal/docpage"
	"rdoc/internal/docrender"
	"rdoc/internal/navigator"
	"rdoc/internal/similarity"
	"rdoc/internal/tuitheme"
)

// runLookup resolves path and prints its formatted Document to stdout,
// choosing TTY or plain rendering the same way other modes pick
// between a colored and a plain writer (§4.F/§4.I).
func runLookup(nav *navigator.Navigator, path string) error {
	result := nav.ResolvePath(context.Background(), path)
	if !result.Found {
		printSuggestions(path, result.Suggestions)
		return docerr.New(docerr.KindNotFound, "no item found at %q", path)
	}
	printDocument(docpage.Format(result.Ref))
	return nil
}

// runSearch resolves query the same way a bare path would, but reports
// "not found" as a ranked suggestion list rather than an error when
// nothing matches exactly (the --search flag is explicitly a lookup-or-
// suggest operation, per SPEC_FULL.md §6.1).
func runSearch(nav *navigator.Navigator, query string) error {
	result := nav.ResolvePath(context.Background(), query)
	if result.Found {
		printDocument(docpage.Format(result.Ref))
		return nil
	}
	printSuggestions(query, result.Suggestions)
	if len(result.Suggestions) == 0 {
		return docerr.New(docerr.KindNotFound, "no item found at %q", query)
	}
	return nil
}

// runList prints every crate available from the enabled sources.
func runList(nav *navigator.Navigator) error {
	crates := nav.ListAvailableCrates()
	if len(crates) == 0 {
		fmt.Println("no crates available from the enabled sources")
		return nil
	}
	for _, c := range crates {
		fmt.Printf("%-30s %-10s %s\n", c.Name.String(), c.Version, c.Provenance.String())
	}
	return nil
}

func printSuggestions(query string, suggestions []similarity.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintf(os.Stderr, "no item found at %q, and no close matches\n", query)
		return
	}
	fmt.Fprintf(os.Stderr, "no item found at %q — did you mean:\n", query)
	for _, s := range suggestions {
		fmt.Fprintf(os.Stderr, "  %s\n", s.Name)
	}
}

func printDocument(doc []docir.Node) {
	if flagPlain || !isTTY() {
		fmt.Println(docrender.Plain(doc))
		return
	}
	out := termenv.NewOutput(os.Stdout)
	palette := paletteForTheme()
	fmt.Println(docrender.TTY(doc, palette, out))
}

func isTTY() bool {
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

func paletteForTheme() docrender.StylePalette {
	theme := cfg.Theme
	if theme == "" {
		theme = tuitheme.Detect()
	}
	return tuitheme.Palette(theme)
}
