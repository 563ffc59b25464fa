package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"rdoc/internal/docerr"
	"rdoc/internal/navigator"
	"rdoc/internal/tuiapp"
	"rdoc/internal/workerproto"
)

// runInteractive resolves path, then hands off to the bubbletea program,
// with the worker goroutine owning nav exclusively for the program's
// lifetime (§5: "the worker goroutine owns the *navigator.Navigator
// exclusively; the UI thread never touches it").
func runInteractive(nav *navigator.Navigator, path string) error {
	result := nav.ResolvePath(context.Background(), path)
	if !result.Found {
		printSuggestions(path, result.Suggestions)
		return docerr.New(docerr.KindNotFound, "no item found at %q", path)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := workerproto.NewChannels(1)
	go tuiapp.RunWorker(ctx, nav, ch)

	theme := cfg.Theme
	model := tuiapp.New(ch, theme, result.Ref)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("interactive session: %w", err)
	}
	return nil
}
