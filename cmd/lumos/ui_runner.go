package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"lumos/internal/driver"
	"lumos/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

func runFormatWithUI(ctx context.Context, title string, opts driver.FormatOptions, paths []string) ([]driver.FormatResult, error) {
	files, err := driver.CollectSchemaFiles(paths)
	if err != nil {
		return nil, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		results, err := driver.FormatPaths(ctx, paths, optsCopy)
		outcomeCh <- formatOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
