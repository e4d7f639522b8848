package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"xlate/internal/driver"
	"xlate/internal/model"
	"xlate/internal/ui"
)

type runOutcome struct {
	results []*driver.Result
	err     error
}

func runWithUI(ctx context.Context, title string, m *model.Model, opts driver.Options) ([]*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		results, err := driver.RunAll(ctx, m, runOpts)
		outcomeCh <- runOutcome{results: results, err: err}
		close(events)
	}()

	units := make([]string, 0, len(m.Units))
	for _, u := range m.Units {
		units = append(units, u.Path)
	}
	program := tea.NewProgram(ui.NewProgressModel(title, units, events), tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// the UI may quit before the run finishes
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
