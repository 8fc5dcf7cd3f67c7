package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tbsvttr/weltenwanderer2/internal/driver"
	"github.com/tbsvttr/weltenwanderer2/internal/ui"
)

type checkOutcome struct {
	result *driver.Result
	err    error
}

// runCheckWithUI compiles in a goroutine while Bubble Tea owns the
// terminal; per-file progress flows over the event channel and the
// model exits when the channel closes.
func runCheckWithUI(cmd *cobra.Command, title string, files []string, cache *driver.Cache, snap driver.Snapshot, opts driver.Options) (*driver.Result, error) {
	events := make(chan ui.Event, 256)
	uiDone := make(chan struct{})
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = progressSink(events, uiDone)
		res, err := cache.Compile(cmd.Context(), snap, optsCopy)
		outcomeCh <- checkOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))
	_, uiErr := program.Run()
	close(uiDone)
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

// progressSink forwards per-file progress into the TUI's event
// channel. Once stop closes the TUI has quit and nobody drains the
// channel anymore, so further events are dropped instead of blocking
// the compile goroutine.
func progressSink(events chan<- ui.Event, stop <-chan struct{}) func(path string, cached bool, done, total int) {
	return func(path string, cached bool, done, total int) {
		ev := ui.Event{Path: path, Cached: cached, Done: done, Total: total}
		select {
		case events <- ev:
		case <-stop:
		}
	}
}
