package main

import (
	"testing"
	"time"

	"github.com/tbsvttr/weltenwanderer2/internal/ui"
)

func TestProgressSinkDeliversWhileUIRuns(t *testing.T) {
	events := make(chan ui.Event, 1)
	stop := make(chan struct{})
	sink := progressSink(events, stop)

	sink("a.ww", true, 1, 2)
	select {
	case ev := <-events:
		if ev.Path != "a.ww" || !ev.Cached || ev.Done != 1 || ev.Total != 2 {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("event not delivered")
	}
}

func TestProgressSinkDropsEventsAfterUIQuits(t *testing.T) {
	events := make(chan ui.Event, 1)
	stop := make(chan struct{})
	sink := progressSink(events, stop)

	sink("a.ww", false, 1, 3) // fills the buffer, nobody reads
	close(stop)               // the TUI is gone

	done := make(chan struct{})
	go func() {
		sink("b.ww", false, 2, 3)
		sink("c.ww", false, 3, 3)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("progress callback blocked after the TUI stopped")
	}
}
