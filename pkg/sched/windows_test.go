package sched

import (
	"testing"

	"github.com/go-drift/keel/pkg/input"
)

func TestWindowEventsDeliverAndReceive(t *testing.T) {
	l := NewLoop()
	sink := l.RegisterWindow(1)
	var got []input.RawKind

	l.Spawn("consumer", func(task *Task) {
		for {
			ev, ok := sink.Next(task)
			if !ok {
				return
			}
			got = append(got, ev.Kind)
		}
	})
	l.RunUntilStalled()

	l.PumpEvent(1, input.WindowEvent{Kind: input.RawPointerMoved})
	l.PumpEvent(1, input.WindowEvent{Kind: input.RawPointerPressed})

	if len(got) != 2 || got[0] != input.RawPointerMoved || got[1] != input.RawPointerPressed {
		t.Fatalf("received kinds = %v", got)
	}
}

func TestDeliverToUnknownWindowIsDropped(t *testing.T) {
	l := NewLoop()
	l.DeliverWindowEvent(99, input.WindowEvent{Kind: input.RawPointerMoved})
	l.RunUntilStalled()

	if l.WindowCount() != 0 {
		t.Errorf("unknown delivery must not create a table entry")
	}
}

func TestCloseDrainsBufferedEventsFirst(t *testing.T) {
	l := NewLoop()
	sink := l.RegisterWindow(1)

	l.DeliverWindowEvent(1, input.WindowEvent{Kind: input.RawPointerMoved})
	l.DeliverWindowEvent(1, input.WindowEvent{Kind: input.RawCloseRequested})
	l.CloseWindow(1)

	var got []input.RawKind
	sawClose := false
	l.Spawn("consumer", func(task *Task) {
		for {
			ev, ok := sink.Next(task)
			if !ok {
				sawClose = true
				return
			}
			got = append(got, ev.Kind)
		}
	})
	l.RunUntilStalled()

	if len(got) != 2 {
		t.Fatalf("buffered events lost on close: got %v", got)
	}
	if !sawClose {
		t.Errorf("consumer never observed the close")
	}
}

func TestClosedSinkPrunedOnNextLookup(t *testing.T) {
	l := NewLoop()
	l.RegisterWindow(7)
	l.CloseWindow(7)

	if l.WindowCount() != 1 {
		t.Fatalf("close should leave the entry for lazy pruning")
	}

	l.DeliverWindowEvent(7, input.WindowEvent{Kind: input.RawPointerMoved})

	if l.WindowCount() != 0 {
		t.Errorf("lookup of a closed sink should prune it")
	}
}

func TestRegisterAfterCloseReusesID(t *testing.T) {
	l := NewLoop()
	l.RegisterWindow(3)
	l.CloseWindow(3)
	sink := l.RegisterWindow(3)

	if sink.Closed() {
		t.Fatalf("fresh sink must not be closed")
	}
}

func TestDoubleRegisterPanics(t *testing.T) {
	l := NewLoop()
	l.RegisterWindow(5)

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic on duplicate registration")
		}
	}()
	l.RegisterWindow(5)
}

func TestCloseWakesParkedConsumer(t *testing.T) {
	l := NewLoop()
	sink := l.RegisterWindow(2)
	finished := false

	l.Spawn("consumer", func(task *Task) {
		_, ok := sink.Next(task)
		if ok {
			t.Errorf("expected closed sink, got an event")
		}
		finished = true
	})
	l.RunUntilStalled()

	l.CloseWindow(2)
	l.RunUntilStalled()

	if !finished {
		t.Fatalf("parked consumer was not woken by close")
	}
}
