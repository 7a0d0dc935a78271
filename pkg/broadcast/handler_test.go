package broadcast

import (
	"testing"
	"time"

	"github.com/go-drift/keel/pkg/sched"
	"github.com/google/go-cmp/cmp"
)

func TestEmitWithNoListenersReturnsImmediately(t *testing.T) {
	l := sched.NewLoop()
	h := New[string]()
	returned := false

	l.Spawn("emitter", func(task *sched.Task) {
		h.Emit(task, "nobody home")
		returned = true
	})
	l.RunUntilStalled()

	if !returned {
		t.Fatalf("no-listener emit must not block")
	}
}

func TestEmitRendezvousWithTwoListeners(t *testing.T) {
	l := sched.NewLoop()
	h := New[int]()
	var log []string

	l.Spawn("listener-a", func(task *sched.Task) {
		v := h.Wait(task)
		log = append(log, "a observed")
		if v != 42 {
			t.Errorf("listener a got %d, want 42", v)
		}
	})
	l.Spawn("listener-b", func(task *sched.Task) {
		v := h.Wait(task)
		log = append(log, "b observed")
		if v != 42 {
			t.Errorf("listener b got %d, want 42", v)
		}
	})
	l.Spawn("emitter", func(task *sched.Task) {
		h.Emit(task, 42)
		log = append(log, "emit returned")
	})
	l.RunUntilStalled()

	want := []string{"a observed", "b observed", "emit returned"}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Fatalf("barrier order mismatch (-want +got):\n%s", diff)
	}
}

func TestAbortedListenerReleasesBarrier(t *testing.T) {
	l := sched.NewLoop()
	h := New[int]()
	emitReturned := false
	bObserved := false
	var hb *sched.Handle

	l.Spawn("listener-a", func(task *sched.Task) {
		h.Wait(task)
	})
	hb = l.Spawn("listener-b", func(task *sched.Task) {
		h.Wait(task)
		bObserved = true
	})
	l.Spawn("emitter", func(task *sched.Task) {
		h.Emit(task, 7)
		emitReturned = true
	})
	// Queued after the emitter: runs between the notification and
	// listener b's resume, so b is aborted while notified-but-unobserved.
	l.Spawn("aborter", func(task *sched.Task) {
		hb.Abort()
	})
	l.RunUntilStalled()

	if !emitReturned {
		t.Fatalf("emitter still parked: aborted listener did not acknowledge")
	}
	if bObserved {
		t.Errorf("aborted listener should not have observed the value")
	}
	if h.ListenerCount() != 0 {
		t.Errorf("listener count = %d, want 0", h.ListenerCount())
	}
}

func TestCancelBeforeEmitShrinksBarrier(t *testing.T) {
	l := sched.NewLoop()
	h := New[int]()
	emitReturned := false
	var ha *sched.Handle

	ha = l.Spawn("listener-a", func(task *sched.Task) {
		h.Wait(task)
	})
	l.Spawn("canceller", func(task *sched.Task) {
		ha.Abort()
	})
	l.Spawn("listener-b", func(task *sched.Task) {
		h.Wait(task)
	})
	l.Spawn("emitter", func(task *sched.Task) {
		h.Emit(task, 1)
		emitReturned = true
	})
	l.RunUntilStalled()

	if !emitReturned {
		t.Fatalf("emit should only wait on the surviving listener")
	}
}

func TestUnarmedListenerMissesEmission(t *testing.T) {
	l := sched.NewLoop()
	h := New[string]()
	gate := New[struct{}]()
	firstReturned := false
	var got string

	l.Spawn("slow", func(task *sched.Task) {
		lst := h.Listen()
		defer lst.Cancel()
		// Registered but not armed: park on something else first.
		gate.Wait(task)
		got = lst.Recv(task)
	})
	l.Spawn("emitter", func(task *sched.Task) {
		h.Emit(task, "first")
		firstReturned = true
		gate.Emit(task, struct{}{})
		h.Emit(task, "second")
	})
	l.RunUntilStalled()

	if !firstReturned {
		t.Fatalf("emission must not count an unarmed listener")
	}
	if got != "second" {
		t.Fatalf("slow listener got %q, want %q (the first value is missed)", got, "second")
	}
}

func TestOverlappingEmittersSerialize(t *testing.T) {
	l := sched.NewLoop()
	h := New[int]()
	var got []int
	var returned []string

	l.Spawn("listener", func(task *sched.Task) {
		got = append(got, h.Wait(task))
	})
	l.Spawn("emitter-1", func(task *sched.Task) {
		h.Emit(task, 1)
		returned = append(returned, "e1")
	})
	l.Spawn("emitter-2", func(task *sched.Task) {
		h.Emit(task, 2)
		returned = append(returned, "e2")
	})
	l.RunUntilStalled()

	if diff := cmp.Diff([]int{1}, got); diff != "" {
		t.Errorf("listener values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"e1", "e2"}, returned); diff != "" {
		t.Errorf("emitter completion order (-want +got):\n%s", diff)
	}
}

func TestSequentialWaitsObserveEachEmission(t *testing.T) {
	l := sched.NewLoop()
	h := New[int]()
	var got []int

	l.Spawn("listener", func(task *sched.Task) {
		for range 3 {
			got = append(got, h.Wait(task))
		}
	})
	l.Spawn("emitter", func(task *sched.Task) {
		for i := range 3 {
			h.Emit(task, i)
		}
	})
	l.RunUntilStalled()

	if diff := cmp.Diff([]int{0, 1, 2}, got); diff != "" {
		t.Fatalf("sequence (-want +got):\n%s", diff)
	}
}

func TestWaitTimeoutValueWins(t *testing.T) {
	l := sched.NewLoop()
	h := New[string]()
	var got string
	var ok bool

	l.Spawn("waiter", func(task *sched.Task) {
		got, ok = h.WaitTimeout(task, time.Hour)
	})
	l.Spawn("emitter", func(task *sched.Task) {
		h.Emit(task, "in time")
	})
	l.RunUntilStalled()

	if !ok || got != "in time" {
		t.Fatalf("WaitTimeout = %q, %v; want \"in time\", true", got, ok)
	}
	if l.TimerCount() != 0 {
		t.Errorf("timer leaked after value won the race")
	}
}

func TestWaitTimeoutDeadlineWins(t *testing.T) {
	clk := manualClock{now: time.Unix(1000, 0)}
	l := sched.NewLoop(sched.WithClock(&clk))
	h := New[string]()
	finished := false

	l.Spawn("waiter", func(task *sched.Task) {
		_, ok := h.WaitTimeout(task, 10*time.Millisecond)
		if ok {
			t.Errorf("expected timeout")
		}
		finished = true
	})
	l.RunUntilStalled()

	clk.now = clk.now.Add(20 * time.Millisecond)
	l.PumpIdle()

	if !finished {
		t.Fatalf("waiter did not resume on deadline")
	}
	if h.ListenerCount() != 0 {
		t.Errorf("timed-out wait left its listener registered")
	}
}

func TestEitherFirstHandlerWins(t *testing.T) {
	l := sched.NewLoop()
	a := New[int]()
	b := New[string]()
	var idx int
	var av int

	l.Spawn("selector", func(task *sched.Task) {
		idx, av, _ = Either(task, a, b)
	})
	l.Spawn("emitter", func(task *sched.Task) {
		a.Emit(task, 11)
	})
	l.RunUntilStalled()

	if idx != 0 || av != 11 {
		t.Fatalf("Either = (%d, %d), want (0, 11)", idx, av)
	}
	if a.ListenerCount() != 0 || b.ListenerCount() != 0 {
		t.Errorf("Either left listeners registered: a=%d b=%d",
			a.ListenerCount(), b.ListenerCount())
	}
}

func TestEitherLoserEmissionDoesNotHang(t *testing.T) {
	l := sched.NewLoop()
	a := New[int]()
	b := New[string]()
	bothDone := 0

	l.Spawn("selector", func(task *sched.Task) {
		idx, _, bv := Either(task, a, b)
		if idx != 1 || bv != "win" {
			t.Errorf("Either = (%d, %q)", idx, bv)
		}
		bothDone++
	})
	l.Spawn("emitter", func(task *sched.Task) {
		b.Emit(task, "win")
		// The selector is gone now; this must be a no-op.
		a.Emit(task, 5)
		bothDone++
	})
	l.RunUntilStalled()

	if bothDone != 2 {
		t.Fatalf("done count = %d, want 2", bothDone)
	}
}

// manualClock is a trivial Clock for timeout tests.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time {
	return c.now
}
