package testing_test

import (
	"testing"
	"time"

	keeltesting "github.com/go-drift/keel/pkg/testing"
)

func TestFakeClockAdvance(t *testing.T) {
	clock := keeltesting.NewFakeClock()
	start := clock.Now()

	clock.Advance(time.Second)
	if got := clock.Now().Sub(start); got != time.Second {
		t.Fatalf("after Advance(1s): moved %v", got)
	}

	clock.Advance(-time.Hour)
	if got := clock.Now().Sub(start); got != time.Second {
		t.Fatalf("negative Advance moved the clock: %v", got)
	}

	target := start.Add(42 * time.Minute)
	clock.Set(target)
	if !clock.Now().Equal(target) {
		t.Fatalf("Set: now = %v, want %v", clock.Now(), target)
	}
}

func TestFakeClockDeterministicStart(t *testing.T) {
	a := keeltesting.NewFakeClock()
	b := keeltesting.NewFakeClock()
	if !a.Now().Equal(b.Now()) {
		t.Fatalf("two fresh clocks disagree: %v vs %v", a.Now(), b.Now())
	}
}
