package sched

import "time"

// Clock abstracts time for the loop so tests can control timer firing
// deterministically.
type Clock interface {
	Now() time.Time
}

// systemClock reads the wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the wall clock used by default.
func SystemClock() Clock {
	return systemClock{}
}
