// Package testing provides the keel test harness: a [Tester] that runs
// a real scheduler loop and window against the headless testbed driver,
// with a [FakeClock] for deterministic timers and helpers to synthesize
// pointer and keyboard input.
//
// The package is named testing deliberately, mirroring the toolkit
// import path; import it alongside the standard library package with an
// alias:
//
//	import (
//	    "testing"
//
//	    keeltesting "github.com/go-drift/keel/pkg/testing"
//	)
//
//	func TestTap(t *testing.T) {
//	    tt := keeltesting.NewTesterWithT(t)
//	    tt.Mount(root)
//	    tt.TapAt(geometry.Offset{X: 20, Y: 20})
//	}
//
// Everything the harness does runs on the calling goroutine: synthetic
// events are pumped through the same scheduler path real drivers use,
// so capture, focus, enter/leave bookkeeping, and broadcast rendezvous
// behave exactly as in production.
package testing
