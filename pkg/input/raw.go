package input

import (
	"time"

	"github.com/go-drift/keel/pkg/geometry"
)

// WindowID is an opaque platform window identifier. Drivers allocate
// them; the scheduler routes raw events by them.
type WindowID uint64

// RawKind identifies the type of a raw window event.
type RawKind int

const (
	// RawUnknown is the zero RawKind.
	RawUnknown RawKind = iota
	// RawPointerMoved reports the pointer at a new window position.
	RawPointerMoved
	// RawPointerPressed reports a button press at the current position.
	RawPointerPressed
	// RawPointerReleased reports a button release at the current position.
	RawPointerReleased
	// RawScroll reports wheel or trackpad scrolling.
	RawScroll
	// RawKeyPressed reports a key press, with Rune set for characters.
	RawKeyPressed
	// RawKeyReleased reports a key release.
	RawKeyReleased
	// RawResized reports a new inner size and scale factor.
	RawResized
	// RawCloseRequested reports the user asking the window to close.
	RawCloseRequested
	// RawRedrawRequested reports the platform asking for a frame.
	RawRedrawRequested
)

func (k RawKind) String() string {
	switch k {
	case RawPointerMoved:
		return "pointerMoved"
	case RawPointerPressed:
		return "pointerPressed"
	case RawPointerReleased:
		return "pointerReleased"
	case RawScroll:
		return "scroll"
	case RawKeyPressed:
		return "keyPressed"
	case RawKeyReleased:
		return "keyReleased"
	case RawResized:
		return "resized"
	case RawCloseRequested:
		return "closeRequested"
	case RawRedrawRequested:
		return "redrawRequested"
	default:
		return "unknown"
	}
}

// WindowEvent is a raw event for one window, as produced by a platform
// driver. The driver must deliver events for a window in arrival order.
type WindowEvent struct {
	Kind      RawKind
	Position  geometry.Offset
	Button    Button
	Modifiers Modifiers
	Scroll    geometry.Offset
	Device    DeviceID
	Key       Key
	Rune      rune
	Size      geometry.Size
	Scale     float64
	Time      time.Time
}
