// Package input defines the event model shared by the platform drivers,
// the scheduler's window sinks, and the dispatcher: raw window events as
// produced by a platform driver, and routed events as delivered to nodes.
package input

import (
	"fmt"
	"time"

	"github.com/go-drift/keel/pkg/geometry"
)

// Kind identifies the type of a routed event.
type Kind int

const (
	// KindUnknown is the zero Kind.
	KindUnknown Kind = iota
	// KindPointerDown is a button press delivered to the target chain.
	KindPointerDown
	// KindPointerUp is a button release delivered to the target chain.
	KindPointerUp
	// KindPointerMove is a pointer motion delivered to the target chain.
	KindPointerMove
	// KindScroll is a wheel or trackpad scroll delivered to the target chain.
	KindScroll
	// KindPointerEnter is delivered directly to each node newly under the pointer.
	KindPointerEnter
	// KindPointerLeave is delivered directly to each node no longer under the pointer.
	KindPointerLeave
	// KindPointerOver bubbles from the new innermost node when it changes.
	KindPointerOver
	// KindPointerOut bubbles from the previous innermost node when it changes.
	KindPointerOut
	// KindKeyDown is a key press bubbling from the focus node.
	KindKeyDown
	// KindKeyUp is a key release bubbling from the focus node.
	KindKeyUp
	// KindFocusIn is delivered directly to a node gaining input focus.
	KindFocusIn
	// KindFocusOut is delivered directly to a node losing input focus.
	KindFocusOut
)

func (k Kind) String() string {
	switch k {
	case KindPointerDown:
		return "pointerDown"
	case KindPointerUp:
		return "pointerUp"
	case KindPointerMove:
		return "pointerMove"
	case KindScroll:
		return "scroll"
	case KindPointerEnter:
		return "pointerEnter"
	case KindPointerLeave:
		return "pointerLeave"
	case KindPointerOver:
		return "pointerOver"
	case KindPointerOut:
		return "pointerOut"
	case KindKeyDown:
		return "keyDown"
	case KindKeyUp:
		return "keyUp"
	case KindFocusIn:
		return "focusIn"
	case KindFocusOut:
		return "focusOut"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsPointer reports whether the kind is one of the pointer kinds,
// including the derived enter/leave/over/out kinds.
func (k Kind) IsPointer() bool {
	switch k {
	case KindPointerDown, KindPointerUp, KindPointerMove, KindScroll,
		KindPointerEnter, KindPointerLeave, KindPointerOver, KindPointerOut:
		return true
	}
	return false
}

// Event is a routed event as seen by a node handler.
//
// Position is in window coordinates; Local is the same point mapped into
// the receiving node's coordinate space, recomputed per delivery while an
// event bubbles. Button is ButtonNone except on down/up events.
type Event struct {
	Kind        Kind
	Position    geometry.Offset
	Local       geometry.Offset
	Button      Button
	Buttons     Buttons
	Modifiers   Modifiers
	RepeatCount int
	Scroll      geometry.Offset
	Device      DeviceID
	Key         Key
	Rune        rune
	Time        time.Time
}
