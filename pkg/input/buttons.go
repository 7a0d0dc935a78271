package input

// DeviceID distinguishes input devices so per-device state (such as
// click repeat counts) does not bleed across mice.
type DeviceID int64

// Button identifies a single pointer button.
type Button uint8

const (
	// ButtonNone means no button; move and derived events carry it.
	ButtonNone Button = iota
	// ButtonLeft is the primary button.
	ButtonLeft
	// ButtonRight is the secondary button.
	ButtonRight
	// ButtonMiddle is the wheel button.
	ButtonMiddle
	// ButtonX1 is the first extra button.
	ButtonX1
	// ButtonX2 is the second extra button.
	ButtonX2
)

func (b Button) String() string {
	switch b {
	case ButtonNone:
		return "none"
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonX1:
		return "x1"
	case ButtonX2:
		return "x2"
	}
	return "invalid"
}

// Buttons is the set of currently held pointer buttons.
type Buttons uint8

// With returns the set with b added.
func (s Buttons) With(b Button) Buttons {
	if b == ButtonNone {
		return s
	}
	return s | 1<<(b-1)
}

// Without returns the set with b removed.
func (s Buttons) Without(b Button) Buttons {
	if b == ButtonNone {
		return s
	}
	return s &^ (1 << (b - 1))
}

// Contains reports whether b is held.
func (s Buttons) Contains(b Button) bool {
	if b == ButtonNone {
		return false
	}
	return s&(1<<(b-1)) != 0
}

// IsEmpty reports whether no button is held.
func (s Buttons) IsEmpty() bool {
	return s == 0
}

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	// ModShift is either shift key.
	ModShift Modifiers = 1 << iota
	// ModControl is either control key.
	ModControl
	// ModAlt is either alt/option key.
	ModAlt
	// ModMeta is the platform command/super key.
	ModMeta
)

// Has reports whether every modifier in m is held.
func (s Modifiers) Has(m Modifiers) bool {
	return s&m == m
}
