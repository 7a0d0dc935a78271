package input

// Key identifies a non-character key. Character input arrives as the
// Rune field of a key event; Key stays KeyUnknown for plain characters.
type Key int

const (
	// KeyUnknown means the key has no named mapping.
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyShift
	KeyControl
	KeyAlt
	KeyMeta
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	case KeySpace:
		return "space"
	case KeyBackspace:
		return "backspace"
	case KeyDelete:
		return "delete"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyHome:
		return "home"
	case KeyEnd:
		return "end"
	case KeyPageUp:
		return "pageUp"
	case KeyPageDown:
		return "pageDown"
	case KeyShift:
		return "shift"
	case KeyControl:
		return "control"
	case KeyAlt:
		return "alt"
	case KeyMeta:
		return "meta"
	default:
		return "unknown"
	}
}
