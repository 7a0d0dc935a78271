package ebitendriver

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/input"
)

// wheelScale converts Ebitengine wheel ticks to logical scroll pixels.
const wheelScale = 40.0

// mouseButtons maps the polled Ebitengine buttons to routed buttons.
var mouseButtons = [...]struct {
	ebiten ebiten.MouseButton
	mapped input.Button
}{
	{ebiten.MouseButtonLeft, input.ButtonLeft},
	{ebiten.MouseButtonRight, input.ButtonRight},
	{ebiten.MouseButtonMiddle, input.ButtonMiddle},
	{ebiten.MouseButton3, input.ButtonX1},
	{ebiten.MouseButton4, input.ButtonX2},
}

// namedKeys maps Ebitengine keys to the named keys events carry. Left
// and right variants collapse into one key: a press is reported while
// either is held.
var namedKeys = [...]struct {
	mapped input.Key
	keys   []ebiten.Key
}{
	{input.KeyEscape, []ebiten.Key{ebiten.KeyEscape}},
	{input.KeyEnter, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}},
	{input.KeyTab, []ebiten.Key{ebiten.KeyTab}},
	{input.KeySpace, []ebiten.Key{ebiten.KeySpace}},
	{input.KeyBackspace, []ebiten.Key{ebiten.KeyBackspace}},
	{input.KeyDelete, []ebiten.Key{ebiten.KeyDelete}},
	{input.KeyLeft, []ebiten.Key{ebiten.KeyArrowLeft}},
	{input.KeyRight, []ebiten.Key{ebiten.KeyArrowRight}},
	{input.KeyUp, []ebiten.Key{ebiten.KeyArrowUp}},
	{input.KeyDown, []ebiten.Key{ebiten.KeyArrowDown}},
	{input.KeyHome, []ebiten.Key{ebiten.KeyHome}},
	{input.KeyEnd, []ebiten.Key{ebiten.KeyEnd}},
	{input.KeyPageUp, []ebiten.Key{ebiten.KeyPageUp}},
	{input.KeyPageDown, []ebiten.Key{ebiten.KeyPageDown}},
	{input.KeyShift, []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight}},
	{input.KeyControl, []ebiten.Key{ebiten.KeyControlLeft, ebiten.KeyControlRight}},
	{input.KeyAlt, []ebiten.Key{ebiten.KeyAltLeft, ebiten.KeyAltRight}},
	{input.KeyMeta, []ebiten.Key{ebiten.KeyMetaLeft, ebiten.KeyMetaRight}},
}

// poller diffs polled Ebitengine input state against the previous tick
// and emits the corresponding raw window events.
type poller struct {
	started bool
	cursor  geometry.Offset
	buttons [len(mouseButtons)]bool
	keys    [len(namedKeys)]bool
	runeBuf []rune
}

// poll reads the current input state and returns the events since the
// last call: cursor motion first, then button edges, scroll, named key
// edges, and finally character input.
func (p *poller) poll(now time.Time) []input.WindowEvent {
	var evs []input.WindowEvent
	mods := readModifiers()

	mx, my := ebiten.CursorPosition()
	pos := geometry.Offset{X: float64(mx), Y: float64(my)}
	if !p.started || pos != p.cursor {
		p.started = true
		p.cursor = pos
		evs = append(evs, input.WindowEvent{
			Kind:      input.RawPointerMoved,
			Position:  pos,
			Modifiers: mods,
			Time:      now,
		})
	}

	for i, mb := range mouseButtons {
		pressed := ebiten.IsMouseButtonPressed(mb.ebiten)
		if pressed == p.buttons[i] {
			continue
		}
		p.buttons[i] = pressed
		kind := input.RawPointerReleased
		if pressed {
			kind = input.RawPointerPressed
		}
		evs = append(evs, input.WindowEvent{
			Kind:      kind,
			Position:  pos,
			Button:    mb.mapped,
			Modifiers: mods,
			Time:      now,
		})
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		evs = append(evs, input.WindowEvent{
			Kind:      input.RawScroll,
			Position:  pos,
			Scroll:    geometry.Offset{X: wx * wheelScale, Y: wy * wheelScale},
			Modifiers: mods,
			Time:      now,
		})
	}

	for i, nk := range namedKeys {
		pressed := anyKeyPressed(nk.keys)
		if pressed == p.keys[i] {
			continue
		}
		p.keys[i] = pressed
		kind := input.RawKeyReleased
		if pressed {
			kind = input.RawKeyPressed
		}
		evs = append(evs, input.WindowEvent{
			Kind:      kind,
			Position:  pos,
			Key:       nk.mapped,
			Modifiers: mods,
			Time:      now,
		})
	}

	p.runeBuf = ebiten.AppendInputChars(p.runeBuf[:0])
	for _, r := range p.runeBuf {
		evs = append(evs, input.WindowEvent{
			Kind:      input.RawKeyPressed,
			Position:  pos,
			Rune:      r,
			Modifiers: mods,
			Time:      now,
		})
	}

	return evs
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func readModifiers() input.Modifiers {
	var mods input.Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= input.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= input.ModControl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= input.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= input.ModMeta
	}
	return mods
}
