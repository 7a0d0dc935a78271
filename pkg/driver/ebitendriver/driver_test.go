package ebitendriver

import (
	"errors"
	"testing"

	"github.com/go-drift/keel/pkg/geometry"
	"github.com/go-drift/keel/pkg/graphics"
	"github.com/go-drift/keel/pkg/platform"
)

func TestCreateWindowIsSingle(t *testing.T) {
	d := New()
	h, err := d.CreateWindow(platform.Options{Size: geometry.Size{Width: 320, Height: 240}})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if h.ID() != windowID {
		t.Fatalf("ID = %v, want %v", h.ID(), windowID)
	}
	if got := h.InnerSize(); got != (geometry.Size{Width: 320, Height: 240}) {
		t.Fatalf("InnerSize = %v", got)
	}
	if h.Scale() != 1 {
		t.Fatalf("Scale = %v, want 1", h.Scale())
	}

	if _, err := d.CreateWindow(platform.Options{}); !errors.Is(err, platform.ErrWindowLimit) {
		t.Fatalf("second CreateWindow = %v, want ErrWindowLimit", err)
	}
}

func TestCreateWindowDefaultSize(t *testing.T) {
	d := New()
	h, err := d.CreateWindow(platform.Options{})
	if err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	if got := h.InnerSize(); got != DefaultSize {
		t.Fatalf("InnerSize = %v, want %v", got, DefaultSize)
	}
}

func TestRedrawRequestsCoalesce(t *testing.T) {
	d := New()
	h, _ := d.CreateWindow(platform.Options{})
	w := h.(*Window)

	if w.takeRedraw() {
		t.Fatal("fresh window owes a frame")
	}
	w.RequestRedraw()
	w.RequestRedraw()
	if !w.takeRedraw() {
		t.Fatal("requested frame not owed")
	}
	if w.takeRedraw() {
		t.Fatal("coalesced requests owed twice")
	}
}

func TestPresentAfterClose(t *testing.T) {
	d := New()
	h, _ := d.CreateWindow(platform.Options{})
	surf := h.Surface()

	var rec graphics.PictureRecorder
	rec.BeginRecording(geometry.Size{Width: 10, Height: 10})
	frame := rec.EndRecording()

	if err := surf.Present(frame); err != nil {
		t.Fatalf("Present: %v", err)
	}
	h.Close()
	if err := surf.Present(frame); !errors.Is(err, platform.ErrWindowClosed) {
		t.Fatalf("Present after Close = %v, want ErrWindowClosed", err)
	}
}
