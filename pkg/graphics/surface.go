package graphics

import "github.com/go-drift/keel/pkg/geometry"

// Surface is the rasterizer boundary for one window-sized layer.
//
// The window paints by recording a [DisplayList] and handing it to Present.
// A failed Present loses that frame only; the caller reports it and carries
// on with the next one.
type Surface interface {
	// Resize adjusts the layer to a new logical size and scale factor.
	Resize(size geometry.Size, scale float64) error

	// Present replays the frame onto the backing layer and commits it.
	Present(frame *DisplayList) error
}
