package render

// DepthBuffer stores inverse depth (1/z) per pixel in buffer coordinates.
// Larger values are closer to the camera. Zero means nothing has been drawn,
// which is farther than any visible surface.
type DepthBuffer struct {
	Width  int
	Height int
	Values []float64
}

// NewDepthBuffer creates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

// Clear resets every value to the empty sentinel.
func (d *DepthBuffer) Clear() {
	clear(d.Values)
}

// At returns the stored inverse depth at (x, y), or 0 if out of bounds.
func (d *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return 0
	}
	return d.Values[y*d.Width+x]
}

// TestAndSet stores invZ at (x, y) and reports true if it is closer than the
// current value. Out-of-bounds coordinates always fail.
func (d *DepthBuffer) TestAndSet(x, y int, invZ float64) bool {
	if x < 0 || x >= d.Width || y < 0 || y >= d.Height {
		return false
	}
	i := y*d.Width + x
	if invZ <= d.Values[i] {
		return false
	}
	d.Values[i] = invZ
	return true
}
