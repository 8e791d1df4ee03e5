package render

// Config holds the per-render settings. It is passed explicitly to a
// Renderer; nothing is shared between renderers.
type Config struct {
	// Viewport maps camera space onto the canvas.
	Viewport Viewport

	// Outline draws a darkened edge around every filled triangle.
	Outline bool
	// OutlineDarken is the Lab blend toward black used for outlines, in [0, 1].
	OutlineDarken float64

	// DisableBackfaceCulling rasterizes triangles facing away from the camera.
	DisableBackfaceCulling bool

	// SphereTest selects the instance-level bounding sphere comparison.
	SphereTest SphereTest
}

// DefaultConfig returns the default render settings.
func DefaultConfig() Config {
	return Config{
		Viewport:      DefaultViewport(),
		OutlineDarken: 0.5,
		SphereTest:    SphereTestSquaredRadius,
	}
}
