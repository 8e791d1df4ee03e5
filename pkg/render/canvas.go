package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
)

// Canvas is a grid of pixels. Rendering addresses it in centered coordinates:
// (0, 0) is the middle of the canvas, X grows right and Y grows up.
// SetPixel and GetPixel use buffer coordinates with the origin at the top left.
type Canvas struct {
	Width  int
	Height int
	Pixels []color.RGBA // Row-major pixel data
}

// NewCanvas creates a new canvas with the given dimensions.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the canvas with a solid color.
func (c *Canvas) Clear(col color.RGBA) {
	for i := range c.Pixels {
		c.Pixels[i] = col
	}
}

// ToBuffer maps centered coordinates to buffer coordinates.
func (c *Canvas) ToBuffer(x, y int) (int, int) {
	return c.Width/2 + x, c.Height/2 - y
}

// SetPixel sets the pixel at buffer coordinates (x, y).
// Out-of-bounds writes are dropped.
func (c *Canvas) SetPixel(x, y int, col color.RGBA) {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return
	}
	c.Pixels[y*c.Width+x] = col
}

// GetPixel returns the color at buffer coordinates (x, y).
// Returns transparent black if out of bounds.
func (c *Canvas) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= c.Width || y < 0 || y >= c.Height {
		return color.RGBA{}
	}
	return c.Pixels[y*c.Width+x]
}

// PutPixel sets the pixel at centered coordinates (x, y).
func (c *Canvas) PutPixel(x, y int, col color.RGBA) {
	px, py := c.ToBuffer(x, y)
	c.SetPixel(px, py, col)
}

// At returns the color at centered coordinates (x, y).
func (c *Canvas) At(x, y int) color.RGBA {
	return c.GetPixel(c.ToBuffer(x, y))
}

// DrawLine draws a line between two points in centered coordinates by
// interpolating along the longer axis.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col color.RGBA) {
	if abs(x1-x0) > abs(y1-y0) {
		if x0 > x1 {
			x0, y0, x1, y1 = x1, y1, x0, y0
		}
		ys := interpolate(x0, float64(y0), x1, float64(y1), nil)
		for i, y := range ys {
			c.PutPixel(x0+i, int(y), col)
		}
		return
	}

	if y0 > y1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	xs := interpolate(y0, float64(x0), y1, float64(x1), nil)
	for i, x := range xs {
		c.PutPixel(int(x), y0+i, col)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the canvas to a standard Go image.RGBA.
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			img.SetRGBA(x, y, c.Pixels[y*c.Width+x])
		}
	}
	return img
}

// SavePNG saves the canvas as a PNG file, upscaled by an integer factor with
// nearest-neighbor sampling so single pixels stay crisp.
func (c *Canvas) SavePNG(path string, scale int) error {
	var img image.Image = c.ToImage()
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, c.Width*scale, c.Height*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
		img = dst
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
