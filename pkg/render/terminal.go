package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalCanvasSize returns the canvas size that fills cols x rows terminal
// cells. Each cell shows two vertically stacked pixels.
func TerminalCanvasSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Draw presents the canvas on scr inside area, one upper half block per cell:
// the foreground is the top pixel and the background the bottom one. Pixels
// outside the canvas leave their cells untouched.
func (c *Canvas) Draw(scr uv.Screen, area uv.Rectangle) {
	rows := min(area.Max.Y-area.Min.Y, (c.Height+1)/2)
	cols := min(area.Max.X-area.Min.X, c.Width)

	for row := range rows {
		for col := range cols {
			scr.SetCell(area.Min.X+col, area.Min.Y+row, halfBlock(
				c.GetPixel(col, 2*row),
				c.GetPixel(col, 2*row+1),
			))
		}
	}
}

func halfBlock(top, bottom color.RGBA) *uv.Cell {
	return &uv.Cell{
		Content: "▀",
		Width:   1,
		Style:   uv.Style{Fg: cellColor(top), Bg: cellColor(bottom)},
	}
}

// cellColor maps a fully transparent pixel to the terminal default color.
func cellColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil
	}
	return c
}
