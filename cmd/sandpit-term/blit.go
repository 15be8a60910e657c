package main

import (
	"image"

	"github.com/gdamore/tcell/v2"
)

const upperHalfBlock = '▀'

// blit draws img onto the screen two rows per cell: the upper pixel is the
// foreground of a half block and the lower pixel its background.
func blit(screen tcell.Screen, img *image.RGBA, rows int) {
	b := img.Bounds()
	for cy := 0; cy < rows; cy++ {
		top := b.Min.Y + cy*2
		if top >= b.Max.Y {
			return
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			fg := rgbAt(img, x, top)
			bg := fg
			if top+1 < b.Max.Y {
				bg = rgbAt(img, x, top+1)
			}
			screen.SetContent(x-b.Min.X, cy, upperHalfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func rgbAt(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// drawText writes s on row y, clipped to the screen width.
func drawText(screen tcell.Screen, y int, s string, style tcell.Style) {
	w, _ := screen.Size()
	x := 0
	for _, r := range s {
		if x >= w {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}
