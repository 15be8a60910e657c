// Package raster is a software canvas over an *image.RGBA, rasterized with
// golang.org/x/image/vector. The terminal frontend presents its pixels.
package raster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/canvas"
	"golang.org/x/image/vector"
)

type Canvas struct {
	canvas.State

	img *image.RGBA
	ras *vector.Rasterizer
}

func New(w, h int) *Canvas {
	c := &Canvas{State: canvas.NewState()}
	c.Resize(w, h)
	return c
}

// Resize reallocates the backing image when the size changes.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if c.img != nil && c.img.Bounds().Dx() == w && c.img.Bounds().Dy() == h {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	c.ras = vector.NewRasterizer(w, h)
}

// Begin resets the transform stack for a new frame.
func (c *Canvas) Begin() {
	c.ResetTransform()
}

func (c *Canvas) Image() *image.RGBA {
	return c.img
}

func (c *Canvas) Size() mgl64.Vec2 {
	b := c.img.Bounds()
	return mgl64.Vec2{float64(b.Dx()), float64(b.Dy())}
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	r := image.Rect(int(x), int(y), int(x+w), int(y+h))
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Canvas) Fill(col color.Color) {
	c.ras.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	drawn := false
	for _, sp := range c.Path() {
		if len(sp.Points) < 3 {
			continue
		}
		c.ras.MoveTo(float32(sp.Points[0].X()), float32(sp.Points[0].Y()))
		for _, p := range sp.Points[1:] {
			c.ras.LineTo(float32(p.X()), float32(p.Y()))
		}
		c.ras.ClosePath()
		drawn = true
	}
	if drawn {
		c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	}
}

// Stroke rasterizes each segment as a thickened quad at least one pixel wide.
func (c *Canvas) Stroke(col color.Color, width float64) {
	w := width * c.LineScale()
	if w < 1 {
		w = 1
	}
	c.ras.Reset(c.img.Bounds().Dx(), c.img.Bounds().Dy())
	drawn := false
	for _, sp := range c.Path() {
		for _, seg := range sp.Segments() {
			q, ok := canvas.SegmentQuad(seg[0], seg[1], w)
			if !ok {
				continue
			}
			c.ras.MoveTo(float32(q[0].X()), float32(q[0].Y()))
			for _, p := range q[1:] {
				c.ras.LineTo(float32(p.X()), float32(p.Y()))
			}
			c.ras.ClosePath()
			drawn = true
		}
	}
	if drawn {
		c.ras.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	}
}
