// Package ebitencanvas draws canvas paths onto an *ebiten.Image.
package ebitencanvas

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/sandpit/canvas"
)

var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}()

type Canvas struct {
	canvas.State

	dst      *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

func New() *Canvas {
	return &Canvas{State: canvas.NewState()}
}

// Begin targets dst for the next frame and resets the transform stack.
func (c *Canvas) Begin(dst *ebiten.Image) {
	c.dst = dst
	c.ResetTransform()
}

func (c *Canvas) Size() mgl64.Vec2 {
	if c.dst == nil {
		return mgl64.Vec2{}
	}
	b := c.dst.Bounds()
	return mgl64.Vec2{float64(b.Dx()), float64(b.Dy())}
}

func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	if c.dst == nil {
		return
	}
	vector.FillRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, false)
}

// Fill draws every subpath as a triangle fan. Only convex outlines fill
// correctly.
func (c *Canvas) Fill(col color.Color) {
	if c.dst == nil {
		return
	}
	r, g, b, a := colorToFloats(col)
	for _, sp := range c.Path() {
		if len(sp.Points) < 3 {
			continue
		}
		c.vertices = c.vertices[:0]
		c.indices = c.indices[:0]
		for _, p := range sp.Points {
			c.vertices = append(c.vertices, ebiten.Vertex{
				DstX:   float32(p.X()),
				DstY:   float32(p.Y()),
				SrcX:   0,
				SrcY:   0,
				ColorR: r,
				ColorG: g,
				ColorB: b,
				ColorA: a,
			})
		}
		for i := 1; i+1 < len(sp.Points); i++ {
			c.indices = append(c.indices, 0, uint16(i), uint16(i+1))
		}
		c.dst.DrawTriangles(c.vertices, c.indices, whitePixel, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}

func (c *Canvas) Stroke(col color.Color, width float64) {
	if c.dst == nil {
		return
	}
	w := float32(width * c.LineScale())
	if w < 1 {
		w = 1
	}
	for _, sp := range c.Path() {
		for _, seg := range sp.Segments() {
			vector.StrokeLine(c.dst,
				float32(seg[0].X()), float32(seg[0].Y()),
				float32(seg[1].X()), float32(seg[1].Y()),
				w, col, true)
		}
	}
}

func colorToFloats(col color.Color) (r, g, b, a float32) {
	cr, cg, cb, ca := col.RGBA()
	return float32(cr) / 0xffff, float32(cg) / 0xffff, float32(cb) / 0xffff, float32(ca) / 0xffff
}
