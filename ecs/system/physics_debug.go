package system

import (
	"image/color"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/sandpit/canvas"
	"github.com/milk9111/sandpit/ecs"
)

const (
	debugCircleSegments = 24
	debugDotSize        = 4
	debugLinePixels     = 1
)

// DrawPhysicsDebug overlays Chipmunk's own view of the space on c, using the
// same camera transform as RenderSystem.
func DrawPhysicsDebug(space *cp.Space, w *ecs.World, c canvas.Canvas, initialZoom float64) {
	if space == nil || w == nil || c == nil {
		return
	}

	cam := currentCamera(w, initialZoom)
	size := c.Size()
	c.Save()
	c.Translate(size.X()/2, size.Y()/2)
	c.Scale(cam.Zoom, cam.Zoom)
	c.Translate(-cam.X, -cam.Y)

	drawer := &physicsDebugDrawer{canvas: c, pixel: 1 / cam.Zoom}
	cp.DrawSpace(space, drawer)

	c.Restore()
}

type physicsDebugDrawer struct {
	canvas canvas.Canvas
	// pixel is one screen pixel in world units.
	pixel float64
}

func (d *physicsDebugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *physicsDebugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *physicsDebugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *physicsDebugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *physicsDebugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = debugDotSize
	}
	half := size * d.pixel / 2
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *physicsDebugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *physicsDebugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cp.FColor{R: 0.1, G: 0.6, B: 0.1, A: 0.5}
}

func (d *physicsDebugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *physicsDebugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *physicsDebugDrawer) Data() interface{} {
	return nil
}

func (d *physicsDebugDrawer) drawLine(a, b cp.Vector, col cp.FColor) {
	d.canvas.BeginPath()
	d.canvas.MoveTo(a.X, a.Y)
	d.canvas.LineTo(b.X, b.Y)
	d.canvas.Stroke(toNRGBA(col), debugLinePixels*d.pixel)
}

func (d *physicsDebugDrawer) drawPolygon(verts []cp.Vector, col cp.FColor) {
	if len(verts) == 0 {
		return
	}
	d.canvas.BeginPath()
	d.canvas.MoveTo(verts[0].X, verts[0].Y)
	for _, v := range verts[1:] {
		d.canvas.LineTo(v.X, v.Y)
	}
	d.canvas.ClosePath()
	d.canvas.Stroke(toNRGBA(col), debugLinePixels*d.pixel)
}

func (d *physicsDebugDrawer) drawCircle(center cp.Vector, radius float64, col cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, debugCircleSegments)
	for i := 0; i < debugCircleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(debugCircleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, col)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
