package system

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/sandpit/canvas"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/ecs"
	"github.com/milk9111/sandpit/ecs/component"
	"github.com/milk9111/sandpit/physics"
)

var fallbackParticleColor color.Color = color.White

type RenderSystem struct {
	cfg *config.Config
}

func NewRenderSystem(cfg *config.Config) *RenderSystem {
	return &RenderSystem{cfg: cfg}
}

// Draw clears the canvas and draws every fixture of every body in world
// units through the camera transform.
func (r *RenderSystem) Draw(w *ecs.World, c canvas.Canvas) {
	size := c.Size()
	colors := r.cfg.Colors
	c.FillRect(0, 0, size.X(), size.Y(), colors.Background)

	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	cam := currentCamera(w, r.cfg.Camera.InitialZoom)

	c.Save()
	c.Translate(size.X()/2, size.Y()/2)
	c.Scale(cam.Zoom, cam.Zoom)
	c.Translate(-cam.X, -cam.Y)

	for _, b := range pw.Bodies() {
		fill := colors.Terrain.Color
		if b.Type() == physics.DynamicBody {
			fill = particleColor(w, b)
		}
		pos := b.Position()
		for _, f := range b.Fixtures() {
			c.Save()
			c.Translate(pos.X(), pos.Y())
			c.Rotate(b.Angle())
			r.drawShape(c, f.Shape, fill)
			c.Restore()
		}
	}

	c.Restore()
}

func (r *RenderSystem) drawShape(c canvas.Canvas, s physics.Shape, fill color.Color) {
	colors := r.cfg.Colors
	switch s := s.(type) {
	case physics.Box:
		drawClosed(c, s.Outline())
		c.Fill(fill)
	case physics.Polygon:
		drawClosed(c, s.Vertices)
		c.Fill(fill)
	case physics.Chain:
		c.BeginPath()
		c.MoveTo(s.Vertices[0].X(), s.Vertices[0].Y())
		for _, v := range s.Vertices[1:] {
			c.LineTo(v.X(), v.Y())
		}
		c.Stroke(colors.Terrain.Color, colors.TerrainLineWidth)
	case physics.Edge:
		c.BeginPath()
		c.MoveTo(s.A.X(), s.A.Y())
		c.LineTo(s.B.X(), s.B.Y())
		c.Stroke(colors.Terrain.Color, colors.TerrainLineWidth)
	}
}

func drawClosed(c canvas.Canvas, verts []mgl64.Vec2) {
	c.BeginPath()
	c.MoveTo(verts[0].X(), verts[0].Y())
	for _, v := range verts[1:] {
		c.LineTo(v.X(), v.Y())
	}
	c.ClosePath()
}

func particleColor(w *ecs.World, b physics.Body) color.Color {
	e, ok := b.UserData().(ecs.Entity)
	if !ok {
		return fallbackParticleColor
	}
	p, ok := ecs.Get(w, e, component.ParticleComponent)
	if !ok || p.Color == nil {
		return fallbackParticleColor
	}
	return p.Color
}

// currentCamera returns a copy of the camera, or the origin at the given
// zoom when the world has none.
func currentCamera(w *ecs.World, zoom float64) component.Camera {
	if e, ok := ecs.First(w, component.CameraComponent); ok {
		if cam, ok := ecs.Get(w, e, component.CameraComponent); ok {
			return *cam
		}
	}
	return component.Camera{Zoom: zoom}
}
