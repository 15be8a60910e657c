// Package viewport maps between canvas pixels and world units. Zoom is in
// pixels per world unit and the camera point sits at the canvas center.
package viewport

import "github.com/go-gl/mathgl/mgl64"

func ScreenToWorld(p, canvasSize, camera mgl64.Vec2, zoom float64) mgl64.Vec2 {
	return p.Sub(canvasSize.Mul(0.5)).Mul(1 / zoom).Add(camera)
}

func WorldToScreen(p, canvasSize, camera mgl64.Vec2, zoom float64) mgl64.Vec2 {
	return p.Sub(camera).Mul(zoom).Add(canvasSize.Mul(0.5))
}

// Matrix is the world-to-screen transform as translate(center) *
// scale(zoom) * translate(-camera).
func Matrix(canvasSize, camera mgl64.Vec2, zoom float64) mgl64.Mat3 {
	center := canvasSize.Mul(0.5)
	return mgl64.Translate2D(center.X(), center.Y()).
		Mul3(mgl64.Scale2D(zoom, zoom)).
		Mul3(mgl64.Translate2D(-camera.X(), -camera.Y()))
}

// Apply transforms a point by an affine 3x3 matrix.
func Apply(m mgl64.Mat3, p mgl64.Vec2) mgl64.Vec2 {
	return m.Mul3x1(p.Vec3(1)).Vec2()
}
