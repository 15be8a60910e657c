package component

// Camera is the world point at the viewport center and the zoom in pixels
// per world unit. ViewportW and ViewportH track the canvas size in pixels.
type Camera struct {
	X, Y      float64
	Zoom      float64
	ViewportW float64
	ViewportH float64
}

var CameraComponent = NewComponent[Camera]()
