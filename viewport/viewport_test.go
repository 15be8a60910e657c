package viewport

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestScreenToWorld(t *testing.T) {
	tests := []struct {
		name   string
		p      mgl64.Vec2
		canvas mgl64.Vec2
		camera mgl64.Vec2
		zoom   float64
		want   mgl64.Vec2
	}{
		{"center_is_camera", mgl64.Vec2{400, 300}, mgl64.Vec2{800, 600}, mgl64.Vec2{0, 0}, 30, mgl64.Vec2{0, 0}},
		{"center_offset_camera", mgl64.Vec2{400, 300}, mgl64.Vec2{800, 600}, mgl64.Vec2{5, -2}, 30, mgl64.Vec2{5, -2}},
		{"top_left", mgl64.Vec2{0, 0}, mgl64.Vec2{800, 600}, mgl64.Vec2{0, 0}, 10, mgl64.Vec2{-40, -30}},
		{"right_edge_zoomed", mgl64.Vec2{800, 300}, mgl64.Vec2{800, 600}, mgl64.Vec2{1, 1}, 100, mgl64.Vec2{5, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScreenToWorld(tc.p, tc.canvas, tc.camera, tc.zoom)
			if !got.ApproxEqualThreshold(tc.want, 1e-9) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		p := mgl64.Vec2{rng.Float64() * 1920, rng.Float64() * 1080}
		canvas := mgl64.Vec2{320 + rng.Float64()*1600, 240 + rng.Float64()*840}
		camera := mgl64.Vec2{rng.Float64()*80 - 40, rng.Float64()*40 - 20}
		zoom := 10 + rng.Float64()*90

		back := WorldToScreen(ScreenToWorld(p, canvas, camera, zoom), canvas, camera, zoom)
		if !back.ApproxEqualThreshold(p, 1e-6) {
			t.Fatalf("round trip %v -> %v (canvas %v camera %v zoom %v)", p, back, canvas, camera, zoom)
		}
	}
}

func TestMatrixMatchesWorldToScreen(t *testing.T) {
	canvas := mgl64.Vec2{800, 600}
	camera := mgl64.Vec2{3, -7}
	zoom := 42.0
	m := Matrix(canvas, camera, zoom)

	for _, w := range []mgl64.Vec2{{0, 0}, {3, -7}, {-40, 20}, {12.5, 0.25}} {
		want := WorldToScreen(w, canvas, camera, zoom)
		if got := Apply(m, w); !got.ApproxEqualThreshold(want, 1e-9) {
			t.Fatalf("matrix maps %v to %v, want %v", w, got, want)
		}
	}

	inv := m.Inv()
	p := mgl64.Vec2{10, 590}
	if got, want := Apply(inv, p), ScreenToWorld(p, canvas, camera, zoom); !got.ApproxEqualThreshold(want, 1e-9) {
		t.Fatalf("inverse maps %v to %v, want %v", p, got, want)
	}
}
