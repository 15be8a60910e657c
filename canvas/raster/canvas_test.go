package raster

import (
	"image/color"
	"testing"
)

var (
	background = color.RGBA{0x1a, 0x1a, 0x1a, 0xff}
	red        = color.RGBA{0xff, 0, 0, 0xff}
)

func TestFillRect(t *testing.T) {
	c := New(10, 10)
	c.FillRect(0, 0, 10, 10, background)
	c.FillRect(8, 8, 10, 10, red)

	if got := c.Image().RGBAAt(0, 0); got != background {
		t.Fatalf("expected background, got %v", got)
	}
	if got := c.Image().RGBAAt(9, 9); got != red {
		t.Fatalf("expected clipped red rect at 9,9, got %v", got)
	}
}

func TestFillTransformedSquare(t *testing.T) {
	c := New(40, 40)
	c.Begin()
	c.FillRect(0, 0, 40, 40, background)
	c.Save()
	c.Translate(20, 20)
	c.Scale(10, 10)
	c.BeginPath()
	c.MoveTo(-0.5, -0.5)
	c.LineTo(0.5, -0.5)
	c.LineTo(0.5, 0.5)
	c.LineTo(-0.5, 0.5)
	c.ClosePath()
	c.Fill(red)
	c.Restore()

	if got := c.Image().RGBAAt(20, 20); got != red {
		t.Fatalf("expected square center filled, got %v", got)
	}
	if got := c.Image().RGBAAt(2, 2); got != background {
		t.Fatalf("expected corner untouched, got %v", got)
	}
}

func TestStrokeHorizontalLine(t *testing.T) {
	c := New(20, 20)
	c.Begin()
	c.FillRect(0, 0, 20, 20, background)
	c.BeginPath()
	c.MoveTo(2, 10)
	c.LineTo(18, 10)
	c.Stroke(red, 4)

	if got := c.Image().RGBAAt(10, 10); got != red {
		t.Fatalf("expected stroke at 10,10, got %v", got)
	}
	if got := c.Image().RGBAAt(10, 2); got != background {
		t.Fatalf("expected no stroke at 10,2, got %v", got)
	}
}

func TestResizeKeepsImageWhenUnchanged(t *testing.T) {
	c := New(8, 4)
	img := c.Image()
	c.Resize(8, 4)
	if c.Image() != img {
		t.Fatal("same-size resize should keep the image")
	}
	c.Resize(16, 4)
	if c.Size().X() != 16 {
		t.Fatalf("expected width 16, got %v", c.Size())
	}
}
