package chart

import "math"

// Box is an axis-aligned rectangle in surface pixels.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Contains checks if a point is inside the box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x <= b.X+b.Width && y >= b.Y && y <= b.Y+b.Height
}

// IsEmpty checks if the box has zero or negative area.
func (b Box) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// drawingBox is the surface minus the configured margins. Data is plotted
// inside this box; hit-test coordinates are relative to its origin.
func drawingBox(width, height float64, m Margin) Box {
	return Box{
		X:      m.Left,
		Y:      m.Top,
		Width:  width - m.Left - m.Right,
		Height: height - m.Top - m.Bottom,
	}
}

func dist(x0, y0, x1, y1 float64) float64 {
	return math.Hypot(x1-x0, y1-y0)
}
