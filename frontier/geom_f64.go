package frontier

import (
	"math"
)

// Rectangle is an axis-aligned extent in world coordinates.
// (X, Y) is the lower-left corner.
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func NewRect(x, y, width, height float64) Rectangle {
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// cellRect returns square footprint of a grid cell centred on p
func cellRect(p Point, resolution float64) Rectangle {
	half := resolution / 2.0
	return Rectangle{
		X:      p.X - half,
		Y:      p.Y - half,
		Width:  resolution,
		Height: resolution,
	}
}

// Union returns the smallest rectangle covering both r and other
func (r Rectangle) Union(other Rectangle) Rectangle {
	minX := minFloat64(r.X, other.X)
	minY := minFloat64(r.Y, other.Y)
	maxX := maxFloat64(r.X+r.Width, other.X+other.Width)
	maxY := maxFloat64(r.Y+r.Height, other.Y+other.Height)
	return Rectangle{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Center returns rectangle's centre point
func (r Rectangle) Center() Point {
	return Point{
		X: r.X + r.Width/2.0,
		Y: r.Y + r.Height/2.0,
	}
}

// Point is a position in world coordinates
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{
		X: x,
		Y: y,
	}
}

func euclideanDistance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(float64(p1.X-p2.X), 2) + math.Pow(float64(p1.Y-p2.Y), 2))
}
