package calc

import (
	"math"
	"strconv"

	"golang.org/x/image/math/f64"
)

// Vector is a point or direction on screen.
type Vector f64.Vec2

// Vec creates a vector.
func Vec(x, y float64) Vector {
	return Vector{x, y}
}

// X returns the horizontal component.
func (v Vector) X() float64 { return v[0] }

// Y returns the vertical component.
func (v Vector) Y() float64 { return v[1] }

func (v Vector) Add(w Vector) Vector {
	return Vector{v[0] + w[0], v[1] + w[1]}
}

func (v Vector) Sub(w Vector) Vector {
	return Vector{v[0] - w[0], v[1] - w[1]}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{v[0] * s, v[1] * s}
}

// Len returns the euclidean length of v.
func (v Vector) Len() float64 {
	return math.Hypot(v[0], v[1])
}

// Normalize returns v scaled to length 1. The zero vector stays zero.
func (v Vector) Normalize() Vector {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Distance returns the distance between two points.
func (v Vector) Distance(w Vector) float64 {
	return w.Sub(v).Len()
}

// String renders v as a tag argument "(x,y)".
func (v Vector) String() string {
	return "(" + FormatNumber(v[0]) + "," + FormatNumber(v[1]) + ")"
}

// FormatNumber formats x without exponent and without trailing zeros.
func FormatNumber(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
