/*
Package crspline implements 3D vectors, affine transformations and numeric
helpers shared by the Catmull-Rom spline packages.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package crspline

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'crspline'
func tracer() tracing.Trace {
	return tracing.Select("crspline")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Is1 is a predicate: is n = 1.0 ?
func Is1(n float64) bool {
	return math.Abs(1-n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Vector Data Type ======================================================

// Vec3 is a point or direction in 3D space.
type Vec3 struct {
	X, Y, Z float64
}

// Origin represents the frequently used constant (0,0,0).
var Origin = V(0, 0, 0)

// Up is the world-up axis. Spline normals are computed against it.
var Up = V(0, 1, 0)

// V is a quick notation for constructing a vector from floats.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Pretty Stringer for vectors.
func (v Vec3) String() string {
	return fmt.Sprintf("(%g,%g,%g)", v.X, v.Y, v.Z)
}

// F returns the coordinates of v.
func (v Vec3) F() (float64, float64, float64) {
	return v.X, v.Y, v.Z
}

// IsNaN is a predicate: does any coordinate of v hold NaN?
func (v Vec3) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scaled returns a new vector scaled by factor a.
func (v Vec3) Scaled(a float64) Vec3 {
	return Vec3{v.X * a, v.Y * a, v.Z * a}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product v × w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Norm returns the length of v.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalized returns a unit vector with the direction of v.
// The zero vector has no direction and is returned unchanged.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return v.Scaled(1 / n)
}

// IsOrigin is a predicate: is this vector the origin?
func (v Vec3) IsOrigin() bool {
	return v.Equal(Origin)
}

// Equal compares two vectors, coordinate-wise within Epsilon.
func (v Vec3) Equal(w Vec3) bool {
	return Is0(v.X-w.X) && Is0(v.Y-w.Y) && Is0(v.Z-w.Z)
}

// Zap rounds all coordinates to Epsilon.
func (v Vec3) Zap() Vec3 {
	return Vec3{Zap(v.X), Zap(v.Y), Zap(v.Z)}
}

// Shifted returns a new vector translated by w.
func (v Vec3) Shifted(w Vec3) Vec3 {
	return Translation(w).Transform(v)
}

// RotatedY returns a new vector rotated around the up-axis by theta.
func (v Vec3) RotatedY(theta float64) Vec3 {
	return RotationY(theta).Transform(v).Zap()
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 4x4 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	return make([]float64, 16)
}

func (m AT) get(row, col int) float64 {
	return m[row*4+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*4+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*4 : (row+1)*4]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 4)
	for row := 0; row < 4; row++ {
		c[row] = m.get(row, col)
	}
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	for i := 0; i < 4; i++ {
		m.set(i, i, 1.0)
	}
	return m
}

// Translation transform. Translate a point by (dx,dy,dz).
func Translation(v Vec3) AT {
	m := Identity()
	m.set(0, 3, v.X)
	m.set(1, 3, v.Y)
	m.set(2, 3, v.Z)
	return m
}

// RotationY transform. Rotate a point around the up-axis, counter-clockwise
// when looking down onto the ground plane. Argument is in radians.
func RotationY(theta float64) AT {
	m := Identity()
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	m.set(0, 0, cos)
	m.set(0, 2, sin)
	m.set(2, 0, -sin)
	m.set(2, 2, cos)
	return m
}

// Scaling transform. Scale a point uniformly by s, relative to the origin.
func Scaling(s float64) AT {
	m := Identity()
	for i := 0; i < 3; i++ {
		m.set(i, i, s)
	}
	return m
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := "["
	for row := 0; row < 4; row++ {
		if row > 0 {
			s += "|"
		}
		r := m.row(row)
		s += fmt.Sprintf("%g,%g,%g,%g", r[0], r[1], r[2], r[3])
	}
	return s + "]"
}

func dotProd(vec1, vec2 []float64) float64 {
	sum := 0.0
	for i := range vec1 {
		sum += vec1[i] * vec2[i]
	}
	return sum
}

// Combine 2 affine transformation to a new one: m is applied first, then n.
// Returns a new transformation without changing the argument(s).
func (m AT) Combine(n AT) AT {
	if len(m) != 16 || len(n) != 16 {
		tracer().Errorf("combining malformed affine transforms")
		return Identity()
	}
	o := newAT()
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 4)
	for row := 0; row < 4; row++ {
		c[row] = dotProd(m.row(row), v)
	}
	return c
}

// Transform a 3D-point. The argument is unchanged and a new vector is returned.
func (m AT) Transform(v Vec3) Vec3 {
	c := m.multiplyVector([]float64{v.X, v.Y, v.Z, 1.0})
	return V(c[0], c[1], c[2])
}
