/*
Package polygon deals with flat polygons on the ground plane.

The main use is the footprint of a sampled spline: the sample positions
projected onto the plane perpendicular to the world-up axis. Footprints
support bounding boxes, point containment and overlap tests, backed by the
polygon clipping of package polyclip.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"fmt"
	"math"

	"github.com/akavel/polyclip-go"
	"github.com/npillmayer/crspline"
	"github.com/npillmayer/crspline/catmull"
	"github.com/npillmayer/schuko/tracing"
)

// L traces to the global tracer with key 'crspline.polygon'.
func L() tracing.Trace {
	return tracing.Select("crspline.polygon")
}

// Pt is a shortcut for a point on the plane.
func Pt(x, y float64) polyclip.Point {
	return polyclip.Point{X: x, Y: y}
}

// Polygon is a sequence of knots on the plane, either open or closed.
type Polygon struct {
	contour polyclip.Contour
	cycle   bool
}

// NullPolygon creates an empty polygon.
func NullPolygon() *Polygon {
	return &Polygon{contour: polyclip.Contour{}}
}

// Knot appends a knot.
func (pg *Polygon) Knot(p polyclip.Point) *Polygon {
	pg.contour.Add(p)
	return pg
}

// Cycle closes a polygon.
func (pg *Polygon) Cycle() *Polygon {
	pg.cycle = true
	return pg
}

// Box creates a closed, axis-aligned rectangle from two opposite corners.
// Knots are ordered counter-clockwise, starting at the lower left corner.
func Box(p, q polyclip.Point) *Polygon {
	minx, maxx := math.Min(p.X, q.X), math.Max(p.X, q.X)
	miny, maxy := math.Min(p.Y, q.Y), math.Max(p.Y, q.Y)
	return NullPolygon().Knot(Pt(minx, miny)).Knot(Pt(maxx, miny)).
		Knot(Pt(maxx, maxy)).Knot(Pt(minx, maxy)).Cycle()
}

// Footprint projects the positions of samples onto the ground plane,
// perpendicular to crspline.Up. The world X axis becomes X, the world Z axis
// becomes Y. Samples of a closed loop repeat their first position at the
// end; the duplicate is dropped and the footprint is closed instead.
func Footprint(samples []catmull.SamplePoint) *Polygon {
	pg := NullPolygon()
	if len(samples) == 0 {
		return pg
	}
	n := len(samples)
	first, last := samples[0].Position, samples[n-1].Position
	closed := n > 2 && first.Sub(last).Norm() <= crspline.Epsilon
	if closed {
		n--
	}
	for _, sp := range samples[:n] {
		pg.Knot(Pt(sp.Position.X, sp.Position.Z))
	}
	if closed {
		pg.Cycle()
	}
	L().Debugf("footprint of %d samples has %d knots", len(samples), pg.N())
	return pg
}

// N returns the number of knots.
func (pg *Polygon) N() int {
	if pg == nil {
		return 0
	}
	return len(pg.contour)
}

// IsCycle is true for closed polygons.
func (pg *Polygon) IsCycle() bool {
	return pg != nil && pg.cycle
}

// Knots returns a copy of the knots of a polygon.
func (pg *Polygon) Knots() []polyclip.Point {
	if pg == nil {
		return nil
	}
	return pg.contour.Clone()
}

// BoundingBox returns the smallest axis-aligned rectangle containing all knots.
func (pg *Polygon) BoundingBox() polyclip.Rectangle {
	if pg.N() == 0 {
		return polyclip.Rectangle{}
	}
	return pg.contour.BoundingBox()
}

// Contains checks if p lies inside a closed polygon. Open polygons contain
// nothing.
func (pg *Polygon) Contains(p polyclip.Point) bool {
	if !pg.IsCycle() || pg.N() < 3 {
		return false
	}
	return pg.contour.Contains(p)
}

// SignedArea calculates the area enclosed by a closed polygon (shoelace
// formula). The area is positive for counter-clockwise knots and negative
// for clockwise ones. Open and degenerate polygons have area 0.
func (pg *Polygon) SignedArea() float64 {
	if !pg.IsCycle() || pg.N() < 3 {
		return 0
	}
	var a float64
	n := pg.N()
	for i := 0; i < n; i++ {
		p, q := pg.contour[i], pg.contour[(i+1)%n]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// Intersects checks if two closed polygons overlap in a region of non-zero
// extent.
func Intersects(a, b *Polygon) bool {
	if !a.IsCycle() || !b.IsCycle() || a.N() < 3 || b.N() < 3 {
		return false
	}
	subject := polyclip.Polygon{a.contour.Clone()}
	clipping := polyclip.Polygon{b.contour.Clone()}
	for _, c := range subject.Construct(polyclip.INTERSECTION, clipping) {
		if len(c) >= 3 {
			return true
		}
	}
	return false
}

// AsString returns a polygon as a (debugging) string:
//
//	(0,0) -- (1,3) -- (3,0) -- cycle
func AsString(pg *Polygon) string {
	if pg == nil {
		return "<nil>"
	}
	var s string
	for i, p := range pg.contour {
		if i > 0 {
			s += " -- "
		}
		s += fmt.Sprintf("(%g,%g)", round(p.X), round(p.Y))
	}
	if pg.cycle {
		if pg.N() > 0 {
			s += " -- "
		}
		s += "cycle"
	}
	return s
}

func round(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
