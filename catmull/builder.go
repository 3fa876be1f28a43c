package catmull

import (
	"iter"
	"slices"

	"github.com/npillmayer/crspline"
)

// Nullpath creates an empty path, to be extended by subsequent builder
// calls. The following example builds a closed loop of four knots:
//
//	path := Nullpath().Knot(V(0,0,0)).Knot(V(1,0,0)).Knot(V(1,0,1)).Knot(V(0,0,1)).Cycle()
//
// Calling Cycle() or End() returns the path.
func Nullpath() *Path {
	return &Path{}
}

// PathOf creates a path from a list of control points.
func PathOf(points []crspline.Vec3, closedLoop bool) *Path {
	return &Path{
		points: slices.Clone(points),
		cycle:  closedLoop,
	}
}

// End an open path. Part of builder functionality.
func (path *Path) End() *Path {
	path.cycle = false
	return path
}

// Cycle closes a path: the last knot connects back to the first one.
// Part of builder functionality.
func (path *Path) Cycle() *Path {
	path.cycle = true
	return path
}

// Knot adds a control point to a path. Part of builder functionality.
func (path *Path) Knot(p crspline.Vec3) *Path {
	path.points = append(path.points, p)
	return path
}

// Transformed returns a new path with every knot transformed by m.
func (path *Path) Transformed(m crspline.AT) *Path {
	t := &Path{
		points: make([]crspline.Vec3, len(path.points)),
		cycle:  path.cycle,
	}
	for i, p := range path.points {
		t.points[i] = m.Transform(p)
	}
	return t
}

// IsCycle is a predicate: is this path a closed loop?
func (path *Path) IsCycle() bool {
	return path.cycle
}

// N returns the length of this path (knot count).
func (path *Path) N() int {
	return len(path.points)
}

// Z returns the knot at position (i mod N).
func (path *Path) Z(i int) crspline.Vec3 {
	return path.points[wrap(i, path.N())]
}

// Points returns a copy of the knots of a path.
func (path *Path) Points() []crspline.Vec3 {
	return slices.Clone(path.points)
}

// Samples returns the lazy sequence of spline samples for this path.
// See Evaluate.
func (path *Path) Samples(resolution int) (iter.Seq[SamplePoint], error) {
	if path == nil {
		return nil, ErrNilPath
	}
	return Evaluate(path.points, path.cycle, resolution)
}

// Length returns the number of samples Samples(resolution) will produce.
func (path *Path) Length(resolution int) int {
	if path == nil {
		return 0
	}
	return ComputeLength(path.N(), path.cycle, resolution)
}

// wrap maps i onto 0 … n-1, for negative i as well.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
