package catmull

import (
	"errors"

	"github.com/npillmayer/crspline"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'crspline.catmull'
func tracer() tracing.Trace {
	return tracing.Select("crspline.catmull")
}

var (
	// ErrInvalidResolution indicates a resolution of zero or less.
	ErrInvalidResolution = errors.New("resolution must be > 0")
	// ErrNilPath indicates a nil path pointer.
	ErrNilPath = errors.New("path must not be nil")
)

// SamplePoint is a single sample of a spline: the position on the curve,
// the unit direction of travel and the normal.
//
// The normal is cross(tangent, up), normalized and then halved, i.e. it has
// length 0.5. If the tangent is parallel to the up-axis, the cross product
// vanishes and the normal is the zero vector. There is no fallback axis.
type SamplePoint struct {
	Position crspline.Vec3
	Tangent  crspline.Vec3
	Normal   crspline.Vec3
}

// Path is an ordered sequence of control points (knots) for a Catmull-Rom
// spline. To construct a path, start with Nullpath(), which creates an empty
// path, and then extend it.
type Path struct {
	points []crspline.Vec3 // knot i
	cycle  bool            // is this path a closed loop ?
}

// Segment is a single Hermite segment between two consecutive control
// points, with its (already halved) Catmull-Rom tangents.
type Segment struct {
	Index  int           // index of the control point the segment starts at
	P0, P1 crspline.Vec3 // end points
	M0, M1 crspline.Vec3 // tangents at P0 and P1
	Final  bool          // is this the last segment of the curve ?
}
