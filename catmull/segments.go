package catmull

import (
	"iter"

	"github.com/npillmayer/crspline"
)

// segmentCount returns the number of Hermite segments for n control points.
// An open path needs at least 2 knots to have a segment.
func segmentCount(n int, closedLoop bool) int {
	if closedLoop {
		return n
	}
	if n < 2 {
		return 0
	}
	return n - 1
}

// Segments iterates over the Hermite segments of a Catmull-Rom spline through
// points. Each knot connects to the next one, so 0-1, 1-2, 2-3 and so on; for
// a closed loop the last knot connects back to knot 0.
//
// Tangents follow the Catmull-Rom rule
//
//	M[k] = (P[k+1] - P[k-1]) / 2
//
// with indices taken modulo N for closed loops. Open paths have no P[-1] at
// their first knot and no P[k+2] at their last segment; there a one-sided
// difference (P1 - P0) / 2 of the segment is used instead.
//
// points is read while iterating and must not be changed by the caller
// in the meantime.
func Segments(points []crspline.Vec3, closedLoop bool) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		n := len(points)
		count := segmentCount(n, closedLoop)
		for k := 0; k < count; k++ {
			if !yield(makeSegment(points, closedLoop, k)) {
				return
			}
		}
	}
}

func makeSegment(points []crspline.Vec3, closedLoop bool, k int) Segment {
	n := len(points)
	seg := Segment{Index: k}
	seg.Final = k == segmentCount(n, closedLoop)-1
	seg.P0 = points[k]
	seg.P1 = points[wrap(k+1, n)]
	// m0
	if k == 0 && !closedLoop {
		seg.M0 = seg.P1.Sub(seg.P0)
	} else {
		seg.M0 = seg.P1.Sub(points[wrap(k-1, n)])
	}
	// m1
	if closedLoop || k < n-2 {
		seg.M1 = points[wrap(k+2, n)].Sub(seg.P0)
	} else {
		seg.M1 = seg.P1.Sub(seg.P0)
	}
	seg.M0 = seg.M0.Scaled(0.5)
	seg.M1 = seg.M1.Scaled(0.5)
	tracer().Debugf("segment %d: %s .. %s, m0=%s, m1=%s", k, seg.P0, seg.P1, seg.M0, seg.M1)
	return seg
}

// At evaluates the segment at t ∈ [0,1].
func (seg Segment) At(t float64) SamplePoint {
	return HermiteAt(seg.P0, seg.P1, seg.M0, seg.M1, t)
}

// param returns the curve parameter of sample i within a segment. Every
// segment is sampled at t = i / resolution, except the final one, which
// is sampled at t = i / (resolution-1) so that its last sample lands exactly
// on t = 1, the terminal point of the curve.
func (seg Segment) param(i, resolution int) float64 {
	denom := resolution
	if seg.Final {
		denom = resolution - 1
	}
	if denom == 0 { // single sample on the final segment
		return 1
	}
	return float64(i) / float64(denom)
}
