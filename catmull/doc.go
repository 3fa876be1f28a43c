// Package catmull samples Catmull-Rom splines through 3D control points.
/*

A Catmull-Rom spline is a chain of cubic Hermite segments, one between each
pair of consecutive control points. The tangents at the segment ends are
derived from the neighbouring control points,

   M[k] = (P[k+1] - P[k-1]) / 2

so the curve passes through every control point and has a continuous
direction of travel at the joins. The Hermite segment between p0 and p1
with tangents m0 and m1 is

   P(t) = (2t³-3t²+1)·p0 + (t³-2t²+t)·m0 + (-2t³+3t²)·p1 + (t³-t²)·m1,  t ∈ [0,1]

Background information may be found in:

   Catmull, E., Rom, R.: A class of local interpolating splines.
   Computer Aided Geometric Design, Academic Press, 1974

Usage

Clients either pass a list of control points directly,

   seq, err := Evaluate(points, true, 100)
   for sample := range seq {
       ...
   }

or build a path first (package qualifiers omitted for clarity and brevity):

   path := Nullpath().Knot(V(0,0,0)).Knot(V(1,0,0)).Knot(V(1,0,1)).Cycle()
   samples, err := path.Samples(100)

The samples are produced lazily, so the sequence may be handed to a
frame-budgeted runner (see package budget) to spread a large evaluation
across several frames. Generate and GenerateInto drain the sequence
synchronously.

Caveats

(1) The normal of a sample is computed against a fixed world-up axis. If the
tangent is parallel to up, the normal is the zero vector.

(2) Samples are evenly spaced in the curve parameter, not in arc length.


BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package catmull

import "fmt"

// AsString returns a path as a (debugging) string, listing the knot
// coordinates in one line. Closed loops end in "cycle":
//
//	(0,0,0) .. (1,0,0) .. (1,0,1) .. cycle
func AsString(path *Path) string {
	if path == nil {
		return "<nil>"
	}
	var s string
	for i := 0; i < path.N(); i++ {
		if i > 0 {
			s += " .. "
		}
		s += ptstring(path.Z(i))
	}
	if path.IsCycle() {
		if path.N() > 0 {
			s += " .. "
		}
		s += "cycle"
	}
	return s
}

// SamplesString returns a list of samples as a (debugging) string, one
// sample per line.
func SamplesString(samples []SamplePoint) string {
	var s string
	for i, sp := range samples {
		s += fmt.Sprintf("%4d: pos=%s tan=%s nrm=%s\n", i,
			ptstring(sp.Position), ptstring(sp.Tangent), ptstring(sp.Normal))
	}
	return s
}
