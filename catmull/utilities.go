package catmull

import (
	"fmt"

	"github.com/npillmayer/crspline"
	"github.com/npillmayer/crspline/polyn"
)

// Dense coefficient tables of the Hermite basis and its derivative, built
// once from their polynomial representation.
var (
	positionBasis = polyn.HermiteBasis().Table()
	tangentBasis  = polyn.HermiteBasis().Derivative().Table()
)

// HermiteAt evaluates a Hermite segment between p0 and p1 with tangents m0
// and m1 at t ∈ [0,1]:
//
//	position = (2t³-3t²+1)·p0 + (t³-2t²+t)·m0 + (-2t³+3t²)·p1 + (t³-t²)·m1
//	tangent  = normalize((6t²-6t)·p0 + (3t²-4t+1)·m0 + (-6t²+6t)·p1 + (3t²-2t)·m1)
//	normal   = normalize(tangent × up) / 2
func HermiteAt(p0, p1, m0, m1 crspline.Vec3, t float64) SamplePoint {
	position := combine(positionBasis.Weights(t), p0, m0, p1, m1)
	tangent := combine(tangentBasis.Weights(t), p0, m0, p1, m1).Normalized()
	return SamplePoint{
		Position: position,
		Tangent:  tangent,
		Normal:   normalFromTangent(tangent),
	}
}

func combine(w [4]float64, p0, m0, p1, m1 crspline.Vec3) crspline.Vec3 {
	return p0.Scaled(w[polyn.H00]).
		Add(m0.Scaled(w[polyn.H10])).
		Add(p1.Scaled(w[polyn.H01])).
		Add(m1.Scaled(w[polyn.H11]))
}

// A tangent parallel to the up-axis results in a zero normal.
func normalFromTangent(tangent crspline.Vec3) crspline.Vec3 {
	return tangent.Cross(crspline.Up).Normalized().Scaled(0.5)
}

func ptstring(p crspline.Vec3) string {
	return fmt.Sprintf("(%.4g,%.4g,%.4g)", round(p.X), round(p.Y), round(p.Z))
}

func round(x float64) float64 {
	if x >= 0 {
		return float64(int64(x*10000.0+0.5)) / 10000.0
	}
	return float64(int64(x*10000.0-0.5)) / 10000.0
}
