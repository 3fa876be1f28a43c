package catmull

import (
	"fmt"
	"iter"
	"slices"

	"github.com/npillmayer/crspline"
)

// Evaluate returns the samples of a Catmull-Rom spline through
// controlPoints as a lazy sequence. Each of the segments between
// consecutive control points (plus the closing segment for closedLoop) is
// sampled resolution times; see ComputeLength for the total count.
//
// The sequence is finite and restartable: every iteration starts over at
// the first sample and no state is shared between iterations or between
// calls. controlPoints is copied, later changes to the slice do not affect
// the sequence.
//
// A resolution of zero or less is rejected with ErrInvalidResolution before
// any sample is produced. Open paths with fewer than 2 control points and
// empty closed paths result in an empty sequence.
func Evaluate(controlPoints []crspline.Vec3, closedLoop bool, resolution int) (iter.Seq[SamplePoint], error) {
	if resolution <= 0 {
		tracer().Errorf("cannot evaluate spline with resolution %d", resolution)
		return nil, fmt.Errorf("%w: got %d", ErrInvalidResolution, resolution)
	}
	points := slices.Clone(controlPoints)
	return func(yield func(SamplePoint) bool) {
		for seg := range Segments(points, closedLoop) {
			for i := 0; i < resolution; i++ {
				if !yield(seg.At(seg.param(i, resolution))) {
					return
				}
			}
		}
	}, nil
}

// MustEvaluate is a compatibility helper which panics on invalid resolution.
func MustEvaluate(controlPoints []crspline.Vec3, closedLoop bool, resolution int) iter.Seq[SamplePoint] {
	seq, err := Evaluate(controlPoints, closedLoop, resolution)
	if err != nil {
		panic(err)
	}
	return seq
}

// ComputeLength calculates the number of samples Evaluate will produce for
// the given inputs, without generating any of them:
//
//	closed loop:  resolution * count
//	open path:    resolution * (count - 1)
//
// Open paths with fewer than 2 control points have no segment and therefore
// a length of 0. A resolution of zero or less results in 0 as well.
func ComputeLength(count int, closedLoop bool, resolution int) int {
	if resolution <= 0 || count < 0 {
		return 0
	}
	return resolution * segmentCount(count, closedLoop)
}

// Generate evaluates a spline and collects all samples into a new slice.
func Generate(controlPoints []crspline.Vec3, closedLoop bool, resolution int) ([]SamplePoint, error) {
	samples := make([]SamplePoint, 0, ComputeLength(len(controlPoints), closedLoop, resolution))
	return GenerateInto(samples, controlPoints, closedLoop, resolution)
}

// GenerateInto evaluates a spline and collects all samples into dst, re-using
// its storage. dst is truncated first. If the resolution is invalid, dst is
// returned unchanged together with the error.
func GenerateInto(dst []SamplePoint, controlPoints []crspline.Vec3, closedLoop bool, resolution int) ([]SamplePoint, error) {
	seq, err := Evaluate(controlPoints, closedLoop, resolution)
	if err != nil {
		return dst, err
	}
	dst = slices.Grow(dst[:0], ComputeLength(len(controlPoints), closedLoop, resolution))
	for sp := range seq {
		dst = append(dst, sp)
	}
	tracer().Debugf("generated %d spline samples from %d control points", len(dst), len(controlPoints))
	return dst, nil
}
