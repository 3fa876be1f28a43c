package catmull

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/npillmayer/crspline"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func line4() []crspline.Vec3 {
	return []crspline.Vec3{
		crspline.V(0, 0, 0), crspline.V(1, 0, 0), crspline.V(2, 0, 0), crspline.V(3, 0, 0),
	}
}

// a non-planar, irregular set of knots
func wobbly(n int) []crspline.Vec3 {
	pts := make([]crspline.Vec3, n)
	for i := range pts {
		x := float64(i)
		pts[i] = crspline.V(x*1.5, float64(i%3)*0.7, float64((i*7)%5)-2)
	}
	return pts
}

func collect(t *testing.T, points []crspline.Vec3, closed bool, resolution int) []SamplePoint {
	t.Helper()
	seq, err := Evaluate(points, closed, resolution)
	require.NoError(t, err)
	return slices.Collect(seq)
}

func TestOpenLineScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	samples := collect(t, line4(), false, 4)
	require.Len(t, samples, 12)
	diff(t, crspline.V(0, 0, 0), samples[0].Position, approx)
	diff(t, crspline.V(3, 0, 0), samples[11].Position, approx)
	// the middle segment has equal tangents on both ends and is linear
	for i, x := range []float64{1, 1.25, 1.5, 1.75} {
		diff(t, crspline.V(x, 0, 0), samples[4+i].Position, approx)
	}
	for _, sp := range samples {
		diff(t, crspline.V(1, 0, 0), sp.Tangent, approx)
		diff(t, crspline.V(0, 0, 0.5), sp.Normal, approx)
	}
}

func TestClosedLineScenario(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	samples := collect(t, line4(), true, 4)
	require.Len(t, samples, 16)
	diff(t, crspline.V(0, 0, 0), samples[0].Position, approx)
	diff(t, crspline.V(0, 0, 0), samples[15].Position, approx)
	diff(t, crspline.V(3, 0, 0), samples[12].Position, approx)
}

func TestLengthMatchesSampleCount(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for n := 0; n <= 7; n++ {
		for _, closed := range []bool{false, true} {
			for res := 1; res <= 5; res++ {
				samples := collect(t, wobbly(n), closed, res)
				assert.Equal(t, ComputeLength(n, closed, res), len(samples),
					"n=%d closed=%v resolution=%d", n, closed, res)
			}
		}
	}
}

func TestComputeLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Equal(t, 12, ComputeLength(4, false, 4))
	assert.Equal(t, 16, ComputeLength(4, true, 4))
	assert.Equal(t, 0, ComputeLength(1, false, 4))
	assert.Equal(t, 0, ComputeLength(0, false, 4))
	assert.Equal(t, 0, ComputeLength(0, true, 4))
	assert.Equal(t, 300, ComputeLength(3, true, 100))
	assert.Equal(t, 0, ComputeLength(3, true, 0))
}

func TestOpenEndpointsInterpolated(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for n := 2; n <= 6; n++ {
		pts := wobbly(n)
		for res := 2; res <= 6; res++ {
			samples := collect(t, pts, false, res)
			require.NotEmpty(t, samples)
			diff(t, pts[0], samples[0].Position, approx)
			diff(t, pts[n-1], samples[len(samples)-1].Position, approx)
		}
	}
}

func TestClosedLoopCloses(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for n := 3; n <= 6; n++ {
		pts := wobbly(n)
		for res := 2; res <= 6; res++ {
			samples := collect(t, pts, true, res)
			diff(t, pts[0], samples[0].Position, approx)
			diff(t, pts[0], samples[len(samples)-1].Position, approx)
		}
	}
}

func TestSamplesHitControlPoints(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := wobbly(5)
	res := 7
	samples := collect(t, pts, false, res)
	for k := 0; k < len(pts)-1; k++ {
		diff(t, pts[k], samples[k*res].Position, approx)
	}
}

func TestTangentContinuity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, closed := range []bool{false, true} {
		segs := slices.Collect(Segments(wobbly(6), closed))
		for k := 0; k+1 < len(segs); k++ {
			end := segs[k].At(1)
			start := segs[k+1].At(0)
			diff(t, end.Position, start.Position, approx)
			diff(t, end.Tangent, start.Tangent, approx)
		}
		if closed {
			last, first := segs[len(segs)-1].At(1), segs[0].At(0)
			diff(t, last.Position, first.Position, approx)
			diff(t, last.Tangent, first.Tangent, approx)
		}
	}
}

func TestSegmentBoundaryTangents(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := wobbly(4)
	open := slices.Collect(Segments(pts, false))
	require.Len(t, open, 3)
	diff(t, pts[1].Sub(pts[0]).Scaled(0.5), open[0].M0, approx)
	diff(t, pts[2].Sub(pts[0]).Scaled(0.5), open[0].M1, approx)
	diff(t, pts[3].Sub(pts[2]).Scaled(0.5), open[2].M1, approx)
	assert.True(t, open[2].Final)
	assert.False(t, open[1].Final)
	closed := slices.Collect(Segments(pts, true))
	require.Len(t, closed, 4)
	diff(t, pts[1].Sub(pts[3]).Scaled(0.5), closed[0].M0, approx)
	diff(t, pts[1].Sub(pts[3]).Scaled(0.5), closed[3].M1, approx)
	diff(t, pts[0], closed[3].P1, approx)
	assert.True(t, closed[3].Final)
}

func TestTangentsAreUnitLength(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, sp := range collect(t, wobbly(6), true, 9) {
		assert.InDelta(t, 1.0, sp.Tangent.Norm(), 1e-9)
		assert.InDelta(t, 0.0, sp.Tangent.Dot(sp.Normal), 1e-9)
		if !sp.Normal.IsOrigin() {
			assert.InDelta(t, 0.5, sp.Normal.Norm(), 1e-9)
		}
	}
}

func TestInvalidResolution(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	for _, res := range []int{0, -1} {
		seq, err := Evaluate(line4(), false, res)
		assert.True(t, errors.Is(err, ErrInvalidResolution), "resolution %d: %v", res, err)
		assert.Nil(t, seq)
		samples, err := Generate(line4(), true, res)
		assert.ErrorIs(t, err, ErrInvalidResolution)
		assert.Empty(t, samples)
	}
	assert.Panics(t, func() { MustEvaluate(line4(), false, 0) })
}

func TestDegenerateGeometry(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	assert.Empty(t, collect(t, nil, false, 5))
	assert.Empty(t, collect(t, wobbly(1), false, 5))
	assert.Empty(t, collect(t, nil, true, 5))
	single := collect(t, wobbly(1), true, 5)
	require.Len(t, single, 5)
	for _, sp := range single {
		diff(t, wobbly(1)[0], sp.Position, approx)
		assert.False(t, sp.Tangent.IsNaN())
		assert.False(t, sp.Normal.IsNaN())
	}
	pair := collect(t, wobbly(2), true, 5)
	require.Len(t, pair, 10)
	diff(t, wobbly(2)[0], pair[9].Position, approx)
}

func TestVerticalTangentHasZeroNormal(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := []crspline.Vec3{crspline.V(0, 0, 0), crspline.V(0, 1, 0)}
	for _, sp := range collect(t, pts, false, 3) {
		diff(t, crspline.V(0, 1, 0), sp.Tangent, approx)
		assert.Equal(t, crspline.Origin, sp.Normal)
	}
}

func TestSingleSampleResolution(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := wobbly(3)
	samples := collect(t, pts, false, 1)
	require.Len(t, samples, 2)
	diff(t, pts[0], samples[0].Position, approx)
	diff(t, pts[2], samples[1].Position, approx) // final segment lands on t=1
	for _, sp := range samples {
		assert.False(t, sp.Position.IsNaN())
	}
}

func TestSequenceIsRestartable(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	pts := wobbly(5)
	seq, err := Evaluate(pts, true, 6)
	require.NoError(t, err)
	first := slices.Collect(seq)
	pts[2] = crspline.V(100, 100, 100) // must not leak into the sequence
	second := slices.Collect(seq)
	diff(t, first, second)
	again := collect(t, wobbly(5), true, 6)
	diff(t, first, again)
}

func TestSequenceStopsEarly(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := MustEvaluate(wobbly(5), false, 10)
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestGenerateIntoReusesStorage(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	dst := make([]SamplePoint, 1, 64)
	out, err := GenerateInto(dst, line4(), false, 4)
	require.NoError(t, err)
	require.Len(t, out, 12)
	assert.Same(t, &dst[0], &out[0])
	want, err := Generate(line4(), false, 4)
	require.NoError(t, err)
	diff(t, want, out)

	kept, err := GenerateInto(out, line4(), false, 0)
	assert.ErrorIs(t, err, ErrInvalidResolution)
	assert.Len(t, kept, 12)
}

func TestPathSamples(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	path := PathOf(line4(), true)
	seq, err := path.Samples(4)
	require.NoError(t, err)
	samples := slices.Collect(seq)
	assert.Equal(t, path.Length(4), len(samples))
	diff(t, collect(t, line4(), true, 4), samples)
}

func ExampleEvaluate() {
	points := []crspline.Vec3{
		crspline.V(0, 0, 0), crspline.V(1, 0, 0), crspline.V(2, 0, 0), crspline.V(3, 0, 0),
	}
	seq, _ := Evaluate(points, false, 4)
	samples := slices.Collect(seq)
	fmt.Println(len(samples), ComputeLength(len(points), false, 4))
	fmt.Println(samples[0].Position, samples[11].Position)
	fmt.Println(samples[5].Position)
	// Output:
	// 12 12
	// (0,0,0) (3,0,0)
	// (1.25,0,0)
}
