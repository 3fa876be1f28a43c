package budget

import (
	"errors"
	"iter"
	"slices"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock only moves when told to.
type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time          { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// costly produces 0..n-1, advancing clock by cost for every item produced.
func costly(clock *manualClock, n int, cost time.Duration) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if clock != nil {
				clock.Advance(cost)
			}
			if !yield(i) {
				return
			}
		}
	}
}

func appendInt(acc []int, i int) ([]int, error) {
	return append(acc, i), nil
}

func ignore([]int) error { return nil }

// stepAll steps task until it completes, failing the test after limit steps.
func stepAll[A, T any](t *testing.T, task *Task[A, T], limit int) int {
	t.Helper()
	for steps := 1; steps <= limit; steps++ {
		status, err := task.Step()
		require.NoError(t, err)
		if status == Completed {
			return steps
		}
		require.Equal(t, Suspended, status)
	}
	t.Fatalf("task did not complete within %d steps", limit)
	return -1
}

func TestRunValidatesArguments(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	seq := costly(nil, 3, 0)
	_, err := Run(nil, seq, nil, nil, ignore, time.Millisecond)
	assert.ErrorIs(t, err, ErrMissingCallback)
	_, err = Run(nil, seq, appendInt, nil, nil, time.Millisecond)
	assert.ErrorIs(t, err, ErrMissingCallback)
	_, err = Run[[]int, int](nil, nil, appendInt, nil, ignore, time.Millisecond)
	assert.ErrorIs(t, err, ErrNilSequence)
}

func TestBudgetWindows(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := &manualClock{}
	var partials []int
	var final []int
	completions := 0
	task, err := Run(nil, costly(clock, 10, time.Millisecond), appendInt,
		func(acc []int) error {
			partials = append(partials, len(acc))
			return nil
		},
		func(acc []int) error {
			completions++
			final = acc
			return nil
		},
		3*time.Millisecond, WithClock(clock), WithName("windows"))
	require.NoError(t, err)
	assert.Equal(t, Running, task.Status())
	assert.Empty(t, partials, "no work before the first step")

	steps := stepAll(t, task, 10)
	assert.Equal(t, 4, steps)
	assert.Equal(t, []int{2, 5, 8}, partials)
	assert.Equal(t, 1, completions)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, final)
	assert.Equal(t, Stats{Items: 10, Suspensions: 3, Steps: 4}, task.Stats())

	// the increments between successive notifications add up to the total
	last, total := 0, 0
	for _, n := range partials {
		total += n - last
		last = n
	}
	total += len(final) - last
	assert.Equal(t, 10, total)

	status, err := task.Step()
	assert.NoError(t, err)
	assert.Equal(t, Completed, status)
	assert.Equal(t, 1, completions, "completion must be reported exactly once")
}

func TestHostDelayDoesNotCount(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := &manualClock{}
	task, err := Run(nil, costly(clock, 10, time.Millisecond), appendInt, nil, ignore,
		3*time.Millisecond, WithClock(clock))
	require.NoError(t, err)
	status, err := task.Step()
	require.NoError(t, err)
	require.Equal(t, Suspended, status)
	assert.Len(t, task.Accumulator(), 2)

	clock.Advance(time.Hour) // host is busy elsewhere
	status, err = task.Step()
	require.NoError(t, err)
	assert.Equal(t, Suspended, status)
	assert.Len(t, task.Accumulator(), 5, "a fresh window after resumption")
}

func TestHugeBudgetCompletesInOneStep(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := &manualClock{}
	partial := func([]int) error {
		t.Errorf("partial callback must not be invoked")
		return nil
	}
	var final []int
	task, err := Run(nil, costly(clock, 100, time.Millisecond), appendInt, partial,
		func(acc []int) error { final = acc; return nil },
		time.Hour, WithClock(clock))
	require.NoError(t, err)
	status, err := task.Step()
	require.NoError(t, err)
	assert.Equal(t, Completed, status)
	assert.Len(t, final, 100)
	assert.Zero(t, task.Stats().Suspensions)
}

func TestZeroBudgetYieldsBeforeEveryItem(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := &manualClock{}
	var partials []int
	task, err := Run(nil, costly(clock, 3, 0), appendInt,
		func(acc []int) error { partials = append(partials, len(acc)); return nil },
		ignore, 0, WithClock(clock))
	require.NoError(t, err)
	assert.Equal(t, 4, stepAll(t, task, 10))
	assert.Equal(t, []int{0, 1, 2}, partials)
	assert.Equal(t, []int{0, 1, 2}, task.Accumulator())
}

func TestNilPartialCallback(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := &manualClock{}
	task, err := Run(nil, costly(clock, 20, time.Millisecond), appendInt, nil, ignore,
		2*time.Millisecond, WithClock(clock))
	require.NoError(t, err)
	stepAll(t, task, 50)
	assert.Len(t, task.Accumulator(), 20)
	assert.Greater(t, task.Stats().Suspensions, 1)
}

func TestEmptySequence(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	completed := false
	task, err := Run(42, costly(nil, 0, 0), func(acc int, i int) (int, error) {
		return acc + i, nil
	}, nil, func(acc int) error {
		completed = true
		assert.Equal(t, 42, acc)
		return nil
	}, time.Millisecond)
	require.NoError(t, err)
	status, err := task.Step()
	require.NoError(t, err)
	assert.Equal(t, Completed, status)
	assert.True(t, completed)
}

func TestResultIndependentOfBudget(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	want := slices.Collect(costly(nil, 500, 0))
	for _, budget := range []time.Duration{0, time.Nanosecond, time.Microsecond, time.Hour} {
		var got []int
		task, err := Run(nil, costly(nil, 500, 0), appendInt, nil,
			func(acc []int) error { got = acc; return nil }, budget)
		require.NoError(t, err)
		stepAll(t, task, 1000)
		assert.Equal(t, want, got, "budget %s", budget)
	}
}

func TestCombineErrorTerminates(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	boom := errors.New("boom")
	clock := &manualClock{}
	completed := false
	task, err := Run(nil, costly(clock, 10, time.Millisecond), func(acc []int, i int) ([]int, error) {
		if i == 4 {
			return acc, boom
		}
		return append(acc, i), nil
	}, nil, func([]int) error { completed = true; return nil },
		3*time.Millisecond, WithClock(clock))
	require.NoError(t, err)
	status, err := task.Step()
	require.NoError(t, err)
	require.Equal(t, Suspended, status)
	_, err = task.Step()
	assert.Equal(t, boom, err, "callback errors are passed through unchanged")
	_, err = task.Step()
	assert.ErrorIs(t, err, ErrTaskFailed)
	assert.ErrorIs(t, err, boom)
	assert.False(t, completed)
	assert.NotEqual(t, Completed, task.Status())
	assert.Equal(t, []int{0, 1, 2, 3}, task.Accumulator())
}

func TestCallbackErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	boom := errors.New("boom")
	clock := &manualClock{}
	task, err := Run(nil, costly(clock, 10, time.Millisecond), appendInt,
		func([]int) error { return boom }, ignore, time.Millisecond, WithClock(clock))
	require.NoError(t, err)
	_, err = task.Step()
	assert.Equal(t, boom, err)
	assert.ErrorIs(t, task.Err(), ErrTaskFailed)

	task, err = Run(nil, costly(clock, 10, time.Millisecond), appendInt, nil,
		func([]int) error { return boom }, time.Hour, WithClock(clock))
	require.NoError(t, err)
	status, err := task.Step()
	assert.Equal(t, boom, err)
	assert.NotEqual(t, Completed, status)
}

func TestAbandonReleasesSequence(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	clock := &manualClock{}
	released := false
	seq := func(yield func(int) bool) {
		defer func() { released = true }()
		for i := 0; ; i++ {
			clock.Advance(time.Millisecond)
			if !yield(i) {
				return
			}
		}
	}
	completed := false
	task, err := Run(nil, seq, appendInt, nil, func([]int) error { completed = true; return nil },
		5*time.Millisecond, WithClock(clock))
	require.NoError(t, err)
	status, err := task.Step()
	require.NoError(t, err)
	require.Equal(t, Suspended, status)
	task.Abandon()
	assert.True(t, released)
	_, err = task.Step()
	assert.ErrorIs(t, err, ErrAbandoned)
	task.Abandon() // no-op
	assert.False(t, completed)
	assert.Len(t, task.Accumulator(), 4)
}

func TestAbandonBeforeFirstStep(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	task, err := Run(nil, costly(nil, 3, 0), appendInt, nil, ignore, time.Hour)
	require.NoError(t, err)
	task.Abandon()
	_, err = task.Step()
	assert.ErrorIs(t, err, ErrAbandoned)
	assert.Empty(t, task.Accumulator())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "suspended", Suspended.String())
	assert.Equal(t, "completed", Completed.String())
	assert.Equal(t, "Status(7)", Status(7).String())
}
