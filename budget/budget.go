/*
Package budget runs lazy sequences of work under a time budget, spreading
the work across several ticks of a host scheduler (e.g., rendering frames).

A Task pulls one item at a time from a sequence and folds it into an
accumulator. Whenever the time spent since the task was started or last
resumed reaches the budget, the task notifies an optional partial-progress
callback, suspends and returns control to the host. The host resumes the
task by calling Step again, usually once per tick. Time the host spends
between suspension and resumption does not count against the budget.

	task, _ := budget.Run(nil, seq, appendSample, showPartial, showFinal, 16*time.Millisecond)
	for {                                    // host loop, once per frame
	    status, err := task.Step()
	    ...
	}

Tasks are cooperative and single-threaded. A task must not be stepped from
more than one goroutine at a time, and it is up to the host to make sure
that at most one task works on a given accumulator. Abandoning a task at a
suspension point is always safe; Abandon releases the sequence.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package budget

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'crspline.budget'
func tracer() tracing.Trace {
	return tracing.Select("crspline.budget")
}

var (
	// ErrMissingCallback indicates a nil combine or completion function.
	ErrMissingCallback = errors.New("combine and completion callbacks are required")
	// ErrNilSequence indicates a nil sequence.
	ErrNilSequence = errors.New("sequence must not be nil")
	// ErrTaskFailed is returned by Step after a callback error has terminated a task.
	ErrTaskFailed = errors.New("task terminated by callback error")
	// ErrAbandoned is returned by Step after a task has been abandoned.
	ErrAbandoned = errors.New("task has been abandoned")
)

// Status is the state of a task.
type Status int

// Task states. A task starts Running, may switch between Running and
// Suspended any number of times, and ends Completed once its sequence is
// exhausted.
const (
	Running Status = iota
	Suspended
	Completed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Combine folds a single item into the accumulator and returns the
// updated accumulator.
type Combine[A, T any] func(acc A, item T) (A, error)

// Partial receives the accumulator each time a task suspends.
type Partial[A any] func(acc A) error

// Complete receives the final accumulator, once.
type Complete[A any] func(acc A) error

// Stats are counters of a task's progress.
type Stats struct {
	Items       int // items folded into the accumulator
	Suspensions int // number of times the task yielded to the host
	Steps       int // number of calls to Step which did work
}

// Task is a cooperative, frame-budgeted fold over a lazy sequence.
// Create tasks with Run.
type Task[A, T any] struct {
	acc        A
	seq        iter.Seq[T]
	combine    Combine[A, T]
	onPartial  Partial[A] // optional
	onComplete Complete[A]
	budget     time.Duration
	clock      Clock
	name       string

	next    func() (T, bool)
	stop    func()
	started bool
	mark    time.Time // start of the current budget window
	pending T         // item pulled before suspension, not yet folded
	status  Status
	err     error
	stats   Stats
}

// Run prepares a task folding seq into initial. No work is done until the
// first call to Step.
//
// combine is called once per item. onPartial is optional and is called with
// the accumulator every time the task suspends; onComplete is called exactly
// once with the final accumulator. budget is the time a single Step may
// spend before suspending. A budget of zero or less makes the task suspend
// before every item, so every resumption folds exactly one item.
func Run[A, T any](initial A, seq iter.Seq[T], combine Combine[A, T], onPartial Partial[A],
	onComplete Complete[A], budget time.Duration, opts ...Option) (*Task[A, T], error) {
	//
	if seq == nil {
		return nil, ErrNilSequence
	}
	if combine == nil || onComplete == nil {
		return nil, ErrMissingCallback
	}
	cfg := config{clock: WallClock(), name: "task"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Task[A, T]{
		acc:        initial,
		seq:        seq,
		combine:    combine,
		onPartial:  onPartial,
		onComplete: onComplete,
		budget:     budget,
		clock:      cfg.clock,
		name:       cfg.name,
		status:     Running,
	}, nil
}

// Step advances a task until it either suspends or completes, and returns
// the new status.
//
// On the first call the budget window starts. Items are pulled from the
// sequence one by one; after pulling an item and before folding it, the time
// spent in the current window is checked. If it has reached the budget, the
// partial callback sees the accumulator and Step returns Suspended. The
// next call to Step starts a new window, folds the pending item and
// continues. When the sequence is exhausted, the completion callback is
// invoked and Step returns Completed; further calls are no-ops.
//
// A callback error ends the task immediately. The error is returned
// unchanged, subsequent calls return ErrTaskFailed.
func (task *Task[A, T]) Step() (Status, error) {
	if task.err != nil {
		return task.status, task.err
	}
	switch task.status {
	case Completed:
		return Completed, nil
	case Suspended:
		task.mark = task.clock.Now()
		task.status = Running
		task.stats.Steps++
		tracer().Debugf("%s: resumed after %d items", task.name, task.stats.Items)
		if err := task.fold(task.pending); err != nil {
			return task.fail(err)
		}
	default:
		if !task.started {
			task.started = true
			task.mark = task.clock.Now()
			task.next, task.stop = iter.Pull(task.seq)
		}
		task.stats.Steps++
	}
	for {
		item, ok := task.next()
		if !ok {
			return task.complete()
		}
		if elapsed := task.clock.Now().Sub(task.mark); elapsed >= task.budget {
			if task.onPartial != nil {
				if err := task.onPartial(task.acc); err != nil {
					return task.fail(err)
				}
			}
			task.pending = item
			task.status = Suspended
			task.stats.Suspensions++
			tracer().Debugf("%s: suspended after %d items, %s spent (budget %s)",
				task.name, task.stats.Items, elapsed, task.budget)
			return Suspended, nil
		}
		if err := task.fold(item); err != nil {
			return task.fail(err)
		}
	}
}

func (task *Task[A, T]) fold(item T) error {
	acc, err := task.combine(task.acc, item)
	if err != nil {
		return err
	}
	task.acc = acc
	task.stats.Items++
	return nil
}

func (task *Task[A, T]) complete() (Status, error) {
	task.release()
	if err := task.onComplete(task.acc); err != nil {
		return task.fail(err)
	}
	task.status = Completed
	tracer().Infof("%s: completed, %d items in %d steps", task.name, task.stats.Items, task.stats.Steps)
	return Completed, nil
}

func (task *Task[A, T]) fail(err error) (Status, error) {
	task.release()
	task.err = fmt.Errorf("%w: %w", ErrTaskFailed, err)
	tracer().Errorf("%s: %v", task.name, err)
	return task.status, err
}

func (task *Task[A, T]) release() {
	if task.stop != nil {
		task.stop()
		task.stop = nil
	}
	var zero T
	task.pending = zero
}

// Abandon gives up a task which has not completed. The sequence is released,
// callbacks which already ran are not undone, and no further callbacks will
// run. Step returns ErrAbandoned afterwards. Abandoning a completed or
// failed task is a no-op.
func (task *Task[A, T]) Abandon() {
	if task.status == Completed || task.err != nil {
		return
	}
	task.release()
	task.err = ErrAbandoned
	tracer().Debugf("%s: abandoned after %d items", task.name, task.stats.Items)
}

// Status returns the current state of a task.
func (task *Task[A, T]) Status() Status {
	return task.status
}

// Accumulator returns the accumulator as folded so far.
func (task *Task[A, T]) Accumulator() A {
	return task.acc
}

// Stats returns the progress counters of a task.
func (task *Task[A, T]) Stats() Stats {
	return task.stats
}

// Err returns the error which terminated a task, if any.
func (task *Task[A, T]) Err() error {
	return task.err
}
