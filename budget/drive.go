package budget

import (
	"context"
	"time"
)

// Drive is a minimal host loop. It steps task once right away and then once
// per tick received from ticks, until the task completes or fails. The final
// accumulator is returned.
//
// If ctx is cancelled while the task is suspended, the task is abandoned and
// the accumulator folded so far is returned together with ctx.Err().
func Drive[A, T any](ctx context.Context, task *Task[A, T], ticks <-chan time.Time) (A, error) {
	for {
		status, err := task.Step()
		if err != nil {
			return task.Accumulator(), err
		}
		if status == Completed {
			return task.Accumulator(), nil
		}
		select {
		case <-ctx.Done():
			task.Abandon()
			return task.Accumulator(), ctx.Err()
		case <-ticks:
		}
	}
}
