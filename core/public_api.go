package core

import "context"

// TaskYield suspends the calling task, returning control to its executor,
// which reinserts the task into its class queue once it observes the
// suspension. It is a no-op if ctx carries no current task. See
// TaskYieldWithErr for the error-returning counterpart.
func TaskYield(ctx context.Context) {
	_ = TaskYieldWithErr(ctx)
}

// TaskYieldWithErr is TaskYield's richer counterpart: it reports
// ErrNotInTask instead of silently no-op'ing when ctx carries no current
// task.
func TaskYieldWithErr(ctx context.Context) error {
	t := CurrentTask(ctx)
	if t == nil {
		return ErrNotInTask
	}

	t.mu.Lock()
	t.yields++
	t.reason = yieldPlain
	hist, board := t.hist, t.board
	t.mu.Unlock()

	if board != nil {
		board.history.RecordYield(hist)
	}

	t.coroutine.Yield()
	return nil
}

// TaskGetArgs returns the current task's argument value, or nil if ctx
// carries no current task. See TaskGetArgsWithErr for the error-returning
// counterpart.
func TaskGetArgs(ctx context.Context) any {
	v, _ := TaskGetArgsWithErr(ctx)
	return v
}

// TaskGetArgsWithErr is TaskGetArgs's richer counterpart: it reports
// ErrNotInTask instead of collapsing "no current task" to a bare nil.
func TaskGetArgsWithErr(ctx context.Context) (any, error) {
	t := CurrentTask(ctx)
	if t == nil {
		return nil, ErrNotInTask
	}
	return t.Args(), nil
}
