package core

import (
	"context"
	"strconv"
	"time"
)

// TaskCreate allocates a task, constructs its coroutine context whose user
// data is set to args, increments the concurrency counter, records an
// execution in history, and places the task. It returns false when the
// board is nil, on admission overflow, or if coroutine construction fails.
// See TaskCreateWithErr for the error-returning counterpart.
func TaskCreate(board *Board, fn FuncRef, class TaskClass, args any) bool {
	ok, _ := TaskCreateWithErr(board, fn, class, args)
	return ok
}

// TaskCreateWithErr is TaskCreate's richer counterpart: it reports which
// sentinel from core/errors.go explains a false result (ErrBoardNil,
// ErrAdmissionDenied, ErrCoroutineCreateFailed) instead of collapsing every
// failure mode to false.
func TaskCreateWithErr(board *Board, fn FuncRef, class TaskClass, args any) (bool, error) {
	if board == nil {
		return false, ErrBoardNil
	}
	if board.AddConcurrent() == 0 {
		board.config.Metrics.RecordTaskRejected("admission_denied")
		board.config.RejectedTaskHandler.HandleRejectedTask("admission_denied")
		return false, ErrAdmissionDenied
	}

	task := newTask(board.nextTaskID.Add(1), TaskKindLocal, fn, class, args)
	task.board = board
	task.coroutine = newTaskCoroutine(task)
	if task.coroutine == nil {
		board.Deinc()
		return false, ErrCoroutineCreateFailed
	}
	task.hist = board.history.RecordExec(fn.resolvedName())

	if class == ClassPriority {
		board.priorityInFlight.Add(1)
	}
	board.placeTask(task)
	return true, nil
}

// CreateWithRetry retries TaskCreate under policy until it succeeds or the
// policy's retries are exhausted, using RetryPolicy's exponential-backoff
// shape (core/logger.go).
func CreateWithRetry(ctx context.Context, board *Board, fn FuncRef, class TaskClass, args any, policy RetryPolicy) bool {
	if TaskCreate(board, fn, class, args) {
		return true
	}
	for attempt := 0; attempt < policy.MaxRetries; attempt++ {
		delay := policy.calculateDelay(attempt)
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return false
			case <-timer.C:
			}
		}
		if TaskCreate(board, fn, class, args) {
			return true
		}
	}
	return false
}

// BlockingTaskCreate must be called from within a running task (resolved
// via ctx). It builds a child task whose parent link points to the current
// task, places the child, and yields the parent with reason "spawned
// blocking child." It returns false if ctx carries no current task, the
// child's coroutine cannot be constructed, or the child panicked. See
// BlockingTaskCreateWithErr for the error-returning counterpart.
func BlockingTaskCreate(ctx context.Context, board *Board, fn FuncRef, class TaskClass, args any) bool {
	ok, _ := BlockingTaskCreateWithErr(ctx, board, fn, class, args)
	return ok
}

// BlockingTaskCreateWithErr is BlockingTaskCreate's richer counterpart: it
// reports ErrBoardNil, ErrNotInTask, or ErrCoroutineCreateFailed in place of
// a bare false. A child that ran but panicked still reports (false, nil),
// since a panic isn't one of the sentinel conditions in core/errors.go.
func BlockingTaskCreateWithErr(ctx context.Context, board *Board, fn FuncRef, class TaskClass, args any) (bool, error) {
	if board == nil {
		return false, ErrBoardNil
	}
	parent := CurrentTask(ctx)
	if parent == nil {
		return false, ErrNotInTask
	}

	child := newTask(board.nextTaskID.Add(1), TaskKindBlockingChild, fn, class, args)
	child.parent = parent
	child.board = board
	child.coroutine = newTaskCoroutine(child)
	if child.coroutine == nil {
		return false, ErrCoroutineCreateFailed
	}
	child.hist = board.history.RecordExec(fn.resolvedName())

	if class == ClassPriority {
		board.priorityInFlight.Add(1)
	}
	board.placeTask(child)

	parent.mu.Lock()
	parent.reason = yieldBlockingChild
	parent.mu.Unlock()

	parent.coroutine.Yield()

	return child.coroutine.Panic() == nil, nil
}

// placeTask routes a task to its class queue: Priority to the head of the
// primary queue, Primary to the tail of the primary queue, Secondary to the
// shortest secondary queue (ties broken by lowest index). Used both for a
// task's first placement and for reinserting a caller whose remote-blocking
// response arrived, or a parent whose blocking child finished.
// priorityInFlight accounting happens only at task creation (TaskCreate,
// BlockingTaskCreate) and completion (finishTask), never here, since
// placeTask is called multiple times across a task's lifetime.
func (b *Board) placeTask(t *Task) {
	switch t.class {
	case ClassPriority:
		b.primary.PushHead(t)
		b.config.Metrics.RecordQueueDepth("primary", b.primary.Len())
	case ClassPrimary:
		b.primary.PushTail(t)
		b.config.Metrics.RecordQueueDepth("primary", b.primary.Len())
	case ClassSecondary:
		idx := b.shortestSecondary()
		if idx == -1 {
			// No secondary executors exist on this board; fall back to the
			// primary queue rather than index into an empty slice.
			t.class = ClassPrimary
			b.primary.PushTail(t)
			b.config.Metrics.RecordQueueDepth("primary", b.primary.Len())
			return
		}
		t.secondaryIndex = idx
		b.secondaries[idx].PushTail(t)
		b.config.Metrics.RecordQueueDepth(secondaryQueueName(idx), b.secondaries[idx].Len())
		if b.config.SignalPrimaryOnSecondaryInsert {
			b.primary.Broadcast()
		}
	}
}

func secondaryQueueName(idx int) string {
	return "secondary-" + strconv.Itoa(idx)
}

// shortestSecondary returns the index of the secondary queue with the
// fewest ready tasks, or -1 if the board has no secondary executors.
func (b *Board) shortestSecondary() int {
	best := -1
	bestLen := -1
	for i, q := range b.secondaries {
		l := q.Len()
		if bestLen == -1 || l < bestLen {
			bestLen = l
			best = i
		}
	}
	return best
}

func newTaskCoroutine(t *Task) *Coroutine {
	co := NewCoroutine(func() {
		runCtx := withCurrentTask(context.Background(), t)
		t.fn.Fn(runCtx)
	})
	co.SetUserData(t)
	return co
}
