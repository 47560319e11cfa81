package core

import "errors"

// Sentinel errors surfaced by the task board's lifecycle and transport
// operations.
var (
	// ErrAdmissionDenied means the concurrency limit was reached.
	ErrAdmissionDenied = errors.New("taskboard: admission denied, concurrency limit reached")

	// ErrNotInTask means a task-scoped call was made with no current task
	// resolvable from the supplied context.
	ErrNotInTask = errors.New("taskboard: called with no current task in context")

	// ErrCoroutineCreateFailed means the underlying coroutine could not be
	// constructed.
	ErrCoroutineCreateFailed = errors.New("taskboard: coroutine creation failed")

	// ErrBoardNotRunning means KillWithErr was called on a board that is not
	// in the Started state. Destroy/DestroyWithErr never return it: on a
	// board that was never Started, destruction is a no-op beyond teardown
	// rather than an error.
	ErrBoardNotRunning = errors.New("taskboard: board is not running")

	// ErrShutdownInterrupt means the executor observed the shutdown flag
	// mid-wait; the task it was about to run remains queued and is
	// discarded by Destroy. No operation in this package returns it; the
	// executor's wait simply ends.
	ErrShutdownInterrupt = errors.New("taskboard: shutdown observed mid-wait")

	// ErrBoardNil means a nil *Board was passed to an operation that
	// requires one.
	ErrBoardNil = errors.New("taskboard: board is nil")
)
