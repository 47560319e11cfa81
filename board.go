package tboard

import (
	"context"

	"github.com/zackorenberg/JAM-tboard/core"
)

// Re-export the task board API from core for convenience, so most callers
// only need to import this top-level package.

// Board owns the queues, executors, and lifecycle state of one task board.
type Board = core.Board

// BoardConfig configures optional board behavior.
type BoardConfig = core.BoardConfig

// BoardOption mutates a BoardConfig; passed to BoardCreate.
type BoardOption = core.BoardOption

// BoardStatus is the board's lifecycle status word.
type BoardStatus = core.BoardStatus

// BoardStats is a point-in-time snapshot of queue depths and counters.
type BoardStats = core.BoardStats

// Task is the scheduler's unit of placement.
type Task = core.Task

// TaskFunc is the unit of work executed by a task board.
type TaskFunc = core.TaskFunc

// FuncRef pairs a TaskFunc with its symbolic name, the history table's key.
type FuncRef = core.FuncRef

// TaskClass is a task's priority class and determines its placement queue.
type TaskClass = core.TaskClass

// TaskState is a task's lifecycle state.
type TaskState = core.TaskState

// HistoryEntry holds per-function execution statistics.
type HistoryEntry = core.HistoryEntry

// History is the board's per-function execution-statistics table.
type History = core.History

// RemoteTask is the record shipped to the external transport and answered
// asynchronously via a paired response queue.
type RemoteTask = core.RemoteTask

// Transport is the external collaborator for the remote-task protocol.
type Transport = core.Transport

// Handler answers one remote request.
type Handler = core.Handler

// FakeTransport is a reference Transport for tests and examples.
type FakeTransport = core.FakeTransport

// Logger is the structured logging interface carried in BoardConfig.Logger.
type Logger = core.Logger

// Metrics defines the interface for collecting task-board execution metrics.
type Metrics = core.Metrics

// PanicHandler is called when a task's function panics during execution.
type PanicHandler = core.PanicHandler

// RejectedTaskHandler is called when TaskCreate is denied admission.
type RejectedTaskHandler = core.RejectedTaskHandler

// RetryPolicy configures CreateWithRetry's backoff.
type RetryPolicy = core.RetryPolicy

// Priority class constants.
const (
	ClassPriority  TaskClass = core.ClassPriority
	ClassPrimary   TaskClass = core.ClassPrimary
	ClassSecondary TaskClass = core.ClassSecondary
)

// Board lifecycle status constants.
const (
	BoardCreated BoardStatus = core.BoardCreated
	BoardStarted BoardStatus = core.BoardStarted
	BoardStopped BoardStatus = core.BoardStopped
)

// Compile-time board limits.
const (
	MaxTasks       = core.MaxTasks
	MaxSecondaries = core.MaxSecondaries
	MaxMsgLength   = core.MaxMsgLength
)

// Sentinel errors.
var (
	ErrAdmissionDenied       = core.ErrAdmissionDenied
	ErrNotInTask             = core.ErrNotInTask
	ErrCoroutineCreateFailed = core.ErrCoroutineCreateFailed
	ErrBoardNotRunning       = core.ErrBoardNotRunning
	ErrShutdownInterrupt     = core.ErrShutdownInterrupt
	ErrBoardNil              = core.ErrBoardNil
)

// Functional options for BoardCreate.
var (
	WithLogger                 = core.WithLogger
	WithMetrics                = core.WithMetrics
	WithPanicHandler           = core.WithPanicHandler
	WithRejectedTaskHandler    = core.WithRejectedTaskHandler
	WithRetryPolicy            = core.WithRetryPolicy
	WithReinsertAtTail         = core.WithReinsertAtTail
	WithPrimaryHelpingDisabled = core.WithPrimaryHelpingDisabled
)

// BoardCreate creates a board with the requested secondary-queue count.
func BoardCreate(numSecondaries int, opts ...BoardOption) *Board {
	return core.BoardCreate(numSecondaries, opts...)
}

// TaskCreate submits fn to board under class, with args as its initial
// argument value.
func TaskCreate(board *Board, fn FuncRef, class TaskClass, args any) bool {
	return core.TaskCreate(board, fn, class, args)
}

// TaskCreateWithErr is TaskCreate's richer counterpart, reporting which
// sentinel error (ErrBoardNil, ErrAdmissionDenied, ErrCoroutineCreateFailed)
// explains a false result.
func TaskCreateWithErr(board *Board, fn FuncRef, class TaskClass, args any) (bool, error) {
	return core.TaskCreateWithErr(board, fn, class, args)
}

// CreateWithRetry retries TaskCreate under policy until it succeeds, ctx is
// done, or the policy's retries are exhausted.
func CreateWithRetry(ctx context.Context, board *Board, fn FuncRef, class TaskClass, args any, policy RetryPolicy) bool {
	return core.CreateWithRetry(ctx, board, fn, class, args, policy)
}

// BlockingTaskCreate spawns a child task and suspends the calling task
// until the child finishes. Must be called from within a running task.
func BlockingTaskCreate(ctx context.Context, board *Board, fn FuncRef, class TaskClass, args any) bool {
	return core.BlockingTaskCreate(ctx, board, fn, class, args)
}

// BlockingTaskCreateWithErr is BlockingTaskCreate's richer counterpart,
// reporting ErrBoardNil, ErrNotInTask, or ErrCoroutineCreateFailed in place
// of a bare false.
func BlockingTaskCreateWithErr(ctx context.Context, board *Board, fn FuncRef, class TaskClass, args any) (bool, error) {
	return core.BlockingTaskCreateWithErr(ctx, board, fn, class, args)
}

// RemoteTaskCreate hands message and buf to board's Transport and, for a
// blocking call, suspends the calling task until the response arrives.
func RemoteTaskCreate(ctx context.Context, board *Board, message string, buf []byte, blocking bool) ([]byte, bool) {
	return core.RemoteTaskCreate(ctx, board, message, buf, blocking)
}

// RemoteTaskCreateWithErr is RemoteTaskCreate's richer counterpart,
// reporting ErrBoardNil or ErrNotInTask in place of a bare (nil, false).
func RemoteTaskCreateWithErr(ctx context.Context, board *Board, message string, buf []byte, blocking bool) ([]byte, bool, error) {
	return core.RemoteTaskCreateWithErr(ctx, board, message, buf, blocking)
}

// TaskYield suspends the calling task and reinserts it into its class queue.
func TaskYield(ctx context.Context) { core.TaskYield(ctx) }

// TaskYieldWithErr is TaskYield's richer counterpart, reporting ErrNotInTask
// instead of silently no-op'ing when ctx carries no current task.
func TaskYieldWithErr(ctx context.Context) error { return core.TaskYieldWithErr(ctx) }

// TaskGetArgs returns the current task's argument value.
func TaskGetArgs(ctx context.Context) any { return core.TaskGetArgs(ctx) }

// TaskGetArgsWithErr is TaskGetArgs's richer counterpart, reporting
// ErrNotInTask instead of collapsing "no current task" to a bare nil.
func TaskGetArgsWithErr(ctx context.Context) (any, error) { return core.TaskGetArgsWithErr(ctx) }

// CurrentTask recovers the task dispatched into ctx by the executor.
func CurrentTask(ctx context.Context) *Task { return core.CurrentTask(ctx) }

// BoardExit ends the calling goroutine after running its deferred cleanups.
func BoardExit() { core.BoardExit() }

// NewFakeTransport builds a FakeTransport that answers every outbound
// message with fn.
func NewFakeTransport(fn Handler) *FakeTransport { return core.NewFakeTransport(fn) }

// NewDefaultLogger builds the board's default structured logger.
func NewDefaultLogger() Logger { return core.NewDefaultLogger() }

// DefaultRetryPolicy returns RetryPolicy's exponential-backoff default.
func DefaultRetryPolicy() RetryPolicy { return core.DefaultRetryPolicy() }

// NoRetry returns a RetryPolicy that never retries.
func NoRetry() RetryPolicy { return core.NoRetry() }
