package core

import (
	"context"
	"reflect"
	"runtime"
	"sync"
	"time"
)

// TaskFunc is the unit of work executed by a task board. It receives a
// context.Context carrying the currently-dispatched task, used by TaskYield,
// TaskGetArgs, BlockingTaskCreate and RemoteTaskCreate to recover "the
// current task" without thread-local storage.
type TaskFunc func(ctx context.Context)

// FuncRef pairs a TaskFunc with its symbolic name, the history table's key.
type FuncRef struct {
	Fn   TaskFunc
	Name string
}

func (f FuncRef) resolvedName() string {
	if f.Name != "" {
		return f.Name
	}
	return resolveFuncName(f.Fn)
}

func resolveFuncName(fn TaskFunc) string {
	if fn == nil {
		return "anonymous"
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.Pointer() == 0 {
		return "anonymous"
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil || rf.Name() == "" {
		return "anonymous"
	}
	return rf.Name()
}

// TaskKind classifies the origin of a task.
type TaskKind int

const (
	// TaskKindLocal is a task submitted directly via TaskCreate.
	TaskKindLocal TaskKind = iota
	// TaskKindBlockingChild is a child spawned by BlockingTaskCreate.
	TaskKindBlockingChild
	// TaskKindRemote is a task resumed after a remote-task round trip.
	// (Remote tasks do not spawn a new Task; this kind is reserved for
	// future sequencer evolution and is not currently
	// produced.)
	TaskKindRemote
)

// TaskState is a task's lifecycle state.
type TaskState int

const (
	TaskInitialized TaskState = iota
	TaskRunning
	TaskCompleted
)

// TaskClass is a task's priority class and determines its placement queue.
type TaskClass int

const (
	// ClassPriority goes to the head of the primary queue.
	ClassPriority TaskClass = iota
	// ClassPrimary goes to the tail of the primary queue.
	ClassPrimary
	// ClassSecondary goes to the secondary queue with the shortest backlog.
	ClassSecondary
)

func (c TaskClass) String() string {
	switch c {
	case ClassPriority:
		return "priority"
	case ClassPrimary:
		return "primary"
	case ClassSecondary:
		return "secondary"
	default:
		return "unknown"
	}
}

// yieldReason records why a coroutine suspended, interpreted by the
// executor immediately after Resume returns.
type yieldReason int

const (
	yieldNone yieldReason = iota
	yieldPlain
	yieldBlockingChild
	yieldRemoteBlocking
	yieldRemoteNonBlocking
)

// Task is the scheduler's unit of placement. Exactly one executor resumes a
// task at any moment; Running implies the task is absent from every ready
// queue; Completed implies it has been removed from all queues and its
// coroutine has been destroyed.
type Task struct {
	mu sync.Mutex

	id    uint64
	kind  TaskKind
	state TaskState
	class TaskClass

	cpuTime time.Duration
	yields  int

	fn        FuncRef
	coroutine *Coroutine
	board     *Board

	args  any
	owned bool // API-fidelity flag; the GC reclaims regardless, see DESIGN.md

	hist *HistoryEntry

	// parent is set only for blocking children; non-owning.
	parent *Task

	// secondaryIndex records which secondary queue owns this task, or -1
	// for Priority/Primary tasks native to the primary queue. It is used to
	// return a primary-helped secondary task to its origin on plain yield.
	secondaryIndex int

	reason yieldReason
	remote *RemoteTask

	startedAt time.Time
}

func newTask(id uint64, kind TaskKind, fn FuncRef, class TaskClass, args any) *Task {
	return &Task{
		id:             id,
		kind:           kind,
		state:          TaskInitialized,
		class:          class,
		fn:             fn,
		args:           args,
		secondaryIndex: -1,
	}
}

// Args returns the task's argument value, as supplied to TaskCreate or
// BlockingTaskCreate, or as last set by SetArgs.
func (t *Task) Args() any {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.args
}

// SetArgs overwrites this task's own argument value; later Args and
// TaskGetArgs calls for the same task return the new value.
func (t *Task) SetArgs(v any) {
	t.mu.Lock()
	t.args = v
	t.mu.Unlock()
}

// State reports the task's current lifecycle state.
func (t *Task) State() TaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Class reports the task's priority class.
func (t *Task) Class() TaskClass {
	return t.class
}

// Name reports the task's history key.
func (t *Task) Name() string {
	return t.fn.resolvedName()
}

// CPUTime reports the task's cumulative CPU time across all of its resumes.
func (t *Task) CPUTime() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cpuTime
}

// Yields reports the task's cumulative yield count.
func (t *Task) Yields() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.yields
}

type taskKeyType struct{}

var taskKey taskKeyType

// withCurrentTask returns a context carrying the currently-dispatched task,
// generalizing a taskRunnerKeyType/GetCurrentTaskRunner-style pattern
// from "current task runner" to "current task."
func withCurrentTask(ctx context.Context, t *Task) context.Context {
	return context.WithValue(ctx, taskKey, t)
}

// CurrentTask recovers the task dispatched into ctx by the executor. It
// returns nil if ctx carries no task, which callers surface as
// ErrNotInTask.
func CurrentTask(ctx context.Context) *Task {
	v := ctx.Value(taskKey)
	if v == nil {
		return nil
	}
	t, _ := v.(*Task)
	return t
}
