package core

import (
	"context"
	"runtime/debug"
	"time"
)

// executorKind distinguishes the primary executor, which may opportunistically
// help secondaries, from a secondary executor bound to one queue.
type executorKind int

const (
	executorPrimary executorKind = iota
	executorSecondary
)

// executorSpec parameterizes one executor goroutine: its kind and, for a
// secondary, which queue index it owns.
type executorSpec struct {
	kind  executorKind
	index int // -1 for primary, secondary queue index otherwise
}

// helpPollInterval bounds how often an idle primary executor rechecks
// secondary queues for work to help with, since a Go sync.Cond wait on the
// primary's own queue does not by itself observe secondary-queue state.
const helpPollInterval = 2 * time.Millisecond

// runExecutor is one executor's main loop: a dedicated goroutine draining
// a work source until its stop signal fires, executing with panic recovery.
func runExecutor(ctx context.Context, b *Board, spec executorSpec) {
	stop := b.shutdownCh()
	for {
		if isClosed(stop) {
			return
		}

		b.runSequencer()

		task, ok := pickTask(b, spec, stop)
		if !ok {
			if isClosed(stop) {
				return
			}
			continue
		}

		runTask(ctx, b, spec, task)
	}
}

func ownQueue(b *Board, spec executorSpec) *ReadyQueue {
	if spec.kind == executorPrimary {
		return b.primary
	}
	return b.secondaries[spec.index]
}

func pickTask(b *Board, spec executorSpec, stop <-chan struct{}) (*Task, bool) {
	own := ownQueue(b, spec)

	if t, ok := own.Pop(); ok {
		return t, true
	}

	if spec.kind == executorPrimary && b.config.PrimaryHelpingEnabled && b.priorityInFlight.Load() == 0 {
		if t, ok := helpSecondaries(b); ok {
			return t, true
		}
		return own.PopWaitTimeout(stop, helpPollInterval)
	}

	return own.PopWait(stop)
}

// helpSecondaries implements "primary helping": dequeue from the tail of
// the secondary queue with the longest backlog.
func helpSecondaries(b *Board) (*Task, bool) {
	bestIdx := -1
	bestLen := 0
	for i, q := range b.secondaries {
		if l := q.Len(); l > bestLen {
			bestLen = l
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return nil, false
	}
	return b.secondaries[bestIdx].StealTail()
}

// runSequencer drains inbound message responses into their calling tasks'
// ready queues.
func (b *Board) runSequencer() {
	for _, rt := range b.messages.DrainInbound() {
		elapsed := time.Since(rt.sentAt)
		b.config.Metrics.RecordRemoteRoundTrip(rt.Blocking, elapsed)
		if rt.Blocking {
			b.placeTask(rt.Caller)
		}
	}
}

// runTask resumes task once and interprets the result: a dead coroutine
// means the task finished, a suspended one means it yielded.
func runTask(ctx context.Context, b *Board, spec executorSpec, t *Task) {
	t.mu.Lock()
	t.state = TaskRunning
	t.mu.Unlock()

	started := time.Now()
	resumeWithRecover(b, spec, t)
	elapsed := time.Since(started)

	t.mu.Lock()
	t.cpuTime += elapsed
	t.mu.Unlock()

	b.config.Metrics.RecordTaskDuration(t.class, elapsed)

	switch t.coroutine.Status() {
	case CoroutineDead:
		finishTask(b, spec, t)
	case CoroutineSuspended:
		handleYield(b, spec, t)
	}
}

// resumeWithRecover guards against a panic escaping Resume itself (e.g. from
// code running between the coroutine's own recover and the executor, such as
// a misbehaving PanicHandler). The coroutine's entry function panic is
// recovered inside the coroutine's own goroutine and reported from
// finishTask, since by the time Resume returns normally the panic has
// already been absorbed into CoroutineDead + Coroutine.Panic().
func resumeWithRecover(b *Board, spec executorSpec, t *Task) {
	defer func() {
		if r := recover(); r != nil {
			b.config.Metrics.RecordTaskPanic(t.Name())
			b.config.PanicHandler.HandlePanic(t.Name(), t.class, spec.index, r, debug.Stack())
		}
	}()
	t.coroutine.Resume()
}

func finishTask(b *Board, spec executorSpec, t *Task) {
	t.mu.Lock()
	t.state = TaskCompleted
	cpuTime := t.cpuTime
	yields := t.yields
	parent := t.parent
	class := t.class
	t.mu.Unlock()

	b.history.RecordCompletion(t.hist, cpuTime, yields)

	if class == ClassPriority {
		b.priorityInFlight.Add(-1)
	}

	// The entry function's panic, if any, was already recovered inside the
	// coroutine's own goroutine (Coroutine.run), so it never reaches
	// resumeWithRecover's deferred recover above; report it here instead.
	if t.kind != TaskKindBlockingChild {
		if r := t.coroutine.Panic(); r != nil {
			b.config.Metrics.RecordTaskPanic(t.Name())
			b.config.PanicHandler.HandlePanic(t.Name(), t.class, spec.index, r, t.coroutine.PanicStack())
		}
		b.Deinc()
		b.config.Metrics.RecordConcurrent(b.Concurrent())
	}

	t.coroutine.Destroy()

	if parent != nil {
		b.placeTask(parent)
	}
}

func handleYield(b *Board, spec executorSpec, t *Task) {
	t.mu.Lock()
	reason := t.reason
	t.reason = yieldNone
	t.mu.Unlock()

	switch reason {
	case yieldBlockingChild:
		// The child was already placed by BlockingTaskCreate; the parent
		// is reinserted only when the child finishes (finishTask above).
		return
	case yieldRemoteBlocking:
		// The remote record on the outbound queue carries the calling
		// task pointer; the sequencer reinserts on response arrival.
		return
	case yieldRemoteNonBlocking:
		reinsertYielded(b, spec, t)
	default: // yieldPlain, or yieldNone (task yielded without using the API)
		reinsertYielded(b, spec, t)
	}
}

func reinsertYielded(b *Board, spec executorSpec, t *Task) {
	if t.class == ClassSecondary && spec.kind == executorPrimary {
		// Primary-helped a secondary task: return it to its origin queue,
		// not to the primary's own queue.
		b.secondaries[t.secondaryIndex].Push(t, b.config.ReinsertAtHead)
		return
	}

	switch t.class {
	case ClassPriority:
		b.primary.PushHead(t)
	case ClassPrimary:
		// While a Priority task is in flight, a yielded Primary task goes to
		// the tail so it cannot reclaim the head ahead of a queued Priority task.
		b.primary.Push(t, b.config.ReinsertAtHead && b.priorityInFlight.Load() == 0)
	case ClassSecondary:
		b.secondaries[t.secondaryIndex].Push(t, b.config.ReinsertAtHead)
	}
}
