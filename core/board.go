package core

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// BoardStatus is the board's lifecycle status word.
type BoardStatus int32

const (
	BoardCreated BoardStatus = iota
	BoardStarted
	BoardStopped
)

func (s BoardStatus) String() string {
	switch s {
	case BoardCreated:
		return "created"
	case BoardStarted:
		return "started"
	case BoardStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Board is the task board's owning aggregate: queues, executors,
// concurrency counter, history, lifecycle state, and shutdown flag.
// Follows a familiar Start/Stop lifecycle shape (a WaitGroup of workers and
// a shared shutdown signal), but with no process-global singleton: the
// board pointer is threaded through every public call instead.
type Board struct {
	config *BoardConfig

	primary     *ReadyQueue
	secondaries []*ReadyQueue
	sqs         int

	messages *MessageQueue
	history  *History

	concurrent atomic.Int64

	status   atomic.Int32
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	doneCh   chan struct{}

	// protectionMu is the board's outermost lock, taken by Destroy only after every
	// executor has joined, and available to external callers (through
	// ProtectionMutex) who want to inspect final state around a Kill/Destroy
	// pair.
	protectionMu sync.Mutex

	nextTaskID atomic.Uint64

	// priorityInFlight counts Priority-class tasks currently queued or
	// running; primary-helping is suppressed while it is non-zero.
	priorityInFlight atomic.Int64
}

// BoardCreate creates a board with the requested secondary-queue count,
// capped at MaxSecondaries, in the Created status. Call Start to spawn its
// executors.
func BoardCreate(numSecondaries int, opts ...BoardOption) *Board {
	if numSecondaries < 0 {
		numSecondaries = 0
	}
	if numSecondaries > MaxSecondaries {
		numSecondaries = MaxSecondaries
	}

	cfg := DefaultBoardConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	b := &Board{
		config:      cfg,
		primary:     NewReadyQueue(),
		secondaries: make([]*ReadyQueue, numSecondaries),
		sqs:         numSecondaries,
		messages:    NewMessageQueue(),
		history:     NewHistory(),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
	for i := range b.secondaries {
		b.secondaries[i] = NewReadyQueue()
	}
	b.status.Store(int32(BoardCreated))
	return b
}

// Status reports the board's current lifecycle status.
func (b *Board) Status() BoardStatus {
	return BoardStatus(b.status.Load())
}

// ProtectionMutex returns the board's protection mutex, for callers that
// want to inspect final state around a Kill/Destroy pair. Destroy takes it
// only after every executor has joined.
func (b *Board) ProtectionMutex() *sync.Mutex { return &b.protectionMu }

// History returns the board's execution-history table.
func (b *Board) History() *History { return b.history }

// Concurrent reports the board's current concurrent-task count.
func (b *Board) Concurrent() int {
	return int(b.concurrent.Load())
}

// AddConcurrent atomically increments the concurrent-task counter iff it is
// below MaxTasks, returning the new value, or 0 on overflow.
func (b *Board) AddConcurrent() int {
	for {
		cur := b.concurrent.Load()
		if cur >= MaxTasks {
			return 0
		}
		if b.concurrent.CompareAndSwap(cur, cur+1) {
			b.config.Metrics.RecordConcurrent(int(cur + 1))
			return int(cur + 1)
		}
	}
}

// Inc unconditionally increments the concurrent-task counter.
func (b *Board) Inc() int { return int(b.concurrent.Add(1)) }

// Deinc unconditionally decrements the concurrent-task counter.
func (b *Board) Deinc() int { return int(b.concurrent.Add(-1)) }

func (b *Board) shutdownCh() <-chan struct{} { return b.stopCh }

func (b *Board) isShuttingDown() bool {
	select {
	case <-b.stopCh:
		return true
	default:
		return false
	}
}

// Start spawns the primary executor goroutine and sqs secondary executor
// goroutines, each parameterized by {kind, index, board}. Start is a no-op
// if the board is not in the Created status.
func (b *Board) Start(ctx context.Context) {
	if !b.status.CompareAndSwap(int32(BoardCreated), int32(BoardStarted)) {
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		runExecutor(ctx, b, executorSpec{kind: executorPrimary, index: -1})
	}()

	for i := 0; i < b.sqs; i++ {
		idx := i
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			runExecutor(ctx, b, executorSpec{kind: executorSecondary, index: idx})
		}()
	}
}

// Kill is the external signal to terminate. It sets the shutdown flag,
// broadcasts every executor's condvar and the message condvar so sleepers
// wake, then waits for every executor goroutine to join. It returns false
// if the board is nil or not Started, true otherwise. A second call, once
// the board has fully stopped, observes status != Started and returns
// false. See KillWithErr for the error-returning counterpart.
func (b *Board) Kill() bool {
	ok, _ := b.KillWithErr()
	return ok
}

// KillWithErr is Kill's richer counterpart: it reports ErrBoardNil or
// ErrBoardNotRunning in place of a bare false.
func (b *Board) KillWithErr() (bool, error) {
	if b == nil {
		return false, ErrBoardNil
	}
	if !b.status.CompareAndSwap(int32(BoardStarted), int32(BoardStopped)) {
		return false, ErrBoardNotRunning
	}

	b.stopOnce.Do(func() { close(b.stopCh) })
	b.primary.Broadcast()
	for _, s := range b.secondaries {
		s.Broadcast()
	}
	b.messages.Broadcast()

	b.wg.Wait()
	close(b.doneCh)
	return true, nil
}

// Destroy blocks until shutdown completes (i.e. until some caller has
// invoked Kill and every executor goroutine has joined), then drains all
// queues, discarding every task and sized argument -- for blocking
// children, parents are discarded transitively first -- drains both
// message queues, tears down history, and broadcasts the message condvar
// so any external transport awakes to observe termination.
//
// Destroy acquires the board's protection mutex only after joins have
// completed, so callers that lock that mutex themselves before calling
// Kill never deadlock against Destroy.
//
// Called on a board that was never Started, doneCh would never close since
// only Kill closes it; Destroy treats that case as a no-op beyond teardown
// instead of blocking forever. See DestroyWithErr for the error-returning
// counterpart.
func (b *Board) Destroy() {
	_ = b.DestroyWithErr()
}

// DestroyWithErr is Destroy's richer counterpart: it reports ErrBoardNil
// instead of panicking on a nil receiver.
func (b *Board) DestroyWithErr() error {
	if b == nil {
		return ErrBoardNil
	}
	if BoardStatus(b.status.Load()) != BoardCreated {
		<-b.doneCh
	}

	b.protectionMu.Lock()
	defer b.protectionMu.Unlock()

	drainQueue(b.primary)
	for _, s := range b.secondaries {
		drainQueue(s)
	}
	b.messages.Drain()
	b.history.Destroy()
	b.messages.Broadcast()
	return nil
}

func drainQueue(q *ReadyQueue) {
	for _, t := range q.Clear() {
		discardTask(t)
	}
}

// discardTask discards a task's coroutine marker. For blocking children,
// the parent chain is discarded transitively first. In Go this just drops
// references rather than freeing memory, since the garbage collector owns
// reclamation.
func discardTask(t *Task) {
	if t == nil {
		return
	}
	if t.parent != nil {
		discardTask(t.parent)
	}
	if t.coroutine != nil {
		t.coroutine.Destroy()
	}
}

// BoardExit ends the calling goroutine after running its deferred
// cleanups, the Go analogue of ending the calling thread with
// pthread_exit. Intended to be called at the tail of main, after Destroy
// returns.
func BoardExit() {
	runtime.Goexit()
}
