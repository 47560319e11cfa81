// Package tboard provides a cooperative, multi-priority task board for Go.
//
// A board holds one primary executor and up to core.MaxSecondaries secondary
// executors, each draining its own ready queue. Tasks run as stackful
// coroutines that can yield mid-function, spawn a blocking child and wait
// for it in place, or hand off to an external transport for a remote round
// trip, all without blocking an OS thread.
//
// # Quick Start
//
// Create and start a board, then submit work:
//
//	board := tboard.BoardCreate(4) // 4 secondary executors
//	board.Start(context.Background())
//	defer func() {
//		board.Kill()
//		board.Destroy()
//	}()
//
//	tboard.TaskCreate(board, tboard.FuncRef{Fn: myTask}, tboard.ClassSecondary, nil)
//
// # Key Concepts
//
// Classes: ClassPriority jumps the primary queue's head and suppresses
// primary-helping until it completes; ClassPrimary runs on the primary
// queue in FIFO order; ClassSecondary is load-balanced across secondary
// queues, with the primary executor opportunistically helping the busiest
// one when idle and no Priority task is in flight.
//
// Blocking children: a task may call BlockingTaskCreate to spawn a child
// and suspend until the child finishes, substituting the child in its
// place on the ready queue in the meantime.
//
// Remote tasks: RemoteTaskCreate hands a message to an external Transport
// over the board's message queue and, for blocking calls, suspends until
// the sequencer observes the response and reinserts the caller.
//
// # Thread Safety
//
// Every exported function accepts the board explicitly; there is no
// process-global board. TaskCreate, BlockingTaskCreate, and RemoteTaskCreate
// are safe to call concurrently from multiple executors and from outside
// the board's own goroutines.
package tboard
