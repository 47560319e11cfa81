package core

import (
	"context"
	"time"
)

// RemoteTask is the record shipped to the external transport and answered
// asynchronously via a paired response queue. Adapted from the
// task-and-reply plumbing in core/task_and_reply.go: where that wraps a
// background task plus a callback reply posted to another runner, a
// RemoteTask instead carries one message/response pair across the board's
// own message queue to an out-of-process transport.
type RemoteTask struct {
	// Status is RTaskSend while outbound, RTaskRecv once the transport has
	// filled in the response.
	Status int

	// Message is the outgoing request, truncated to MaxMsgLength.
	Message string

	// Data is the response payload. If the caller supplied a non-nil
	// buffer to RemoteTaskCreate and the response fits in it, FakeTransport
	// writes into that same slice in place; otherwise (no buffer, or a
	// response longer than the buffer) Data is replaced by the response
	// slice the transport returned.
	Data []byte

	// Caller is the task that issued the request; non-owning.
	Caller *Task

	// Blocking marks whether the caller is parked awaiting the response
	// (true) or was already reinserted at send time (false).
	Blocking bool

	// sentAt records when the request was enqueued, for round-trip metrics.
	sentAt time.Time
}

const (
	// RTaskSend marks a remote task as outbound, awaiting transport.
	RTaskSend = 1
	// RTaskRecv marks a remote task as answered by the transport.
	RTaskRecv = 0
)

func truncateMessage(s string) string {
	if len(s) > MaxMsgLength {
		return s[:MaxMsgLength]
	}
	return s
}

// RemoteTaskCreate must be called from within a running task (resolved via
// ctx). It builds a RemoteTask, enqueues it on board's outbound message
// queue, and yields the calling task with the appropriate remote reason.
//
// For a blocking call, RemoteTaskCreate does not return until the sequencer
// has reinserted the caller after an inbound response arrives; it then
// returns the response payload and true. For a non-blocking call it returns
// immediately after yielding once (nil, true); the eventual response, if
// any, is discarded by the sequencer with no further rendezvous.
//
// It returns (nil, false) if ctx carries no current task. See
// RemoteTaskCreateWithErr for the error-returning counterpart.
func RemoteTaskCreate(ctx context.Context, board *Board, message string, buf []byte, blocking bool) ([]byte, bool) {
	data, ok, _ := RemoteTaskCreateWithErr(ctx, board, message, buf, blocking)
	return data, ok
}

// RemoteTaskCreateWithErr is RemoteTaskCreate's richer counterpart: it
// reports ErrBoardNil or ErrNotInTask in place of a bare (nil, false).
func RemoteTaskCreateWithErr(ctx context.Context, board *Board, message string, buf []byte, blocking bool) ([]byte, bool, error) {
	if board == nil {
		return nil, false, ErrBoardNil
	}
	task := CurrentTask(ctx)
	if task == nil {
		return nil, false, ErrNotInTask
	}

	rt := &RemoteTask{
		Status:   RTaskSend,
		Message:  truncateMessage(message),
		Data:     buf,
		Caller:   task,
		Blocking: blocking,
		sentAt:   time.Now(),
	}

	task.mu.Lock()
	task.remote = rt
	if blocking {
		task.reason = yieldRemoteBlocking
	} else {
		task.reason = yieldRemoteNonBlocking
	}
	task.mu.Unlock()

	board.messages.Send(rt)

	task.coroutine.Yield()

	if blocking {
		return rt.Data, rt.Status == RTaskRecv, nil
	}
	return nil, true, nil
}
