package core

import (
	"context"
	"testing"
	"time"
)

// TestTaskCreateWithErr_Sentinels verifies the sentinel returned for each of
// TaskCreateWithErr's failure modes.
func TestTaskCreateWithErr_Sentinels(t *testing.T) {
	noop := FuncRef{Name: "noop", Fn: func(ctx context.Context) {}}

	if ok, err := TaskCreateWithErr(nil, noop, ClassSecondary, nil); ok || err != ErrBoardNil {
		t.Errorf("nil board: ok=%v err=%v, want false, %v", ok, err, ErrBoardNil)
	}

	board := BoardCreate(1)
	board.concurrent.Store(MaxTasks)
	if ok, err := TaskCreateWithErr(board, noop, ClassSecondary, nil); ok || err != ErrAdmissionDenied {
		t.Errorf("at MaxTasks: ok=%v err=%v, want false, %v", ok, err, ErrAdmissionDenied)
	}
}

// TestBlockingTaskCreateWithErr_NotInTask verifies ErrNotInTask is returned
// when called with a context carrying no current task.
func TestBlockingTaskCreateWithErr_NotInTask(t *testing.T) {
	board := BoardCreate(1)
	childFn := FuncRef{Name: "child", Fn: func(ctx context.Context) {}}

	ok, err := BlockingTaskCreateWithErr(context.Background(), board, childFn, ClassSecondary, nil)
	if ok || err != ErrNotInTask {
		t.Errorf("ok=%v err=%v, want false, %v", ok, err, ErrNotInTask)
	}
}

// TestRemoteTaskCreateWithErr_NotInTask verifies ErrNotInTask is returned
// when called with a context carrying no current task.
func TestRemoteTaskCreateWithErr_NotInTask(t *testing.T) {
	board := BoardCreate(1)

	data, ok, err := RemoteTaskCreateWithErr(context.Background(), board, "ping", nil, true)
	if data != nil || ok || err != ErrNotInTask {
		t.Errorf("data=%v ok=%v err=%v, want nil, false, %v", data, ok, err, ErrNotInTask)
	}
}

// TestTaskYieldWithErr_NotInTask verifies ErrNotInTask is returned instead
// of silently no-op'ing.
func TestTaskYieldWithErr_NotInTask(t *testing.T) {
	if err := TaskYieldWithErr(context.Background()); err != ErrNotInTask {
		t.Errorf("TaskYieldWithErr() = %v, want %v", err, ErrNotInTask)
	}
}

// TestTaskGetArgsWithErr_NotInTask verifies ErrNotInTask is returned instead
// of a bare nil.
func TestTaskGetArgsWithErr_NotInTask(t *testing.T) {
	v, err := TaskGetArgsWithErr(context.Background())
	if v != nil || err != ErrNotInTask {
		t.Errorf("TaskGetArgsWithErr() = %v, %v, want nil, %v", v, err, ErrNotInTask)
	}
}

// TestDestroyWithErr_NilBoard verifies DestroyWithErr reports ErrBoardNil
// rather than panicking on a nil receiver.
func TestDestroyWithErr_NilBoard(t *testing.T) {
	var board *Board
	if err := board.DestroyWithErr(); err != ErrBoardNil {
		t.Errorf("DestroyWithErr() on nil board = %v, want %v", err, ErrBoardNil)
	}
}

// TestTaskCreateWithErr_SuccessThenUsable is a smoke test that a successful
// WithErr call behaves identically to its bool counterpart end to end.
func TestTaskCreateWithErr_SuccessThenUsable(t *testing.T) {
	board := BoardCreate(1)
	board.Start(context.Background())
	defer func() {
		board.Kill()
		board.Destroy()
	}()

	done := make(chan struct{})
	ok, err := TaskCreateWithErr(board, FuncRef{Name: "ok-task", Fn: func(ctx context.Context) {
		close(done)
	}}, ClassSecondary, nil)
	if !ok || err != nil {
		t.Fatalf("TaskCreateWithErr() = %v, %v, want true, nil", ok, err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task created via TaskCreateWithErr never ran")
	}
}
