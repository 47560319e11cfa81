package core

import (
	"testing"
	"time"
)

func idTask(id uint64) *Task {
	return &Task{id: id, secondaryIndex: -1}
}

// TestReadyQueue_FIFO verifies PushTail/Pop preserves insertion order.
func TestReadyQueue_FIFO(t *testing.T) {
	q := NewReadyQueue()
	q.PushTail(idTask(1))
	q.PushTail(idTask(2))
	q.PushTail(idTask(3))

	want := []uint64{1, 2, 3}
	for i, w := range want {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop() step %d: empty, want id %d", i, w)
		}
		if got.id != w {
			t.Errorf("Pop() step %d = id %d, want %d", i, got.id, w)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Error("Pop() on drained queue = ok, want empty")
	}
}

// TestReadyQueue_PushHead verifies head insertion jumps ahead of the tail.
func TestReadyQueue_PushHead(t *testing.T) {
	q := NewReadyQueue()
	q.PushTail(idTask(1))
	q.PushTail(idTask(2))
	q.PushHead(idTask(99))

	got, _ := q.Pop()
	if got.id != 99 {
		t.Fatalf("Pop() after PushHead = id %d, want 99", got.id)
	}
	got, _ = q.Pop()
	if got.id != 1 {
		t.Errorf("Pop() = id %d, want 1", got.id)
	}
}

// TestReadyQueue_StealTail verifies StealTail takes from the back, leaving
// the FIFO head untouched for the queue's own executor.
func TestReadyQueue_StealTail(t *testing.T) {
	q := NewReadyQueue()
	q.PushTail(idTask(1))
	q.PushTail(idTask(2))
	q.PushTail(idTask(3))

	stolen, ok := q.StealTail()
	if !ok || stolen.id != 3 {
		t.Fatalf("StealTail() = %v, %v, want id 3, true", stolen, ok)
	}
	if q.Len() != 2 {
		t.Fatalf("Len() after StealTail = %d, want 2", q.Len())
	}
	head, _ := q.Pop()
	if head.id != 1 {
		t.Errorf("Pop() after StealTail = id %d, want 1", head.id)
	}
}

// TestReadyQueue_PopWait verifies PopWait blocks until a push wakes it, and
// returns false once stop is closed with nothing queued.
func TestReadyQueue_PopWait(t *testing.T) {
	q := NewReadyQueue()
	stop := make(chan struct{})

	resultCh := make(chan *Task, 1)
	go func() {
		t, _ := q.PopWait(stop)
		resultCh <- t
	}()

	time.Sleep(20 * time.Millisecond)
	q.PushTail(idTask(7))

	select {
	case got := <-resultCh:
		if got == nil || got.id != 7 {
			t.Errorf("PopWait() = %v, want id 7", got)
		}
	case <-time.After(time.Second):
		t.Fatal("PopWait() did not wake on push")
	}

	stopResultCh := make(chan bool, 1)
	go func() {
		_, ok := q.PopWait(stop)
		stopResultCh <- ok
	}()
	time.Sleep(20 * time.Millisecond)
	close(stop)

	select {
	case ok := <-stopResultCh:
		if ok {
			t.Error("PopWait() after stop closed = true, want false")
		}
	case <-time.After(time.Second):
		t.Fatal("PopWait() did not wake on stop")
	}
}

// TestReadyQueue_Clear verifies Clear empties the queue and returns its
// former contents.
func TestReadyQueue_Clear(t *testing.T) {
	q := NewReadyQueue()
	q.PushTail(idTask(1))
	q.PushTail(idTask(2))

	drained := q.Clear()
	if len(drained) != 2 {
		t.Fatalf("Clear() returned %d tasks, want 2", len(drained))
	}
	if !q.IsEmpty() {
		t.Error("IsEmpty() after Clear() = false, want true")
	}
}
