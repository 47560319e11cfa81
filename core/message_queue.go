package core

import "sync"

// MessageQueue is the remote-task round trip's pair of FIFOs: outbound
// (requests) and inbound (responses) sharing one mutex and one condition
// variable, shaped the same way as the mutex-guarded slice queues in
// core/queue.go but two-sided.
type MessageQueue struct {
	mu   sync.Mutex
	cond *sync.Cond
	out  []*RemoteTask
	in   []*RemoteTask
}

// NewMessageQueue creates an empty outbound/inbound message queue pair.
func NewMessageQueue() *MessageQueue {
	mq := &MessageQueue{}
	mq.cond = sync.NewCond(&mq.mu)
	return mq
}

// Send enqueues a remote task onto the outbound queue, for the transport to
// consume, and signals the shared condvar.
func (m *MessageQueue) Send(rt *RemoteTask) {
	m.mu.Lock()
	m.out = append(m.out, rt)
	m.cond.Broadcast()
	m.mu.Unlock()
}

// Respond enqueues a remote task onto the inbound queue, for the sequencer
// to consume, and signals the shared condvar. Called by the transport once
// it has filled in the response.
func (m *MessageQueue) Respond(rt *RemoteTask) {
	m.mu.Lock()
	m.in = append(m.in, rt)
	m.cond.Broadcast()
	m.mu.Unlock()
}

// DrainInbound removes and returns every currently-queued inbound response,
// for the sequencer.
func (m *MessageQueue) DrainInbound() []*RemoteTask {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.in) == 0 {
		return nil
	}
	drained := m.in
	m.in = nil
	return drained
}

// WaitOutbound blocks until an outbound message is available or stop is
// closed. A transport is expected to acquire the message mutex implicitly
// by calling this, dequeue-wait on the message condvar, then release the
// mutex during its own remote I/O.
func (m *MessageQueue) WaitOutbound(stop <-chan struct{}) (*RemoteTask, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if isClosed(stop) {
		return nil, false
	}

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-stop:
			m.cond.Broadcast()
		case <-watchDone:
		}
	}()

	for len(m.out) == 0 {
		if isClosed(stop) {
			return nil, false
		}
		m.cond.Wait()
	}

	rt := m.out[0]
	m.out[0] = nil
	m.out = m.out[1:]
	return rt, true
}

// Broadcast wakes every waiter on the shared condvar; used on board
// destruction so the transport wakes and observes termination.
func (m *MessageQueue) Broadcast() {
	m.mu.Lock()
	m.cond.Broadcast()
	m.mu.Unlock()
}

func (m *MessageQueue) queueLens() (outbound, inbound int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.out), len(m.in)
}

// Drain clears both queues, returning their contents, used by Destroy.
func (m *MessageQueue) Drain() (outbound, inbound []*RemoteTask) {
	m.mu.Lock()
	defer m.mu.Unlock()
	outbound, inbound = m.out, m.in
	m.out, m.in = nil, nil
	return
}
