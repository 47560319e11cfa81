package core

import "context"

// Transport is the external collaborator for the remote-task protocol: an
// actor that drains the board's outbound message queue and deposits
// responses on the inbound queue. The core package never imports a
// concrete Transport; one is only needed to exercise the remote-task
// protocol end to end, which is why this package ships FakeTransport below
// as a reference implementation, the same way observability/prometheus
// ships a reference Metrics implementation rather than leaving Metrics
// purely abstract.
type Transport interface {
	// Run drains outbound messages and posts responses until ctx is done or
	// board shuts down. It should return promptly once either happens.
	Run(ctx context.Context, board *Board)
}

// Handler answers one remote request, given its message and request
// payload, returning the response payload to deliver.
type Handler func(message string, request []byte) []byte

// FakeTransport pairs the remote-task protocol with a hand-rolled
// responder goroutine for tests, in the spirit of a C test harness driving
// the same protocol with a responder thread. It answers every outbound
// message with Handle, synchronously, then posts the response to the
// inbound queue.
type FakeTransport struct {
	Handle Handler
}

// NewFakeTransport creates a transport that answers every request with fn.
func NewFakeTransport(fn Handler) *FakeTransport {
	return &FakeTransport{Handle: fn}
}

// Run implements Transport.
func (t *FakeTransport) Run(ctx context.Context, board *Board) {
	stop := board.shutdownCh()
	for {
		rt, ok := board.messages.WaitOutbound(stop)
		if !ok {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}

		response := t.Handle(rt.Message, rt.Data)
		if rt.Data != nil && response != nil && len(response) <= len(rt.Data) {
			// caller-owned buffer: write in place
			copy(rt.Data, response)
			rt.Data = rt.Data[:len(response)]
		} else {
			rt.Data = response
		}
		rt.Status = RTaskRecv

		// Both blocking and non-blocking requests flow through the inbound
		// queue; the sequencer is what distinguishes them, reinserting the
		// caller only for blocking records.
		board.messages.Respond(rt)
	}
}
