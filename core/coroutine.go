package core

import (
	"runtime/debug"
	"sync"
)

// CoroutineStatus reflects where a Coroutine is in its lifecycle.
type CoroutineStatus int

const (
	// CoroutineSuspended means the coroutine has not started, or has yielded
	// and is waiting to be resumed.
	CoroutineSuspended CoroutineStatus = iota
	// CoroutineRunning means a Resume call is currently executing the entry
	// function on the coroutine's dedicated goroutine.
	CoroutineRunning
	// CoroutineDead means the entry function returned or panicked.
	CoroutineDead
)

// Coroutine is a minimal stackful-coroutine stand-in built from a dedicated
// goroutine and a pair of unbuffered signal channels. Go has no native
// stackful coroutine primitive, and none of the retrieved example repos
// ships one, so this is original code rather than an adaptation: the entry
// function runs on its own goroutine, parked on resumeCh until Resume is
// called, and Yield hands control back to the resumer by blocking on
// resumeCh after signalling yieldCh.
//
// Unlike a true stackful coroutine, a Coroutine's entry function keeps its
// own goroutine for its entire lifetime rather than being switched onto the
// caller's stack; the handshake below makes that distinction invisible to
// callers, which only ever see synchronous Resume/Yield semantics.
type Coroutine struct {
	mu       sync.Mutex
	status   CoroutineStatus
	started  bool
	resumeCh chan struct{}
	yieldCh  chan struct{}
	entry    func()
	userData any
	panicVal any
	panicStk []byte
}

// NewCoroutine creates a suspended coroutine that will run entry on its own
// goroutine once first resumed. entry should call (*Coroutine).Yield at each
// suspension point; returning from entry terminates the coroutine.
func NewCoroutine(entry func()) *Coroutine {
	return &Coroutine{
		status:   CoroutineSuspended,
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan struct{}),
		entry:    entry,
	}
}

// UserData returns the opaque slot associated with this coroutine.
func (c *Coroutine) UserData() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userData
}

// SetUserData sets the opaque slot associated with this coroutine.
func (c *Coroutine) SetUserData(v any) {
	c.mu.Lock()
	c.userData = v
	c.mu.Unlock()
}

// Status reports the coroutine's current lifecycle state.
func (c *Coroutine) Status() CoroutineStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Resume runs the coroutine until it yields or finishes. It is a no-op if
// the coroutine is already dead. Resume must not be called concurrently
// with another Resume on the same coroutine.
func (c *Coroutine) Resume() {
	c.mu.Lock()
	if c.status == CoroutineDead {
		c.mu.Unlock()
		return
	}
	if !c.started {
		c.started = true
		c.status = CoroutineRunning
		c.mu.Unlock()
		go c.run()
		c.resumeCh <- struct{}{}
		<-c.yieldCh
		return
	}
	c.status = CoroutineRunning
	c.mu.Unlock()

	c.resumeCh <- struct{}{}
	<-c.yieldCh
}

// Yield suspends the calling coroutine, returning control to whoever called
// Resume. Yield must only be called from inside the coroutine's own entry
// function.
func (c *Coroutine) Yield() {
	c.mu.Lock()
	c.status = CoroutineSuspended
	c.mu.Unlock()

	c.yieldCh <- struct{}{}
	<-c.resumeCh
}

// Panic reports the recovered panic value, if the entry function panicked.
func (c *Coroutine) Panic() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panicVal
}

// PanicStack reports the stack trace captured at the moment the entry
// function panicked, if any.
func (c *Coroutine) PanicStack() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panicStk
}

// Destroy releases the coroutine. Since the underlying goroutine terminates
// on its own once entry returns or panics, Destroy is only meaningful as an
// explicit lifecycle marker for callers that track coroutine state; it is
// safe to call multiple times.
func (c *Coroutine) Destroy() {
	c.mu.Lock()
	c.status = CoroutineDead
	c.mu.Unlock()
}

func (c *Coroutine) run() {
	<-c.resumeCh
	defer func() {
		if r := recover(); r != nil {
			c.mu.Lock()
			c.panicVal = r
			c.panicStk = debug.Stack()
			c.status = CoroutineDead
			c.mu.Unlock()
			c.yieldCh <- struct{}{}
			return
		}
		c.mu.Lock()
		c.status = CoroutineDead
		c.mu.Unlock()
		c.yieldCh <- struct{}{}
	}()
	c.entry()
}
