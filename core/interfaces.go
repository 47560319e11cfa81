package core

import (
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling task panics
// =============================================================================

// PanicHandler is called when a task's function panics during execution.
// Implementations should be thread-safe as they may be called concurrently
// by the primary and any secondary executor.
type PanicHandler interface {
	HandlePanic(taskName string, class TaskClass, executorIndex int, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler prints panic information to stdout.
type DefaultPanicHandler struct{}

func (h *DefaultPanicHandler) HandlePanic(taskName string, class TaskClass, executorIndex int, panicInfo any, stackTrace []byte) {
	fmt.Printf("[executor %d, class %s] task %q panicked: %v\n%s",
		executorIndex, class, taskName, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting task-board execution
// metrics. All methods should be non-blocking and fast.
type Metrics interface {
	// RecordTaskDuration records how long a task's single resume took.
	RecordTaskDuration(class TaskClass, duration time.Duration)
	// RecordTaskPanic records that a task panicked during execution.
	RecordTaskPanic(taskName string)
	// RecordQueueDepth records a ready queue's current depth.
	RecordQueueDepth(queueName string, depth int)
	// RecordTaskRejected records an admission-denied TaskCreate.
	RecordTaskRejected(reason string)
	// RecordConcurrent records the board's current concurrent-task count.
	RecordConcurrent(count int)
	// RecordRemoteRoundTrip records a completed remote-task round trip.
	RecordRemoteRoundTrip(blocking bool, duration time.Duration)
}

// NilMetrics is a no-op Metrics implementation; the default.
type NilMetrics struct{}

func (m *NilMetrics) RecordTaskDuration(class TaskClass, duration time.Duration)  {}
func (m *NilMetrics) RecordTaskPanic(taskName string)                            {}
func (m *NilMetrics) RecordQueueDepth(queueName string, depth int)               {}
func (m *NilMetrics) RecordTaskRejected(reason string)                           {}
func (m *NilMetrics) RecordConcurrent(count int)                                 {}
func (m *NilMetrics) RecordRemoteRoundTrip(blocking bool, duration time.Duration) {}

// =============================================================================
// RejectedTaskHandler: Interface for handling rejected tasks
// =============================================================================

// RejectedTaskHandler is called when TaskCreate is denied admission.
type RejectedTaskHandler interface {
	HandleRejectedTask(reason string)
}

// DefaultRejectedTaskHandler logs rejected tasks to stdout.
type DefaultRejectedTaskHandler struct{}

func (h *DefaultRejectedTaskHandler) HandleRejectedTask(reason string) {
	fmt.Printf("task rejected: %s\n", reason)
}

// =============================================================================
// BoardConfig: Configuration for Board
// =============================================================================

// BoardConfig holds configuration options for a Board. All handlers are
// optional; defaults are filled in by DefaultBoardConfig.
type BoardConfig struct {
	Logger               Logger
	PanicHandler         PanicHandler
	Metrics              Metrics
	RejectedTaskHandler  RejectedTaskHandler
	RetryPolicy          RetryPolicy

	// ReinsertAtHead selects head (true, default) or tail (false) placement
	// when a yielded task is returned to its class queue. A yielded Primary
	// task goes to the tail regardless while any Priority task is in flight.
	ReinsertAtHead bool

	// SignalPrimaryOnSecondaryInsert, when true (default), additionally
	// signals the primary executor's condvar whenever a task is placed on a
	// secondary queue, so an idle primary wakes promptly to consider helping.
	SignalPrimaryOnSecondaryInsert bool

	// PrimaryHelpingEnabled, when true (default), lets the primary executor
	// steal work from the secondary with the longest backlog whenever its
	// own queue is empty and no Priority task is in flight.
	PrimaryHelpingEnabled bool
}

// DefaultBoardConfig returns a config with default handlers and policy.
func DefaultBoardConfig() *BoardConfig {
	return &BoardConfig{
		Logger:                         NewDefaultLogger(),
		PanicHandler:                   &DefaultPanicHandler{},
		Metrics:                        &NilMetrics{},
		RejectedTaskHandler:            &DefaultRejectedTaskHandler{},
		RetryPolicy:                    DefaultRetryPolicy(),
		ReinsertAtHead:                 defaultReinsertAtHead,
		SignalPrimaryOnSecondaryInsert: defaultSignalPrimaryOnSecondaryInsert,
		PrimaryHelpingEnabled:          true,
	}
}

// BoardOption mutates a BoardConfig; passed to BoardCreate.
type BoardOption func(*BoardConfig)

func WithLogger(l Logger) BoardOption { return func(c *BoardConfig) { c.Logger = l } }

func WithMetrics(m Metrics) BoardOption { return func(c *BoardConfig) { c.Metrics = m } }

func WithPanicHandler(h PanicHandler) BoardOption {
	return func(c *BoardConfig) { c.PanicHandler = h }
}

func WithRejectedTaskHandler(h RejectedTaskHandler) BoardOption {
	return func(c *BoardConfig) { c.RejectedTaskHandler = h }
}

func WithRetryPolicy(p RetryPolicy) BoardOption {
	return func(c *BoardConfig) { c.RetryPolicy = p }
}

func WithReinsertAtTail() BoardOption {
	return func(c *BoardConfig) { c.ReinsertAtHead = false }
}

func WithPrimaryHelpingDisabled() BoardOption {
	return func(c *BoardConfig) { c.PrimaryHelpingEnabled = false }
}
