package core

// Compile-time board limits and tuning constants.
const (
	// MaxTasks bounds the number of simultaneously live tasks in the system.
	MaxTasks = 65536

	// MaxSecondaries bounds the number of secondary executors a board may start.
	MaxSecondaries = 10

	// StackSizeHint documents the fixed coroutine stack size a native
	// implementation would reserve. Go goroutine stacks grow dynamically;
	// this has no operational effect.
	StackSizeHint = 57344

	// MaxMsgLength bounds the outgoing message string of a remote task.
	MaxMsgLength = 254
)

// Default placement/helping policy, overridable via BoardOption.
const (
	defaultReinsertAtHead                 = true
	defaultSignalPrimaryOnSecondaryInsert = true
)
