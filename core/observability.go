package core

// BoardStats is a point-in-time snapshot of a board's introspectable state,
// adapted from a PoolStats/RunnerStats-style
// shape, generalized from runner/pool vocabulary to the task board's own
// queues and counters.
type BoardStats struct {
	Concurrent      int
	PrimaryDepth    int
	SecondaryDepths []int
	OutboundDepth   int
	InboundDepth    int
	PriorityInFlight int64
}

// Stats returns a snapshot of the board's current state. Safe to call at
// any time, including concurrently with Kill/Destroy.
func (b *Board) Stats() BoardStats {
	depths := make([]int, len(b.secondaries))
	for i, q := range b.secondaries {
		depths[i] = q.Len()
	}
	outLen, inLen := b.messages.queueLens()
	return BoardStats{
		Concurrent:       b.Concurrent(),
		PrimaryDepth:     b.primary.Len(),
		SecondaryDepths:  depths,
		OutboundDepth:    outLen,
		InboundDepth:     inLen,
		PriorityInFlight: b.priorityInFlight.Load(),
	}
}
