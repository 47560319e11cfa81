package core

import (
	"math"
	"testing"
	"time"
)

// TestHistory_RecordExec verifies RecordExec creates an entry on first use
// and increments Executions on every subsequent call for the same name.
func TestHistory_RecordExec(t *testing.T) {
	h := NewHistory()

	e1 := h.RecordExec("work")
	if e1.Executions != 1 {
		t.Fatalf("Executions after first RecordExec = %d, want 1", e1.Executions)
	}

	e2 := h.RecordExec("work")
	if e1 != e2 {
		t.Fatal("RecordExec returned different entries for the same name")
	}
	if e2.Executions != 2 {
		t.Errorf("Executions after second RecordExec = %d, want 2", e2.Executions)
	}
}

// TestHistory_RecordCompletion verifies incremental mean computation and
// the completions <= executions invariant.
func TestHistory_RecordCompletion(t *testing.T) {
	h := NewHistory()
	e := h.RecordExec("work")
	h.RecordExec("work") // two executions before any completion

	h.RecordCompletion(e, 100*time.Millisecond, 2)
	h.RecordCompletion(e, 300*time.Millisecond, 4)

	if e.Completions != 2 {
		t.Fatalf("Completions = %d, want 2", e.Completions)
	}
	if e.Completions > e.Executions {
		t.Fatalf("Completions (%d) > Executions (%d)", e.Completions, e.Executions)
	}

	wantMeanT := (0.1 + 0.3) / 2
	if math.Abs(e.MeanT-wantMeanT) > 1e-9 {
		t.Errorf("MeanT = %v, want %v", e.MeanT, wantMeanT)
	}
	wantMeanYield := (2.0 + 4.0) / 2
	if math.Abs(e.MeanYield-wantMeanYield) > 1e-9 {
		t.Errorf("MeanYield = %v, want %v", e.MeanYield, wantMeanYield)
	}
}

// TestHistory_RecordYield verifies yields accumulate independently of
// completions.
func TestHistory_RecordYield(t *testing.T) {
	h := NewHistory()
	e := h.RecordExec("work")

	h.RecordYield(e)
	h.RecordYield(e)
	h.RecordYield(nil) // must be a no-op, not a panic

	if e.Yields != 2 {
		t.Errorf("Yields = %v, want 2", e.Yields)
	}
}

// TestHistory_Destroy verifies Destroy clears every entry.
func TestHistory_Destroy(t *testing.T) {
	h := NewHistory()
	h.RecordExec("work")
	h.Destroy()

	if _, ok := h.FetchExec("work"); ok {
		t.Error("FetchExec() after Destroy found an entry, want none")
	}
	if len(h.Snapshot()) != 0 {
		t.Error("Snapshot() after Destroy is non-empty")
	}
}
