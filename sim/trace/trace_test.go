package trace

import "testing"

func TestIsValidTraceLevel(t *testing.T) {
	for _, level := range []string{"none", "remaps", ""} {
		if !IsValidTraceLevel(level) {
			t.Errorf("expected %q to be valid", level)
		}
	}
	if IsValidTraceLevel("decisions") {
		t.Error("expected \"decisions\" to be invalid")
	}
}

func TestSimulationTrace_RecordRemap_AppendsInOrder(t *testing.T) {
	// GIVEN a fresh trace
	st := NewSimulationTrace(TraceLevelRemaps)

	// WHEN two remaps are recorded
	st.RecordRemap(RemapRecord{Iteration: 2, Remap: 1})
	st.RecordRemap(RemapRecord{Iteration: 5, Remap: 2})

	// THEN both are kept in recording order
	if len(st.Remaps) != 2 {
		t.Fatalf("expected 2 records, got %d", len(st.Remaps))
	}
	if st.Remaps[0].Remap != 1 || st.Remaps[1].Remap != 2 {
		t.Errorf("records out of order: %+v", st.Remaps)
	}
}
