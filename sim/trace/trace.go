package trace

// TraceLevel controls the verbosity of remap tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelRemaps captures every remap event.
	TraceLevelRemaps TraceLevel = "remaps"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelRemaps: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects remap records during a simulation.
type SimulationTrace struct {
	Level  TraceLevel
	Remaps []RemapRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	return &SimulationTrace{
		Level:  level,
		Remaps: make([]RemapRecord, 0),
	}
}

// RecordRemap appends a remap record.
func (st *SimulationTrace) RecordRemap(record RemapRecord) {
	st.Remaps = append(st.Remaps, record)
}
