package sim

import (
	"errors"
	"fmt"
	"strings"

	"github.com/endurer-sim/endurer/sim/trace"
)

// ExtraWritesPerRemap models the per-page cost of copying data during a remap.
const ExtraWritesPerRemap uint64 = 1

// DefaultSeed is the fixed seed for remap offset generation.
const DefaultSeed int64 = 8

// DefaultProgressInterval is the number of iterations between progress log lines.
const DefaultProgressInterval uint64 = 5

// GiB is the reference capacity all capacity-normalized metrics are scaled to.
const GiB uint64 = 1 << 30

// ErrInvalidConfig is wrapped by every configuration error returned from this package.
var ErrInvalidConfig = errors.New("invalid config")

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Mode selects how remaps are triggered.
type Mode int

const (
	// ModeWrite remaps when any page's writes since the last remap reach the remap period.
	ModeWrite Mode = iota
	// ModeTime remaps when accumulated input time reaches the remap period.
	ModeTime
	// ModeLifetime never remaps; it estimates lifetime under the hottest page.
	ModeLifetime
)

var modeNames = map[Mode]string{
	ModeWrite:    "write",
	ModeTime:     "time",
	ModeLifetime: "lifetime",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps "write", "time" or "lifetime" (case-insensitive) to a Mode.
func ParseMode(s string) (Mode, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == lower {
			return m, nil
		}
	}
	return 0, invalidConfig("mode must be either 'time', 'write', or 'lifetime', got %q", s)
}

// Config holds validated simulation parameters.
type Config struct {
	Mode               Mode
	PageSize           uint64  // bytes per page (must be > 0)
	CellWriteEndurance uint64  // writes a cell tolerates before wear-out (must be > 0)
	RemapPeriod        float64 // write count (write mode) or input time (time mode); unused in lifetime mode
	Seed               int64   // remap offset RNG seed

	ProgressInterval uint64 // iterations between progress logs (0 = off)
	MaxIterations    uint64 // safety cap on passes (0 = unlimited)

	TraceLevel trace.TraceLevel
}

// NewConfig returns a Config with the default seed, progress interval and trace level.
func NewConfig(mode Mode, pageSize, endurance uint64, remapPeriod float64) Config {
	return Config{
		Mode:               mode,
		PageSize:           pageSize,
		CellWriteEndurance: endurance,
		RemapPeriod:        remapPeriod,
		Seed:               DefaultSeed,
		ProgressInterval:   DefaultProgressInterval,
		TraceLevel:         trace.TraceLevelNone,
	}
}

// Validate checks parameters that do not depend on the loaded write sets.
func (c *Config) Validate() error {
	if _, ok := modeNames[c.Mode]; !ok {
		return invalidConfig("unknown mode %d", int(c.Mode))
	}
	if c.PageSize == 0 {
		return invalidConfig("page size must be > 0")
	}
	if c.CellWriteEndurance == 0 {
		return invalidConfig("cell write endurance must be > 0")
	}
	if c.Mode != ModeLifetime && !(c.RemapPeriod > 0) {
		return invalidConfig("remap period must be > 0 in %s mode, got %v", c.Mode, c.RemapPeriod)
	}
	if !trace.IsValidTraceLevel(string(c.TraceLevel)) {
		return invalidConfig("unknown trace level %q", c.TraceLevel)
	}
	return nil
}
