// Package writeset loads recorded write-count histograms from disk.
//
// A histogram file is a flat array of little-endian uint64 counters, one per
// logical page, in page order.
package writeset

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/endurer-sim/endurer/sim"
)

// CounterWidth is the size in bytes of one per-page write counter.
const CounterWidth = 8

// ErrMalformed is wrapped by every error about a histogram's size or contents.
var ErrMalformed = errors.New("malformed write set")

// Decode reads size bytes of counters from r.
func Decode(r io.Reader, size int64) ([]uint64, error) {
	if size < 0 || size%CounterWidth != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of %d", ErrMalformed, size, CounterWidth)
	}
	counts := make([]uint64, size/CounterWidth)
	if len(counts) == 0 {
		return counts, nil
	}
	if err := binary.Read(r, binary.LittleEndian, counts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return counts, nil
}

// Load reads the histogram at path and pairs it with the input time it covers.
func Load(path string, timeUnit float64) (*sim.WriteSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening write set: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat write set %s: %w", path, err)
	}

	counts, err := Decode(bufio.NewReader(f), info.Size())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	logrus.Debugf("loaded %s: %d pages", path, len(counts))
	return sim.NewWriteSet(path, counts, timeUnit), nil
}

// LoadAll loads paths[i] with timeUnits[i]. The two slices must be the same length.
func LoadAll(paths []string, timeUnits []float64) ([]*sim.WriteSet, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: must supply input file(s)", sim.ErrInvalidConfig)
	}
	if len(paths) != len(timeUnits) {
		return nil, fmt.Errorf("%w: must specify an identical number of input files (%d) and input time units (%d)",
			sim.ErrInvalidConfig, len(paths), len(timeUnits))
	}
	sets := make([]*sim.WriteSet, 0, len(paths))
	for i, p := range paths {
		ws, err := Load(p, timeUnits[i])
		if err != nil {
			return nil, err
		}
		sets = append(sets, ws)
	}
	return sets, nil
}

// Write stores counts at path in the histogram format read by Load.
func Write(path string, counts []uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating write set: %w", err)
	}
	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, counts); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
