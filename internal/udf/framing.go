package udf

import (
	"bytes"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Marker is the 2-byte synchronization pattern that recurs at record
// boundaries in the binary payload.
var Marker = []byte{0x00, 0xFF}

// Framing scan bounds. The marker is assumed to repeat early and regularly;
// capping the scan bounds worst-case cost on pathological inputs. This is a
// documented approximation, not a guarantee.
const (
	FramingScanWindow = 1000 // bytes of payload inspected
	FramingMaxMarkers = 10   // marker positions collected
)

// Framing is the inferred layout of the binary payload: the number of bytes
// preceding the first steady-state record, and the steady-state record size.
// It is a hypothesis; it is never re-validated against the full payload, and
// downstream decoding tolerates a short undecodable tail instead of erroring.
type Framing struct {
	Header int // bytes; equals Record when no distinct leading header exists
	Record int // bytes, modal inter-marker distance
}

// FramingStats summarizes the inter-marker distances behind a marker-scan
// inference, for diagnostics and drift investigations.
type FramingStats struct {
	Markers int   // marker positions found within the scan window
	Deltas  []int // consecutive position deltas, in offset order
	Mean    float64
	StdDev  float64
}

// Strategy infers record framing from payload bytes. MarkerScan is the
// statistical implementation; Fixed pins a known board layout. Framing is
// never silently assumed: best-effort callers fall back to an explicit Fixed
// strategy when MarkerScan fails.
type Strategy interface {
	Frame(payload []byte) (Framing, error)
}

// MarkerScan infers framing from the recurrence of Marker in the payload.
// The steady-state record size is the statistical mode of consecutive
// inter-marker distances; ties break to the smallest value attaining the
// maximum frequency so the inference is deterministic.
type MarkerScan struct {
	// Stats receives scan diagnostics when non-nil.
	Stats *FramingStats
}

// Frame scans at most FramingScanWindow bytes for up to FramingMaxMarkers
// marker positions. Fewer than two occurrences means framing cannot be
// determined and ErrNoFraming is returned.
func (s MarkerScan) Frame(payload []byte) (Framing, error) {
	positions := scanMarkers(payload)
	if len(positions) < 2 {
		return Framing{}, ErrNoFraming
	}

	deltas := make([]int, len(positions)-1)
	for i := 1; i < len(positions); i++ {
		deltas[i-1] = positions[i] - positions[i-1]
	}

	record := modeOf(deltas)

	// A first marker earlier than one full record implies the payload opens
	// with a short header region before the first steady-state record.
	header := record
	if positions[0] < record {
		header = positions[1] - positions[0]
	}

	if s.Stats != nil {
		*s.Stats = deltaStats(positions, deltas)
	}

	return Framing{Header: header, Record: record}, nil
}

// Fixed is a named, explicit framing for a known board variant. It ignores
// the payload entirely.
type Fixed struct {
	Header int
	Record int
}

// Frame returns the pinned framing.
func (f Fixed) Frame([]byte) (Framing, error) {
	return Framing{Header: f.Header, Record: f.Record}, nil
}

func scanMarkers(payload []byte) []int {
	var positions []int
	limit := len(payload) - 1
	if limit > FramingScanWindow {
		limit = FramingScanWindow
	}
	for i := 0; i < limit; i++ {
		if bytes.Equal(payload[i:i+2], Marker) {
			positions = append(positions, i)
			if len(positions) >= FramingMaxMarkers {
				break
			}
		}
	}
	return positions
}

// modeOf returns the most frequent delta; among equally frequent deltas it
// returns the smallest, keeping the inference reproducible.
func modeOf(deltas []int) int {
	counts := make(map[int]int, len(deltas))
	for _, d := range deltas {
		counts[d]++
	}

	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Ints(values)

	best, bestCount := 0, 0
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

func deltaStats(positions, deltas []int) FramingStats {
	fs := FramingStats{
		Markers: len(positions),
		Deltas:  deltas,
	}
	xs := make([]float64, len(deltas))
	for i, d := range deltas {
		xs[i] = float64(d)
	}
	fs.Mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		fs.StdDev = stat.StdDev(xs, nil)
	}
	return fs
}
