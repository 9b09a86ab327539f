package search

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/seekerror/logw"
)

// Bound represents the kind of a -- possibly inexact -- stored search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// Entry is a transposition table record: the position hash that produced
// it, the best (or refuting) move found, its score, the depth it was
// searched to, the kind of bound it represents, and the search generation
// it belongs to.
type Entry struct {
	Hash  board.ZobristHash
	Move  board.Move
	Score board.Score
	Depth int
	Bound Bound
	Age   uint16
}

// TranspositionTable caches search results keyed by position hash. No
// thread-safety is required or provided -- the engine searches
// single-threaded, per its cooperative concurrency model.
type TranspositionTable interface {
	// Probe returns the stored entry for hash, if present.
	Probe(hash board.ZobristHash) (Entry, bool)
	// Store records an entry, subject to the replacement policy.
	Store(e Entry)
	// NewSearch bumps the current generation, making every previously
	// stored entry eligible for replacement regardless of depth.
	NewSearch()
	// Clear wipes every entry.
	Clear()

	Size() uint64
	Used() float64
}

type table struct {
	entries []Entry
	occupied []bool
	mask    uint64
	used    uint64
	age     uint16
}

// TranspositionTableFactory builds a TranspositionTable of the given size in
// bytes, letting the engine swap in alternate table implementations (e.g.
// NoTranspositionTable) without changing call sites.
type TranspositionTableFactory func(ctx context.Context, sizeBytes uint64) TranspositionTable

// NewTranspositionTable allocates a table sized to the largest power of two
// entry count that fits within sizeBytes.
func NewTranspositionTable(ctx context.Context, sizeBytes uint64) TranspositionTable {
	const entrySize = 32
	n := uint64(1)
	if sizeBytes >= entrySize {
		shift := bits.Len64(sizeBytes/entrySize) - 1
		n = uint64(1) << shift
	}

	logw.Infof(ctx, "allocating %vMB transposition table with %v entries", sizeBytes>>20, n)

	return &table{
		entries:  make([]Entry, n),
		occupied: make([]bool, n),
		mask:     n - 1,
	}
}

func (t *table) index(hash board.ZobristHash) uint64 {
	return uint64(hash) & t.mask
}

func (t *table) Probe(hash board.ZobristHash) (Entry, bool) {
	idx := t.index(hash)
	if t.occupied[idx] && t.entries[idx].Hash == hash {
		return t.entries[idx], true
	}
	return Entry{}, false
}

// Store applies the replacement policy: overwrite if the incoming entry is
// searched at least as deep as what's stored, or the stored entry belongs
// to a stale generation.
func (t *table) Store(e Entry) {
	idx := t.index(e.Hash)
	e.Age = t.age

	if !t.occupied[idx] {
		t.entries[idx] = e
		t.occupied[idx] = true
		t.used++
		return
	}

	existing := t.entries[idx]
	if existing.Age != t.age || e.Depth >= existing.Depth {
		t.entries[idx] = e
	}
}

func (t *table) NewSearch() {
	t.age++
}

func (t *table) Clear() {
	for i := range t.entries {
		t.occupied[i] = false
	}
	t.used = 0
}

func (t *table) Size() uint64 {
	return uint64(len(t.entries)) * 32
}

func (t *table) Used() float64 {
	return float64(t.used) / float64(len(t.entries))
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// NoTranspositionTable is a Nop implementation, useful for benchmarking
// search without TT-driven cutoffs.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Probe(board.ZobristHash) (Entry, bool) { return Entry{}, false }
func (NoTranspositionTable) Store(Entry)                           {}
func (NoTranspositionTable) NewSearch()                            {}
func (NoTranspositionTable) Clear()                                {}
func (NoTranspositionTable) Size() uint64                          { return 0 }
func (NoTranspositionTable) Used() float64                         { return 0 }
