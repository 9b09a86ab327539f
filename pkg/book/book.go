// Package book implements a Polyglot opening book: a sorted table of
// (position key, move, weight) records probed by key to suggest a move
// before the search is invoked.
package book

import (
	"math/rand"
	"sort"

	"github.com/mtduke71/huginn/pkg/board"
)

// Book is an in-memory Polyglot opening book, kept sorted by Key so Probe
// can binary-search it the way the on-disk format is laid out.
type Book struct {
	entries []Entry
}

// New wraps entries into a Book, sorting by key if not already sorted. A nil
// or empty slice yields a usable, always-missing Book.
func New(entries []Entry) *Book {
	b := &Book{entries: entries}
	if !sort.SliceIsSorted(b.entries, func(i, j int) bool { return b.entries[i].Key < b.entries[j].Key }) {
		sort.Slice(b.entries, func(i, j int) bool { return b.entries[i].Key < b.entries[j].Key })
	}
	return b
}

// Clear discards the in-memory book, turning every future Probe into a miss.
func (b *Book) Clear() {
	if b != nil {
		b.entries = nil
	}
}

// Len returns the number of records currently loaded.
func (b *Book) Len() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}

// Probe looks up pos by its Polyglot key, and if one or more matching
// records exist, samples a move weighted by each record's weight, verifies
// it against the position's legal moves (a raw Polyglot move carries no
// capture/castle/en-passant flags), and returns the fully resolved legal
// Move. Returns false if the position is not in the book, or if every
// candidate move fails legality verification (a stale or foreign book).
func (b *Book) Probe(pos *board.Position, rng *rand.Rand) (board.Move, bool) {
	if b == nil || len(b.entries) == 0 {
		return board.Move{}, false
	}

	key := Key(pos)
	lo := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Key >= key })
	hi := lo
	for hi < len(b.entries) && b.entries[hi].Key == key {
		hi++
	}
	group := b.entries[lo:hi]
	if len(group) == 0 {
		return board.Move{}, false
	}

	var list board.MoveList
	pos.GenerateLegal(&list)

	order := sampleOrder(group, rng)
	for _, idx := range order {
		candidate := decodeMove(group[idx].Move)
		if m, ok := matchLegal(&list, candidate); ok {
			return m, true
		}
	}
	return board.Move{}, false
}

// sampleOrder returns indices into group in the order they should be tried:
// a single weighted draw for the first pick, then the remainder by
// descending weight, so a book move that fails legality verification (move
// coding drift between book and position) falls back sensibly instead of
// probing going silently empty.
func sampleOrder(group []Entry, rng *rand.Rand) []int {
	idx := make([]int, len(group))
	for i := range idx {
		idx[i] = i
	}

	total := 0
	for _, e := range group {
		total += int(e.Weight)
	}
	if total == 0 || rng == nil {
		sort.Slice(idx, func(i, j int) bool { return group[idx[i]].Weight > group[idx[j]].Weight })
		return idx
	}

	target := rng.Intn(total)
	cum := 0
	pick := 0
	for i, e := range group {
		cum += int(e.Weight)
		if target < cum {
			pick = i
			break
		}
	}

	sort.Slice(idx, func(i, j int) bool { return group[idx[i]].Weight > group[idx[j]].Weight })
	ordered := make([]int, 0, len(idx))
	ordered = append(ordered, pick)
	for _, i := range idx {
		if i != pick {
			ordered = append(ordered, i)
		}
	}
	return ordered
}

// matchLegal finds the generated legal move matching candidate's from/to
// (and promotion, if any), which carries the correct Captured/Flags that a
// decoded Polyglot move lacks.
func matchLegal(list *board.MoveList, candidate board.Move) (board.Move, bool) {
	for i := 0; i < list.Count; i++ {
		m := list.Moves[i]
		if m.Equals(candidate) {
			return m, true
		}
	}
	return board.Move{}, false
}
