package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/mtduke71/huginn/pkg/board"
)

// PV represents the principal variation found for some completed iterative
// deepening depth, plus the statistics needed to emit a UCI info line.
type PV struct {
	Depth int           // depth of search
	Moves []board.Move  // principal variation, root move first
	Score board.Score   // evaluation at depth, from the root side to move's perspective
	Nodes uint64        // interior/leaf nodes searched
	Time  time.Duration // time taken by the search at this depth
	Hash  float64       // transposition table used [0;1]
}

func (p PV) String() string {
	var sb strings.Builder
	for i, m := range p.Moves {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(m.String())
	}
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v", p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), sb.String())
}

// ExtractPV follows the best-move chain stored in tt from pos, up to depth
// plies or until a stored move is missing, illegal, or would revisit an
// already-seen hash (a cycle). pos is walked with Make/Unmake and restored
// to its original state before returning.
func ExtractPV(pos *board.Position, tt TranspositionTable, depth int) []board.Move {
	var moves []board.Move
	seen := map[board.ZobristHash]bool{}
	count := 0

	for count < depth {
		h := pos.Hash()
		if seen[h] {
			break
		}
		seen[h] = true

		e, ok := tt.Probe(h)
		if !ok || e.Move.IsNull() {
			break
		}
		if !pos.Make(e.Move) {
			break
		}
		moves = append(moves, e.Move)
		count++
	}
	for range moves {
		pos.Unmake()
	}
	return moves
}
