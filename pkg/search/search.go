package search

import (
	"context"
	"errors"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/eval"
)

// ErrHalted is returned by Search when ctx is cancelled before a depth
// completes; the caller should discard the partial result.
var ErrHalted = errors.New("search halted")

// Context carries the state that spans an entire iterative-deepening run:
// the search window, the shared transposition table and move-ordering
// tables, the engine's noise source (not read by AlphaBeta), and the
// move-ordering quality counters accumulated across every depth searched so
// far.
type Context struct {
	Alpha, Beta board.Score
	TT          TranspositionTable
	Killers     *Killers
	History     *History
	Noise       eval.Random
	Ponder      []board.Move

	// FailHighCount counts beta cutoffs on a real move. FailHighFirstCount
	// counts the subset of those where the first legal move tried caused
	// the cutoff -- the fraction of the two is the move-ordering quality
	// metric (a well-ordered search cuts off on the first move the large
	// majority of the time). NullCutCount counts beta cutoffs from
	// null-move pruning, which skip move ordering entirely.
	FailHighCount      uint64
	FailHighFirstCount uint64
	NullCutCount       uint64
}

// Search runs a single fixed-depth search from pos and reports the node
// count, score and principal variation, all from the perspective of the
// side to move at pos.
type Search interface {
	Search(ctx context.Context, sctx *Context, pos *board.Position, depth int) (uint64, board.Score, []board.Move, error)
}

// QuietSearch resolves the horizon of a fixed-depth search by exploring
// captures until the position is quiet, avoiding the horizon effect.
type QuietSearch interface {
	QuietSearch(ctx context.Context, pos *board.Position, ply int, alpha, beta board.Score) (uint64, board.Score)
}
