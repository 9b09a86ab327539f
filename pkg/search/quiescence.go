package search

import (
	"context"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Quiescence is the default QuietSearch: a stand-pat evaluation followed by
// a capture-only negamax search, resolving tactical sequences (captures and
// recaptures) so the fixed-depth cutoff never stops mid-exchange.
type Quiescence struct{}

func (q Quiescence) QuietSearch(ctx context.Context, pos *board.Position, ply int, alpha, beta board.Score) (uint64, board.Score) {
	run := &runQuiescence{pos: pos}
	score := run.search(ctx, ply, alpha, beta)
	return run.nodes, score
}

type runQuiescence struct {
	pos   *board.Position
	nodes uint64
}

func (r *runQuiescence) search(ctx context.Context, ply int, alpha, beta board.Score) board.Score {
	if r.nodes&pollInterval == 0 && contextx.IsCancelled(ctx) {
		return board.DrawScore
	}
	if r.pos.IsFiftyMoveDraw() || r.pos.IsInsufficientMaterial() {
		return board.DrawScore
	}
	r.nodes++

	standPat := eval.Evaluate(r.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	var list board.MoveList
	r.pos.GenerateCaptures(&list)
	ScoreCaptures(r.pos, &list)

	for i := 0; i < list.Count; i++ {
		m := PickBest(&list, i)
		if !r.pos.Make(m) {
			continue
		}

		score := -r.search(ctx, ply+1, -beta, -alpha)
		r.pos.Unmake()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
