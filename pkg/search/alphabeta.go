package search

import (
	"context"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Null-move pruning parameters: at depth >= nullMoveMinDepth, with
// non-pawn material on the board and not in check, try passing the move
// and re-searching at a reduced depth. If the opponent still cannot avoid
// beta, the position is assumed to be good enough to fail high on without
// examining any real move. Skipped in king-and-pawn endings, where
// zugzwang makes the null-move assumption unsound.
const (
	nullMoveMinDepth  = 4
	nullMoveReduction = 2
)

// checkExtension searches one ply deeper when the side to move is in
// check, so forcing sequences are not cut short by the horizon.
const checkExtension = 1

// pollInterval bounds how often the node loop checks ctx for cancellation;
// checking every node would make deep searches needlessly slow.
const pollInterval = 2047

// AlphaBeta implements negamax alpha-beta search with a transposition
// table, null-move pruning, check extension and MVV-LVA/killer/history
// move ordering. The principal variation is not tracked during the
// recursion; it is reconstructed afterward from the transposition table
// via ExtractPV. If the table yields no moves, the PV holds only the root's
// best move.
type AlphaBeta struct {
	Eval QuietSearch
}

func (a AlphaBeta) Search(ctx context.Context, sctx *Context, pos *board.Position, depth int) (uint64, board.Score, []board.Move, error) {
	run := &runAlphaBeta{
		eval:    quietOrDefault(a.Eval),
		tt:      sctx.TT,
		killers: sctx.Killers,
		history: sctx.History,
		pos:     pos,
	}

	score := run.search(ctx, depth, 0, sctx.Alpha, sctx.Beta, true, true)
	sctx.FailHighCount += run.failHigh
	sctx.FailHighFirstCount += run.failHighFirst
	sctx.NullCutCount += run.nullCut
	if contextx.IsCancelled(ctx) {
		return run.nodes, 0, nil, ErrHalted
	}

	pv := ExtractPV(pos, sctx.TT, depth)
	if len(pv) == 0 && !run.rootBest.IsNull() {
		pv = []board.Move{run.rootBest}
	}
	return run.nodes, score, pv, nil
}

func quietOrDefault(q QuietSearch) QuietSearch {
	if q == nil {
		return Quiescence{}
	}
	return q
}

type runAlphaBeta struct {
	eval    QuietSearch
	tt      TranspositionTable
	killers *Killers
	history *History
	pos     *board.Position
	nodes   uint64

	rootBest board.Move

	failHigh      uint64
	failHighFirst uint64
	nullCut       uint64
}

// search returns the score of pos from the side to move's perspective, a
// negamax formulation of alpha-beta pruning over [alpha, beta].
func (m *runAlphaBeta) search(ctx context.Context, depth, ply int, alpha, beta board.Score, allowNull, isRoot bool) board.Score {
	if m.nodes&pollInterval == 0 && contextx.IsCancelled(ctx) {
		return board.DrawScore
	}
	if !isRoot && (m.pos.IsFiftyMoveDraw() || m.pos.IsInsufficientMaterial() || m.pos.IsThreefold()) {
		return board.DrawScore
	}

	inCheck := m.pos.IsInCheck()
	if inCheck {
		depth += checkExtension
	}

	if depth <= 0 {
		nodes, score := m.eval.QuietSearch(ctx, m.pos, ply, alpha, beta)
		m.nodes += nodes
		return score
	}
	m.nodes++

	hash := m.pos.Hash()
	var ttMove board.Move
	if e, ok := m.tt.Probe(hash); ok {
		ttMove = e.Move
		if e.Depth >= depth {
			score := fromTT(e.Score, ply)
			switch e.Bound {
			case ExactBound:
				return score
			case LowerBound:
				if score > alpha {
					alpha = score
				}
			case UpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	}

	if allowNull && !isRoot && !inCheck && depth >= nullMoveMinDepth && eval.HasNonPawnMaterial(m.pos, m.pos.SideToMove()) {
		m.pos.MakeNull()
		score := -m.search(ctx, depth-1-nullMoveReduction, ply+1, -beta, -beta+1, false, false)
		m.pos.UnmakeNull()
		if score >= beta {
			m.nullCut++
			return beta
		}
	}

	var list board.MoveList
	m.pos.GeneratePseudoLegal(&list)
	ScoreMoves(m.pos, &list, ttMove, ply, m.killers, m.history)

	bound := UpperBound
	best := board.Move{}
	legal := 0

	for i := 0; i < list.Count; i++ {
		mv := PickBest(&list, i)
		if !m.pos.Make(mv) {
			continue
		}
		legal++

		score := -m.search(ctx, depth-1, ply+1, -beta, -alpha, true, false)
		m.pos.Unmake()

		if score > alpha {
			alpha = score
			best = mv
			bound = ExactBound
		}
		if alpha >= beta {
			bound = LowerBound
			m.failHigh++
			if legal == 1 {
				m.failHighFirst++
			}
			if !mv.Flags.Has(board.Capture) {
				m.killers.Store(ply, mv)
				m.history.Bump(m.pos.SideToMove(), m.pos.At(mv.From).TypeOf(), mv.To, depth)
			}
			break
		}
	}

	if legal == 0 {
		if inCheck {
			return -board.Mate + board.Score(ply)
		}
		return board.DrawScore
	}

	if isRoot {
		m.rootBest = best
	}
	m.tt.Store(Entry{Hash: hash, Move: best, Score: toTT(alpha, ply), Depth: depth, Bound: bound})
	return alpha
}

// toTT and fromTT translate mate scores between "distance from the root"
// (used during search) and "distance from the current node" (used in
// storage), so a mate score probed at a different ply than it was stored
// still reports the correct distance to mate.
func toTT(score board.Score, ply int) board.Score {
	switch {
	case score.IsMateScore() && score > 0:
		return score + board.Score(ply)
	case score.IsMateScore() && score < 0:
		return score - board.Score(ply)
	default:
		return score
	}
}

func fromTT(score board.Score, ply int) board.Score {
	switch {
	case score.IsMateScore() && score > 0:
		return score - board.Score(ply)
	case score.IsMateScore() && score < 0:
		return score + board.Score(ply)
	default:
		return score
	}
}
