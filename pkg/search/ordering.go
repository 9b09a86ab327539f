package search

import "github.com/mtduke71/huginn/pkg/board"

// Move-ordering score bands, highest first. A transposition-table move
// dominates everything; then captures ordered by MVV-LVA (plus a promotion
// bonus for capturing promotions); then quiet promotions; then killer
// quiets; then the history heuristic for the rest.
const (
	scoreTTMove     board.Score = 2_000_000
	scoreCapture    board.Score = 1_000_000
	scorePromotion  board.Score = 950_000
	scoreKiller1    board.Score = 900_000
	scoreKiller2    board.Score = 800_000
)

// promotionBonus grades a quiet or capturing promotion by the piece
// promoted to, queen highest, so queen promotions are tried before the rare
// underpromotion. NoPieceType (no promotion) contributes nothing.
func promotionBonus(t board.PieceType) board.Score {
	switch t {
	case board.Queen:
		return 900
	case board.Rook:
		return 500
	case board.Bishop:
		return 330
	case board.Knight:
		return 320
	default:
		return 0
	}
}

// mvvLvaTable[victim][attacker] ranks captures: prefer taking the most
// valuable victim with the least valuable attacker.
var mvvLvaTable [board.NumPieceTypes][board.NumPieceTypes]board.Score

func init() {
	for victim := board.Pawn; victim <= board.King; victim++ {
		for attacker := board.Pawn; attacker <= board.King; attacker++ {
			mvvLvaTable[victim][attacker] = 10*valueRank(victim) - valueRank(attacker)
		}
	}
}

func valueRank(t board.PieceType) board.Score {
	switch t {
	case board.Pawn:
		return 1
	case board.Knight:
		return 2
	case board.Bishop:
		return 3
	case board.Rook:
		return 4
	case board.Queen:
		return 5
	case board.King:
		return 6
	default:
		return 0
	}
}

// MaxPly bounds the killer-move table, matching board.MaxPly.
const MaxPly = board.MaxPly

// Killers holds two killer-move slots per search ply: quiet moves that
// caused a beta cutoff elsewhere at the same ply, tried early as sibling
// moves are likely to repeat the refutation.
type Killers struct {
	moves [MaxPly][2]board.Move
}

// Store records m as the newest killer at ply, shifting the previous
// primary killer into the secondary slot. No-op if m duplicates the
// existing primary killer.
func (k *Killers) Store(ply int, m board.Move) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if k.moves[ply][0].Equals(m) {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *Killers) First(ply int) board.Move {
	if ply < 0 || ply >= MaxPly {
		return board.Move{}
	}
	return k.moves[ply][0]
}

func (k *Killers) Second(ply int) board.Move {
	if ply < 0 || ply >= MaxPly {
		return board.Move{}
	}
	return k.moves[ply][1]
}

func (k *Killers) Clear() {
	*k = Killers{}
}

// History is the history heuristic table, indexed by side to move, piece
// type and destination square: quiet moves that cause a cutoff are bumped
// by depth^2, biasing future move ordering toward moves that have worked
// well regardless of position.
type History struct {
	value [board.NumColors][board.NumPieceTypes][64]int
}

func (h *History) Bump(c board.Color, t board.PieceType, to board.Square, depth int) {
	h.value[c][t][to.Index64()] += depth * depth
}

func (h *History) Value(c board.Color, t board.PieceType, to board.Square) board.Score {
	return board.Score(h.value[c][t][to.Index64()])
}

// Age halves every entry, keeping the table bounded across a long game
// without discarding accumulated ordering information outright.
func (h *History) Age() {
	for c := range h.value {
		for t := range h.value[c] {
			for sq := range h.value[c][t] {
				h.value[c][t][sq] /= 2
			}
		}
	}
}

func (h *History) Clear() {
	*h = History{}
}

// ScoreMoves assigns each move in list an ordering score: the TT move (if
// any) first, then captures by MVV-LVA (capturing promotions add a
// promotion bonus on top), then quiet promotions (queen highest), then
// killers, then history for the remaining quiet moves.
func ScoreMoves(pos *board.Position, list *board.MoveList, ttMove board.Move, ply int, killers *Killers, history *History) {
	k1, k2 := killers.First(ply), killers.Second(ply)

	for i := 0; i < list.Count; i++ {
		m := &list.Moves[i]
		switch {
		case !ttMove.IsNull() && m.Equals(ttMove):
			m.Score = scoreTTMove
		case m.Flags.Has(board.Capture):
			attacker := pos.At(m.From).TypeOf()
			m.Score = scoreCapture + mvvLvaTable[m.Captured][attacker] + promotionBonus(m.Promotion)
		case m.Promotion != board.NoPieceType:
			m.Score = scorePromotion + promotionBonus(m.Promotion)
		case m.Equals(k1):
			m.Score = scoreKiller1
		case m.Equals(k2):
			m.Score = scoreKiller2
		default:
			attacker := pos.At(m.From).TypeOf()
			m.Score = history.Value(pos.SideToMove(), attacker, m.To)
		}
	}
}

// ScoreCaptures assigns MVV-LVA ordering scores to a captures-only list, as
// used by quiescence search where no transposition, killer or history
// context applies. Capturing promotions add a promotion bonus on top.
func ScoreCaptures(pos *board.Position, list *board.MoveList) {
	for i := 0; i < list.Count; i++ {
		m := &list.Moves[i]
		attacker := pos.At(m.From).TypeOf()
		m.Score = mvvLvaTable[m.Captured][attacker] + promotionBonus(m.Promotion)
	}
}

// PickBest selects the highest-scored move among list.Moves[from:] and
// swaps it into position `from`, an O(n) incremental selection that avoids
// sorting the whole list up front -- most cutoffs happen in the first few
// moves, so later moves are often never examined.
func PickBest(list *board.MoveList, from int) board.Move {
	best := from
	for i := from + 1; i < list.Count; i++ {
		if list.Moves[i].Score > list.Moves[best].Score {
			best = i
		}
	}
	list.Moves[from], list.Moves[best] = list.Moves[best], list.Moves[from]
	return list.Moves[from]
}
