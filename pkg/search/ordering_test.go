package search_test

import (
	"testing"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPos(t *testing.T, fen string) *board.Position {
	t.Helper()
	p := board.NewPosition(board.NewZobristTable(1))
	require.True(t, p.SetFromFEN(fen))
	return p
}

func TestScoreMoves_TTMoveOutranksEverything(t *testing.T) {
	// White to move, can capture a rook with a pawn or a knight.
	pos := newPos(t, "4k3/8/8/3r4/4P3/2N5/8/4K3 w - - 0 1")

	var list board.MoveList
	pos.GeneratePseudoLegal(&list)

	tt := board.Move{From: board.NewSquare(board.FileE, board.Rank1), To: board.NewSquare(board.FileE, board.Rank2)}
	search.ScoreMoves(pos, &list, tt, 0, &search.Killers{}, &search.History{})

	best := search.PickBest(&list, 0)
	assert.True(t, best.Equals(tt))
}

func TestScoreMoves_MVVLVAPrefersBiggerVictimSmallerAttacker(t *testing.T) {
	// Pawn can capture either a bishop or a rook; the rook capture should
	// outrank the bishop capture.
	pos := newPos(t, "4k3/8/8/2b1r3/3P4/8/8/4K3 w - - 0 1")

	var list board.MoveList
	pos.GeneratePseudoLegal(&list)
	search.ScoreMoves(pos, &list, board.Move{}, 0, &search.Killers{}, &search.History{})

	best := search.PickBest(&list, 0)
	assert.Equal(t, board.Rook, best.Captured)
}

func TestScoreMoves_QueenPromotionOutranksKnightPromotion(t *testing.T) {
	// White pawn on a7 can promote to any piece; no capture involved.
	pos := newPos(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	var list board.MoveList
	pos.GeneratePseudoLegal(&list)
	search.ScoreMoves(pos, &list, board.Move{}, 0, &search.Killers{}, &search.History{})

	best := search.PickBest(&list, 0)
	assert.Equal(t, board.Queen, best.Promotion)
}

func TestScoreMoves_QuietPromotionOutranksKiller(t *testing.T) {
	// White pawn on a7 can promote quietly; a killer move is also present at
	// this ply but the promotion must still be tried first.
	pos := newPos(t, "4k3/P7/8/8/8/8/8/4K3 w - - 0 1")

	var list board.MoveList
	pos.GeneratePseudoLegal(&list)

	var killers search.Killers
	killer := board.Move{From: board.NewSquare(board.FileE, board.Rank1), To: board.NewSquare(board.FileD, board.Rank2)}
	killers.Store(0, killer)

	search.ScoreMoves(pos, &list, board.Move{}, 0, &killers, &search.History{})

	best := search.PickBest(&list, 0)
	assert.Equal(t, board.Queen, best.Promotion)
}

func TestScoreCaptures_CapturingQueenPromotionOutranksCapturingKnightPromotion(t *testing.T) {
	// White pawn on b7 can capture the rook on a8 and promote to any piece.
	pos := newPos(t, "r3k3/1P6/8/8/8/8/8/4K3 w - - 0 1")

	var list board.MoveList
	pos.GeneratePseudoLegal(&list)
	search.ScoreCaptures(pos, &list)

	best := search.PickBest(&list, 0)
	assert.Equal(t, board.Queen, best.Promotion)
}

func TestKillers_StoreShiftsPrimaryIntoSecondary(t *testing.T) {
	var k search.Killers
	a := board.Move{From: board.NewSquare(board.FileA, board.Rank2), To: board.NewSquare(board.FileA, board.Rank3)}
	b := board.Move{From: board.NewSquare(board.FileB, board.Rank2), To: board.NewSquare(board.FileB, board.Rank3)}

	k.Store(0, a)
	k.Store(0, b)

	assert.True(t, k.First(0).Equals(b))
	assert.True(t, k.Second(0).Equals(a))
}

func TestKillers_DuplicateStoreIsNoop(t *testing.T) {
	var k search.Killers
	a := board.Move{From: board.NewSquare(board.FileA, board.Rank2), To: board.NewSquare(board.FileA, board.Rank3)}

	k.Store(0, a)
	k.Store(0, a)

	assert.True(t, k.First(0).Equals(a))
	assert.True(t, k.Second(0).IsNull())
}

func TestHistory_BumpAndAge(t *testing.T) {
	var h search.History
	h.Bump(board.White, board.Knight, board.NewSquare(board.FileF, board.Rank3), 4)
	assert.Equal(t, board.Score(16), h.Value(board.White, board.Knight, board.NewSquare(board.FileF, board.Rank3)))

	h.Age()
	assert.Equal(t, board.Score(8), h.Value(board.White, board.Knight, board.NewSquare(board.FileF, board.Rank3)))
}

func TestPickBest_SelectsHighestRemainingScore(t *testing.T) {
	list := &board.MoveList{}
	list.Add(board.Move{Score: 5})
	list.Add(board.Move{Score: 50})
	list.Add(board.Move{Score: 10})

	first := search.PickBest(list, 0)
	assert.Equal(t, board.Score(50), first.Score)

	second := search.PickBest(list, 1)
	assert.Equal(t, board.Score(10), second.Score)
}
