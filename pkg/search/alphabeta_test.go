package search_test

import (
	"context"
	"testing"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/search"
	"github.com/stretchr/testify/assert"
)

func newSearchContext(alpha, beta board.Score) *search.Context {
	return &search.Context{
		Alpha:   alpha,
		Beta:    beta,
		TT:      search.NewTranspositionTable(context.Background(), 1<<20),
		Killers: &search.Killers{},
		History: &search.History{},
	}
}

func TestAlphaBeta_FindsMateInOne(t *testing.T) {
	pos := newPos(t, "k7/8/1K6/8/8/8/8/7R w - - 0 1")
	sctx := newSearchContext(-board.Mate, board.Mate)

	_, score, pv, err := search.AlphaBeta{}.Search(context.Background(), sctx, pos, 2)

	assert.NoError(t, err)
	assert.True(t, score.IsMateScore())
	assert.Greater(t, score, board.Score(0))
	if assert.NotEmpty(t, pv) {
		want := board.Move{From: board.NewSquare(board.FileH, board.Rank1), To: board.NewSquare(board.FileH, board.Rank8)}
		assert.True(t, pv[0].Equals(want), "expected Rh8#, got %v", pv[0])
	}
}

func TestAlphaBeta_StalemateIsDraw(t *testing.T) {
	// Black to move, king on h8 boxed in by the queen and king with no
	// legal moves and not in check.
	pos := newPos(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	sctx := newSearchContext(-board.Mate, board.Mate)

	_, score, _, err := search.AlphaBeta{}.Search(context.Background(), sctx, pos, 1)

	assert.NoError(t, err)
	assert.Equal(t, board.DrawScore, score)
}

func TestAlphaBeta_TracksFailHighCounters(t *testing.T) {
	// A tactically sharp middlegame position: plenty of captures at every
	// node, so beta cutoffs (and null-move cutoffs) are expected.
	pos := newPos(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	sctx := newSearchContext(-board.Mate, board.Mate)

	_, _, _, err := search.AlphaBeta{}.Search(context.Background(), sctx, pos, 4)

	assert.NoError(t, err)
	assert.Greater(t, sctx.FailHighCount, uint64(0))
	assert.LessOrEqual(t, sctx.FailHighFirstCount, sctx.FailHighCount)
}

func TestAlphaBeta_DetectsFiftyMoveDraw(t *testing.T) {
	// King and rook vs. lone king, halfmove clock one move short of the
	// threshold: every legal reply is quiet and non-capturing, so whichever
	// move White plays, the resulting position is an immediate draw.
	pos := newPos(t, "7k/8/8/8/8/8/8/R5K1 w - - 99 50")
	sctx := newSearchContext(-board.Mate, board.Mate)

	_, score, _, err := search.AlphaBeta{}.Search(context.Background(), sctx, pos, 2)
	assert.NoError(t, err)
	assert.Equal(t, board.DrawScore, score)
}
