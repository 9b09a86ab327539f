package engine_test

import (
	"context"
	"testing"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/engine"
	"github.com/mtduke71/huginn/pkg/search"
	"github.com/mtduke71/huginn/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(context.Background(), "test", "tester", search.AlphaBeta{})
}

func TestEngine_NewStartsAtStandardPosition(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, board.StartFEN, e.Position())
}

func TestEngine_ResetInvalidFENIsError(t *testing.T) {
	e := newEngine(t)
	assert.Error(t, e.Reset(context.Background(), "not a fen"))
}

func TestEngine_MoveThenTakeBackRestoresPosition(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, board.StartFEN, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, board.StartFEN, e.Position())
}

func TestEngine_MoveRejectsIllegalMove(t *testing.T) {
	e := newEngine(t)
	assert.Error(t, e.Move(context.Background(), "e2e5"))
}

func TestEngine_TakeBackAtRootIsError(t *testing.T) {
	e := newEngine(t)
	assert.Error(t, e.TakeBack(context.Background()))
}

func TestEngine_BoardReturnsIndependentCopy(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	snapshot := e.Board()
	require.NoError(t, e.Move(ctx, "e2e4"))

	assert.Equal(t, board.StartFEN, snapshot.ToFEN())
	assert.NotEqual(t, snapshot.ToFEN(), e.Position())
}

func TestEngine_AnalyzeFindsMateInOne(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	require.NoError(t, e.Reset(ctx, "k7/8/1K6/8/8/8/8/7R w - - 0 1"))

	out, err := e.Analyze(ctx, searchctl.Options{DepthLimit: lang.Some(uint(2))})
	require.NoError(t, err)

	var last search.PV
	for pv := range out {
		last = pv
	}

	assert.True(t, last.Score.IsMateScore())
	if assert.NotEmpty(t, last.Moves) {
		want := board.Move{From: board.NewSquare(board.FileH, board.Rank1), To: board.NewSquare(board.FileH, board.Rank8)}
		assert.True(t, last.Moves[0].Equals(want), "expected Rh8#, got %v", last.Moves[0])
	}
}

func TestEngine_AnalyzeRejectsConcurrentSearch(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()

	_, err := e.Analyze(ctx, searchctl.Options{DepthLimit: lang.Some(uint(3))})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, searchctl.Options{DepthLimit: lang.Some(uint(3))})
	assert.Error(t, err)

	_, _ = e.Halt(ctx)
}

func TestEngine_ProbeBookMissOnEmptyBook(t *testing.T) {
	e := newEngine(t)
	_, ok := e.ProbeBook(nil)
	assert.False(t, ok)
}
