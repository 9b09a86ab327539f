package search_test

import (
	"context"
	"testing"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranspositionTable_StoreAndProbeRoundTrip(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)

	e := search.Entry{
		Hash:  0x1234,
		Move:  board.Move{From: board.NewSquare(board.FileE, board.Rank2), To: board.NewSquare(board.FileE, board.Rank4)},
		Score: 57,
		Depth: 4,
		Bound: search.ExactBound,
	}
	tt.Store(e)

	got, ok := tt.Probe(0x1234)
	require.True(t, ok)
	assert.Equal(t, e.Hash, got.Hash)
	assert.True(t, got.Move.Equals(e.Move))
	assert.Equal(t, e.Score, got.Score)
	assert.Equal(t, e.Depth, got.Depth)
	assert.Equal(t, e.Bound, got.Bound)
}

func TestTranspositionTable_ProbeMissReturnsFalse(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)
	_, ok := tt.Probe(0xdead)
	assert.False(t, ok)
}

func TestTranspositionTable_ShallowEntryDoesNotReplaceDeeper(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)

	deep := search.Entry{Hash: 42, Depth: 10, Score: 100, Bound: search.ExactBound}
	tt.Store(deep)

	shallow := search.Entry{Hash: 42, Depth: 2, Score: 5, Bound: search.ExactBound}
	tt.Store(shallow)

	got, ok := tt.Probe(42)
	require.True(t, ok)
	assert.Equal(t, deep.Depth, got.Depth)
	assert.Equal(t, deep.Score, got.Score)
}

func TestTranspositionTable_NewSearchAllowsStaleReplacement(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)

	deep := search.Entry{Hash: 7, Depth: 10, Score: 100, Bound: search.ExactBound}
	tt.Store(deep)

	tt.NewSearch()

	shallow := search.Entry{Hash: 7, Depth: 1, Score: 3, Bound: search.ExactBound}
	tt.Store(shallow)

	got, ok := tt.Probe(7)
	require.True(t, ok)
	assert.Equal(t, shallow.Depth, got.Depth)
}

func TestTranspositionTable_ClearEmptiesTable(t *testing.T) {
	tt := search.NewTranspositionTable(context.Background(), 1<<16)
	tt.Store(search.Entry{Hash: 1, Depth: 1})
	tt.Clear()

	_, ok := tt.Probe(1)
	assert.False(t, ok)
	assert.Equal(t, float64(0), tt.Used())
}

func TestNoTranspositionTable_AlwaysMisses(t *testing.T) {
	var tt search.NoTranspositionTable
	tt.Store(search.Entry{Hash: 1})
	_, ok := tt.Probe(1)
	assert.False(t, ok)
}
