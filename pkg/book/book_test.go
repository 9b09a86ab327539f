package book_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"math/rand"
	"os"
	"testing"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPos(t *testing.T, fen string) *board.Position {
	t.Helper()
	p := board.NewPosition(board.NewZobristTable(1))
	require.True(t, p.SetFromFEN(fen))
	return p
}

// encodeMove is the inverse of the package's internal decodeMove, used only
// to build fixture records for these tests.
func encodeMove(from, to board.Square, promo board.PieceType) uint16 {
	code := uint16(0)
	switch promo {
	case board.Knight:
		code = 1
	case board.Bishop:
		code = 2
	case board.Rook:
		code = 3
	case board.Queen:
		code = 4
	}
	toFile := uint16(to.File())
	toRank := uint16(to.Rank())
	fromFile := uint16(from.File())
	fromRank := uint16(from.Rank())
	return toFile | toRank<<3 | fromFile<<6 | fromRank<<9 | code<<12
}

func TestKey_DependsOnSideToMoveAndCastling(t *testing.T) {
	startpos := newPos(t, board.StartFEN)
	blackToMove := newPos(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	noCastling := newPos(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1")

	k1 := book.Key(startpos)
	k2 := book.Key(blackToMove)
	k3 := book.Key(noCastling)

	assert.NotEqual(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

func TestKey_IsStableAcrossEquivalentPositions(t *testing.T) {
	a := newPos(t, board.StartFEN)
	b := newPos(t, board.StartFEN)
	assert.Equal(t, book.Key(a), book.Key(b))
}

func TestBook_ProbeReturnsMatchingLegalMove(t *testing.T) {
	pos := newPos(t, board.StartFEN)
	key := book.Key(pos)

	e2e4 := encodeMove(
		board.NewSquare(board.FileE, board.Rank2),
		board.NewSquare(board.FileE, board.Rank4),
		board.NoPieceType,
	)
	b := book.New([]book.Entry{{Key: key, Move: e2e4, Weight: 10}})

	m, ok := b.Probe(pos, rand.New(rand.NewSource(1)))
	require.True(t, ok)
	want := board.Move{From: board.NewSquare(board.FileE, board.Rank2), To: board.NewSquare(board.FileE, board.Rank4)}
	assert.True(t, m.Equals(want))
}

func TestBook_ProbeMissReturnsFalse(t *testing.T) {
	pos := newPos(t, board.StartFEN)
	b := book.New([]book.Entry{{Key: book.Key(pos) + 1, Weight: 1}})

	_, ok := b.Probe(pos, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestBook_ProbeOnNilBookIsSafeMiss(t *testing.T) {
	pos := newPos(t, board.StartFEN)
	var b *book.Book
	_, ok := b.Probe(pos, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestBook_ProbeSkipsIllegalCandidateAndFallsBackToLegalOne(t *testing.T) {
	pos := newPos(t, board.StartFEN)
	key := book.Key(pos)

	// A bogus move (e2e5, a pawn cannot reach) mixed with a legal one; the
	// illegal candidate must be skipped rather than returned as-is.
	bogus := encodeMove(
		board.NewSquare(board.FileE, board.Rank2),
		board.NewSquare(board.FileE, board.Rank5),
		board.NoPieceType,
	)
	legal := encodeMove(
		board.NewSquare(board.FileD, board.Rank2),
		board.NewSquare(board.FileD, board.Rank4),
		board.NoPieceType,
	)
	b := book.New([]book.Entry{
		{Key: key, Move: bogus, Weight: 1000},
		{Key: key, Move: legal, Weight: 1},
	})

	m, ok := b.Probe(pos, rand.New(rand.NewSource(7)))
	require.True(t, ok)
	want := board.Move{From: board.NewSquare(board.FileD, board.Rank2), To: board.NewSquare(board.FileD, board.Rank4)}
	assert.True(t, m.Equals(want))
}

func TestBook_ProbeTranslatesCastlingEncoding(t *testing.T) {
	pos := newPos(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	key := book.Key(pos)

	// Polyglot encodes white kingside castling as the king capturing its
	// own rook on h1.
	castle := encodeMove(
		board.NewSquare(board.FileE, board.Rank1),
		board.NewSquare(board.FileH, board.Rank1),
		board.NoPieceType,
	)
	b := book.New([]book.Entry{{Key: key, Move: castle, Weight: 1}})

	m, ok := b.Probe(pos, rand.New(rand.NewSource(1)))
	require.True(t, ok)
	want := board.Move{From: board.NewSquare(board.FileE, board.Rank1), To: board.NewSquare(board.FileG, board.Rank1)}
	assert.True(t, m.Equals(want))
}

func TestBook_ClearEmptiesBook(t *testing.T) {
	pos := newPos(t, board.StartFEN)
	b := book.New([]book.Entry{{Key: book.Key(pos), Weight: 1}})
	require.Equal(t, 1, b.Len())

	b.Clear()
	assert.Equal(t, 0, b.Len())
	_, ok := b.Probe(pos, rand.New(rand.NewSource(1)))
	assert.False(t, ok)
}

func TestLoad_ReadsSortedBigEndianRecords(t *testing.T) {
	pos := newPos(t, board.StartFEN)
	key := book.Key(pos)

	var buf bytes.Buffer
	writeRecord(t, &buf, key, encodeMove(
		board.NewSquare(board.FileE, board.Rank2),
		board.NewSquare(board.FileE, board.Rank4),
		board.NoPieceType,
	), 5, 0)

	dir := t.TempDir()
	path := dir + "/test.bin"
	require.NoError(t, writeFile(path, buf.Bytes()))

	b, err := book.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Len())

	m, ok := b.Probe(pos, rand.New(rand.NewSource(1)))
	require.True(t, ok)
	want := board.Move{From: board.NewSquare(board.FileE, board.Rank2), To: board.NewSquare(board.FileE, board.Rank4)}
	assert.True(t, m.Equals(want))
}

func TestLoad_MissingFileIsAnError(t *testing.T) {
	_, err := book.Load("/no/such/book.bin")
	assert.Error(t, err)
}

func TestLoadFromCandidates_FallsBackThroughList(t *testing.T) {
	pos := newPos(t, board.StartFEN)

	var buf bytes.Buffer
	writeRecord(t, &buf, book.Key(pos), encodeMove(
		board.NewSquare(board.FileD, board.Rank2),
		board.NewSquare(board.FileD, board.Rank4),
		board.NoPieceType,
	), 1, 0)

	dir := t.TempDir()
	good := dir + "/good.bin"
	require.NoError(t, writeFile(good, buf.Bytes()))

	b, found := book.LoadFromCandidates(context.Background(), []string{"/no/such/path.bin", good})
	assert.Equal(t, good, found)
	assert.Equal(t, 1, b.Len())
}

func TestLoadFromCandidates_AllMissingYieldsEmptyBook(t *testing.T) {
	b, found := book.LoadFromCandidates(context.Background(), []string{"/no/such/a.bin", "/no/such/b.bin"})
	assert.Equal(t, "", found)
	assert.Equal(t, 0, b.Len())
}

func writeRecord(t *testing.T, buf *bytes.Buffer, key uint64, move, weight uint16, learn uint32) {
	t.Helper()
	require.NoError(t, binary.Write(buf, binary.BigEndian, key))
	require.NoError(t, binary.Write(buf, binary.BigEndian, move))
	require.NoError(t, binary.Write(buf, binary.BigEndian, weight))
	require.NoError(t, binary.Write(buf, binary.BigEndian, learn))
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
