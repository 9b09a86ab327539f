package eval_test

import (
	"strings"
	"testing"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pos(t *testing.T, fen string) *board.Position {
	t.Helper()
	p := board.NewPosition(board.NewZobristTable(1))
	require.True(t, p.SetFromFEN(fen))
	return p
}

func TestEvaluate_StartPositionIsBalanced(t *testing.T) {
	p := pos(t, board.StartFEN)
	assert.Equal(t, board.Score(0), eval.Evaluate(p))
}

func TestEvaluate_MaterialAdvantage(t *testing.T) {
	// White is up a rook.
	p := pos(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.Greater(t, eval.Evaluate(p), board.Score(0))
}

func TestEvaluate_InsufficientMaterialIsDraw(t *testing.T) {
	p := pos(t, "8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	assert.Equal(t, board.DrawScore, eval.Evaluate(p))
}

func TestEvaluate_CastledKingOutscoresHomeSquare(t *testing.T) {
	// Black keeps enough material (queen + rook) that White's own king stays
	// on the middlegame table, not the endgame one, in both positions.
	uncastled := pos(t, "r2qk3/8/8/8/8/8/8/4K3 w - - 0 1")
	castled := pos(t, "r2qk3/8/8/8/8/8/8/6K1 w - - 0 1")

	assert.Greater(t, eval.Evaluate(castled), eval.Evaluate(uncastled))
}

func TestEvaluate_MirrorSymmetry(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, fen := range fens {
		white := pos(t, fen)
		black := pos(t, mirrorFEN(fen))
		assert.Equal(t, eval.Evaluate(white), -eval.Evaluate(black), fen)
	}
}

// mirrorFEN swaps colors and flips ranks of a FEN's piece-placement field,
// producing the position evaluate's symmetry contract must agree with.
// Castling rights and en passant are dropped for simplicity, since the test
// fixtures don't exercise them.
func mirrorFEN(fen string) string {
	fields := strings.Fields(fen)
	ranks := strings.Split(fields[0], "/")

	flipped := make([]string, 8)
	for i, r := range ranks {
		flipped[7-i] = swapPieceCase(r)
	}

	turn := "b"
	if fields[1] == "b" {
		turn = "w"
	}

	return strings.Join(flipped, "/") + " " + turn + " - - 0 1"
}

func swapPieceCase(rank string) string {
	var sb strings.Builder
	for _, r := range rank {
		switch {
		case r >= 'a' && r <= 'z':
			sb.WriteRune(r - ('a' - 'A'))
		case r >= 'A' && r <= 'Z':
			sb.WriteRune(r + ('a' - 'A'))
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
