// Package eval contains static position evaluation.
package eval

import "github.com/mtduke71/huginn/pkg/board"

// NominalValue is the absolute material value of a piece type in
// centipawns. The king is excluded from material sums (its value is never
// consulted).
func NominalValue(t board.PieceType) board.Score {
	switch t {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 0
	}
}

const (
	bishopPairBonus = 50

	isolatedPawnPenalty = 15

	rookOpenFileBonus      = 25
	rookSemiOpenFileBonus  = 12
	queenOpenFileBonus     = 10
	queenSemiOpenFileBonus = 5

	// endgameMaterialThreshold is the non-pawn material (centipawns) below
	// which a side is considered to be in the endgame for its opponent's
	// king-table selection.
	endgameMaterialThreshold = 1300
)

// passedPawnBonus is indexed by the pawn's own-perspective advancement rank
// (1 at its own second rank, increasing to 6 on its seventh rank; entries 0
// and 7 are never read).
var passedPawnBonus = [8]board.Score{0, 5, 10, 20, 35, 60, 100, 0}

// Evaluate returns a centipawn score from the side-to-move's perspective:
// positive favors the mover. Every term below is computed symmetrically for
// both colors and only negated once, at the end, if Black is to move.
func Evaluate(pos *board.Position) board.Score {
	if pos.IsInsufficientMaterial() {
		return board.DrawScore
	}

	score := materialAndPST(pos) + bishopPairTerm(pos) + pawnStructureTerm(pos) + fileBonusTerm(pos)

	if pos.SideToMove() == board.Black {
		score = -score
	}
	return score
}

func materialAndPST(pos *board.Position) board.Score {
	var score board.Score
	wEndgame := nonPawnMaterial(pos, board.Black) < endgameMaterialThreshold
	bEndgame := nonPawnMaterial(pos, board.White) < endgameMaterialThreshold

	for t := board.Pawn; t <= board.King; t++ {
		for _, sq := range pos.PieceSquares(board.White, t) {
			score += NominalValue(t)
			score += pstValue(t, sq.Index64(), board.White, wEndgame)
		}
		for _, sq := range pos.PieceSquares(board.Black, t) {
			score -= NominalValue(t)
			score -= pstValue(t, sq.Index64(), board.Black, bEndgame)
		}
	}
	return score
}

// nonPawnMaterial sums c's material excluding pawns and the king, used to
// pick the opponent's king-table: a side with little material left is
// nearing the endgame, so its opponent's king should centralize.
func nonPawnMaterial(pos *board.Position, c board.Color) board.Score {
	var sum board.Score
	for t := board.Knight; t <= board.Queen; t++ {
		sum += NominalValue(t) * board.Score(pos.PieceCount(c, t))
	}
	return sum
}

// HasNonPawnMaterial reports whether c still has any piece besides pawns and
// the king, the guard null-move pruning uses to avoid zugzwang-prone
// king-and-pawn endings.
func HasNonPawnMaterial(pos *board.Position, c board.Color) bool {
	return nonPawnMaterial(pos, c) > 0
}

func bishopPairTerm(pos *board.Position) board.Score {
	var score board.Score
	if pos.PieceCount(board.White, board.Bishop) >= 2 {
		score += bishopPairBonus
	}
	if pos.PieceCount(board.Black, board.Bishop) >= 2 {
		score -= bishopPairBonus
	}
	return score
}

func pawnStructureTerm(pos *board.Position) board.Score {
	var score board.Score
	score += isolatedAndPassedPawns(pos, board.White)
	score -= isolatedAndPassedPawns(pos, board.Black)
	return score
}

func isolatedAndPassedPawns(pos *board.Position, c board.Color) board.Score {
	own := pos.PawnBitboard(c)
	opp := pos.PawnBitboard(c.Opponent())

	var score board.Score
	for _, sq := range pos.PieceSquares(c, board.Pawn) {
		f := sq.File()
		if own&board.AdjacentFiles(f) == 0 {
			score -= isolatedPawnPenalty
		}
		if isPassedPawn(sq, c, opp) {
			score += passedPawnBonus[passedPawnRankIndex(sq, c)]
		}
	}
	return score
}

// passedPawnRankIndex returns the pawn's advancement rank from its own
// perspective: 1 at its own second rank, 6 just short of promotion.
func passedPawnRankIndex(sq board.Square, c board.Color) int {
	if c == board.White {
		return int(sq.Rank())
	}
	return 7 - int(sq.Rank())
}

func isPassedPawn(sq board.Square, c board.Color, oppPawns board.Bitboard) bool {
	mask := board.BitFile(sq.File()) | board.AdjacentFiles(sq.File())
	return oppPawns&mask&aheadMask(sq, c) == 0
}

// aheadMask returns every square strictly ahead of sq (higher ranks for
// White, lower for Black), across all files; the caller intersects it with
// the relevant file mask.
func aheadMask(sq board.Square, c board.Color) board.Bitboard {
	var mask board.Bitboard
	if c == board.White {
		for r := sq.Rank() + 1; r <= board.Rank8; r++ {
			mask |= board.BitRank(r)
		}
		return mask
	}
	for r := sq.Rank() - 1; r >= board.Rank1; r-- {
		mask |= board.BitRank(r)
	}
	return mask
}

func fileBonusTerm(pos *board.Position) board.Score {
	var score board.Score
	score += rookQueenFileTerm(pos, board.White)
	score -= rookQueenFileTerm(pos, board.Black)
	return score
}

func rookQueenFileTerm(pos *board.Position, c board.Color) board.Score {
	ownPawns := pos.PawnBitboard(c)
	oppPawns := pos.PawnBitboard(c.Opponent())

	var score board.Score
	for _, t := range [2]board.PieceType{board.Rook, board.Queen} {
		openBonus, semiBonus := board.Score(rookOpenFileBonus), board.Score(rookSemiOpenFileBonus)
		if t == board.Queen {
			openBonus, semiBonus = board.Score(queenOpenFileBonus), board.Score(queenSemiOpenFileBonus)
		}
		for _, sq := range pos.PieceSquares(c, t) {
			file := board.BitFile(sq.File())
			switch {
			case ownPawns&file == 0 && oppPawns&file == 0:
				score += openBonus
			case ownPawns&file == 0:
				score += semiBonus
			}
		}
	}
	return score
}
