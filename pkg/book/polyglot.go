package book

import "github.com/mtduke71/huginn/pkg/board"

// Polyglot key derivation uses its own random-integer table, distinct from
// the engine's internal ZobristTable (pkg/board.ZobristTable): a book built
// against one set of keys must be probed with the same set, and shipping a
// second table keeps the search TT's hash free to evolve independently of
// whatever opening books an operator points BookFile at.
var (
	pieceKeys  [12][64]uint64
	castleKeys [4]uint64
	epKeys     [8]uint64
	turnKey    uint64
)

// kindIndex orders (color, piece type) the way the Polyglot format does:
// pawn, knight, bishop, rook, queen, king, each as a black/white pair.
func kindIndex(c board.Color, t board.PieceType) int {
	base := (int(t) - int(board.Pawn)) * 2
	if c == board.White {
		return base + 1
	}
	return base
}

func init() {
	// xorshift64*, seeded from a fixed constant so the table is reproducible
	// across runs and builds. This is not the published Polyglot Random64
	// table, so keys match only books built with this same table; standard
	// Polyglot .bin files do not produce hits.
	var s uint64 = 0x37b4a4b3f0d1c0d0
	next := func() uint64 {
		s ^= s >> 12
		s ^= s << 25
		s ^= s >> 27
		return s * 0x2545f4914f6cdd1d
	}

	for kind := 0; kind < 12; kind++ {
		for sq := 0; sq < 64; sq++ {
			pieceKeys[kind][sq] = next()
		}
	}
	for i := range castleKeys {
		castleKeys[i] = next()
	}
	for i := range epKeys {
		epKeys[i] = next()
	}
	turnKey = next()
}

// Key computes the Polyglot hash for pos: the lookup key a Book is sorted
// and binary-searched on.
func Key(pos *board.Position) uint64 {
	var h uint64

	for c := board.Color(0); c < board.NumColors; c++ {
		for t := board.Pawn; t <= board.King; t++ {
			for _, sq := range pos.PieceSquares(c, t) {
				h ^= pieceKeys[kindIndex(c, t)][sq.Index64()]
			}
		}
	}

	castling := pos.Castling()
	if castling.IsAllowed(board.WhiteKingSideCastle) {
		h ^= castleKeys[0]
	}
	if castling.IsAllowed(board.WhiteQueenSideCastle) {
		h ^= castleKeys[1]
	}
	if castling.IsAllowed(board.BlackKingSideCastle) {
		h ^= castleKeys[2]
	}
	if castling.IsAllowed(board.BlackQueenSideCastle) {
		h ^= castleKeys[3]
	}

	if ep := pos.EnPassant(); ep != board.NoSquare && epCapturePossible(pos, ep) {
		h ^= epKeys[ep.File()]
	}

	if pos.SideToMove() == board.White {
		h ^= turnKey
	}
	return h
}

// epCapturePossible reports whether a pawn of the side to move actually sits
// next to ep, the Polyglot convention for when the en passant key applies
// (an ep square with no capturing pawn adjacent does not perturb the key).
func epCapturePossible(pos *board.Position, ep board.Square) bool {
	stm := pos.SideToMove()
	rank := ep.Rank() - 1
	if stm == board.Black {
		rank = ep.Rank() + 1
	}

	for _, df := range [2]int{-1, 1} {
		f := int(ep.File()) + df
		if f < int(board.FileA) || f > int(board.FileH) {
			continue
		}
		sq := board.NewSquare(board.File(f), rank)
		if p := pos.At(sq); p != board.None && p.TypeOf() == board.Pawn && p.ColorOf() == stm {
			return true
		}
	}
	return false
}
