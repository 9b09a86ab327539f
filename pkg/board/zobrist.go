package board

import "math/rand"

// ZobristHash is a 64-bit position hash over piece placement, side to move,
// castling rights and en-passant file. Positions that are "identical" under
// the threefold-repetition rule hash identically.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// ZobristTable is the pseudo-random table backing incremental hash updates.
// Built once per process (or per test) from a fixed seed so hashes are
// reproducible across runs, which matters for replaying recorded games.
// Opening-book keys do not use this table; pkg/book has its own.
type ZobristTable struct {
	pieces    [NumColors][NumPieceTypes][64]ZobristHash
	castling  [16]ZobristHash
	enpassant [NumFiles]ZobristHash
	turn      ZobristHash
}

func NewZobristTable(seed int64) *ZobristTable {
	t := &ZobristTable{}
	r := rand.New(rand.NewSource(seed))

	for c := Color(0); c < NumColors; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := 0; sq < 64; sq++ {
				t.pieces[c][pt][sq] = ZobristHash(r.Uint64())
			}
		}
	}
	for i := range t.castling {
		t.castling[i] = ZobristHash(r.Uint64())
	}
	for f := FileA; f <= FileH; f++ {
		t.enpassant[f] = ZobristHash(r.Uint64())
	}
	t.turn = ZobristHash(r.Uint64())
	return t
}

// PieceKey returns the XOR term for placing/removing piece (c, pt) on sq.
func (t *ZobristTable) PieceKey(c Color, pt PieceType, sq Square) ZobristHash {
	return t.pieces[c][pt][sq.Index64()]
}

// CastlingKey returns the XOR term for a given castling-rights bit set.
func (t *ZobristTable) CastlingKey(c Castling) ZobristHash {
	return t.castling[c]
}

// EnPassantKey returns the XOR term for an en-passant target on the given
// file (the rank is implied by side to move and never hashed separately).
func (t *ZobristTable) EnPassantKey(f File) ZobristHash {
	return t.enpassant[f]
}

// TurnKey returns the XOR term toggled whenever side to move changes.
func (t *ZobristTable) TurnKey() ZobristHash {
	return t.turn
}

// Hash computes the zobrist hash for a position from scratch. Used to seed
// a freshly parsed FEN; the incrementally maintained hash is not
// cross-checked against it after make/unmake.
func (t *ZobristTable) Hash(pos *Position) ZobristHash {
	var h ZobristHash
	for sq64 := 0; sq64 < 64; sq64++ {
		sq := Square64ToSquare(sq64)
		if p := pos.At(sq); p != None {
			h ^= t.PieceKey(p.ColorOf(), p.TypeOf(), sq)
		}
	}
	h ^= t.CastlingKey(pos.castling)
	if pos.epSquare != NoSquare {
		h ^= t.EnPassantKey(pos.epSquare.File())
	}
	if pos.sideToMove == Black {
		h ^= t.turn
	}
	return h
}
