package book

import "github.com/mtduke71/huginn/pkg/board"

// Entry is one 16-byte Polyglot record: a book position key, an encoded
// move, a selection weight and an (unused) learn counter.
type Entry struct {
	Key    uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

// promotionByCode maps the Polyglot 3-bit promotion code to a piece type;
// index 0 means "no promotion".
var promotionByCode = [5]board.PieceType{
	board.NoPieceType, board.Knight, board.Bishop, board.Rook, board.Queen,
}

// decodeMove unpacks a Polyglot move into from/to squares and an optional
// promotion, per the documented bit layout: to_file:3, to_rank:3,
// from_file:3, from_rank:3, promotion:3, unused:1 (least significant bits
// first). Castling is translated from Polyglot's king-takes-rook encoding
// to the king's two-square destination used everywhere else in this engine.
func decodeMove(raw uint16) board.Move {
	toFile := board.File(raw & 0x7)
	toRank := board.Rank((raw >> 3) & 0x7)
	fromFile := board.File((raw >> 6) & 0x7)
	fromRank := board.Rank((raw >> 9) & 0x7)
	promo := (raw >> 12) & 0x7

	from := board.NewSquare(fromFile, fromRank)
	to := board.NewSquare(toFile, toRank)

	switch {
	case from == board.NewSquare(board.FileE, board.Rank1) && to == board.NewSquare(board.FileH, board.Rank1):
		to = board.NewSquare(board.FileG, board.Rank1)
	case from == board.NewSquare(board.FileE, board.Rank1) && to == board.NewSquare(board.FileA, board.Rank1):
		to = board.NewSquare(board.FileC, board.Rank1)
	case from == board.NewSquare(board.FileE, board.Rank8) && to == board.NewSquare(board.FileH, board.Rank8):
		to = board.NewSquare(board.FileG, board.Rank8)
	case from == board.NewSquare(board.FileE, board.Rank8) && to == board.NewSquare(board.FileA, board.Rank8):
		to = board.NewSquare(board.FileC, board.Rank8)
	}

	m := board.Move{From: from, To: to}
	if promo > 0 && promo <= 4 {
		m.Promotion = promotionByCode[promo]
	}
	return m
}
