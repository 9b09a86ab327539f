package board

import "fmt"

// MoveFlag marks special-case handling a Move requires during make/unmake.
// Multiple flags may be set (e.g. Capture|EnPassant).
type MoveFlag uint8

const (
	EnPassant MoveFlag = 1 << iota
	PawnStart          // two-square pawn push; sets a fresh ep_square
	Castle
	Capture
)

func (f MoveFlag) Has(bit MoveFlag) bool {
	return f&bit != 0
}

// Move is a compact, round-trip-lossless encoding of a single ply: the
// from/to squares, what (if anything) it captures or promotes to, and the
// flag bits that distinguish special-case handling during make/unmake. The
// trailing Score field is ordering metadata, not part of the move identity
// and ignored by Equals.
type Move struct {
	From, To  Square
	Captured  PieceType // NoPieceType if quiet
	Promotion PieceType // NoPieceType unless promotion
	Flags     MoveFlag
	Score     Score // move-ordering score, set by the search package
}

// ParseMove parses a move in pure algebraic coordinate notation, such as
// "a2a4" or "a7a8q". The parsed move carries no capture/flag information —
// those are filled in by Position.Make from the board it is applied to.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	m := Move{From: from, To: to}
	if len(runes) == 5 {
		piece, ok := ParsePiece(runes[4])
		if !ok {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		t := piece.TypeOf()
		if t == NoPieceType || t == Pawn || t == King {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		m.Promotion = t
	}
	return m, nil
}

// Equals compares move identity: from, to and promotion. Flags and Captured
// are derived facts about the same move, not part of its identity, and
// Score is ordering metadata — neither participates in equality.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// IsNull reports whether m is the zero-value "no move", used as a sentinel
// in the transposition table and PV extraction.
func (m Move) IsNull() bool {
	return m.From == 0 && m.To == 0 && m.Promotion == NoPieceType
}

func (m Move) String() string {
	if m.Promotion != NoPieceType {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}
