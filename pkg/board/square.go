package board

import "fmt"

// Square addresses a cell in the 10x12 padded mailbox board. Interior squares
// 21..98 (minus the border columns) correspond bijectively to the 64 playable
// squares; the two-deep border ring is permanently off-board and terminates
// ray scans without bounds checks. 7 bits.
//
//	110 111 112 113 114 115 116 117 118 119
//	100 101 102 103 104 105 106 107 108 109
//	 90  A8  B8  C8  D8  E8  F8  G8  H8  99
//	 80  A7  B7  C7  D7  E7  F7  G7  H7  89
//	 70  A6  B6  C6  D6  E6  F6  G6  H6  79
//	 60  A5  B5  C5  D5  E5  F5  G5  H5  69
//	 50  A4  B4  C4  D4  E4  F4  G4  H4  59
//	 40  A3  B3  C3  D3  E3  F3  G3  H3  49
//	 30  A2  B2  C2  D2  E2  F2  G2  H2  39
//	 20  A1  B1  C1  D1  E1  F1  G1  H1  29
//	 10  11  12  13  14  15  16  17  18  19
//	  0   1   2   3   4   5   6   7   8   9
//
// See original_source's board120 convention (VICE-style 10x12 mailbox).
type Square int8

const (
	NoSquare   Square = -1  // sentinel: no square (e.g. no en passant target)
	OffBoard   Square = 100 // sentinel: off the playable board
	mailboxDim        = 10
)

// NewSquare builds the mailbox index for a file/rank pair.
func NewSquare(f File, r Rank) Square {
	return Square(21 + int(f) + int(r)*mailboxDim)
}

// ParseSquare parses algebraic square runes, e.g. 'e','4'.
func ParseSquare(f, r rune) (Square, error) {
	file, ok := ParseFile(f)
	if !ok {
		return NoSquare, fmt.Errorf("invalid file: %v", f)
	}
	rank, ok := ParseRank(r)
	if !ok {
		return NoSquare, fmt.Errorf("invalid rank: %v", r)
	}
	return NewSquare(file, rank), nil
}

// ParseSquareStr parses a two-character algebraic square, e.g. "e4".
func ParseSquareStr(str string) (Square, error) {
	runes := []rune(str)
	if len(runes) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %v", str)
	}
	return ParseSquare(runes[0], runes[1])
}

// IsOnBoard reports whether the square is one of the 64 playable squares.
func (s Square) IsOnBoard() bool {
	return sq120To64[s] != NoSquare64
}

// File returns the file of a square known to be on-board.
func (s Square) File() File {
	return File((int(s) - 21) % mailboxDim)
}

// Rank returns the rank of a square known to be on-board.
func (s Square) Rank() Rank {
	return Rank((int(s) - 21) / mailboxDim)
}

// Index64 returns the 0..63 index for an on-board square, or -1 if off-board.
func (s Square) Index64() int {
	return int(sq120To64[s])
}

func (s Square) String() string {
	if !s.IsOnBoard() {
		return "-"
	}
	return fmt.Sprintf("%v%v", s.File(), s.Rank())
}

// NoSquare64 is the sentinel stored in the 120->64 translation table for
// off-board mailbox cells.
const NoSquare64 = -1

var (
	// sq120To64 and sq64To120 are the bijective translation tables between the
	// 10x12 mailbox numbering and the dense 0..63 numbering, built once at
	// package init (spec.md's "explicitly-constructed immutable tables").
	sq120To64 [120]int8
	sq64To120 [64]Square
)

func init() {
	for i := range sq120To64 {
		sq120To64[i] = NoSquare64
	}
	sq64 := 0
	for r := Rank1; r <= Rank8; r++ {
		for f := FileA; f <= FileH; f++ {
			sq120 := NewSquare(f, r)
			sq120To64[sq120] = int8(sq64)
			sq64To120[sq64] = sq120
			sq64++
		}
	}
}

// Square64ToSquare converts a dense 0..63 index to its mailbox Square.
func Square64ToSquare(i int) Square {
	return sq64To120[i]
}

// Rank represents a chess board rank, Rank1=0 .. Rank8=7.
type Rank int8

const (
	Rank1 Rank = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const NumRanks = 8

func ParseRank(r rune) (Rank, bool) {
	if r < '1' || r > '8' {
		return 0, false
	}
	return Rank(r - '1'), true
}

func (r Rank) IsValid() bool {
	return r >= Rank1 && r <= Rank8
}

func (r Rank) String() string {
	return string(rune('1' + r))
}

// File represents a chess board file, FileA=0 .. FileH=7.
type File int8

const (
	FileA File = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const NumFiles = 8

func ParseFile(r rune) (File, bool) {
	switch {
	case r >= 'a' && r <= 'h':
		return File(r - 'a'), true
	case r >= 'A' && r <= 'H':
		return File(r - 'A'), true
	default:
		return 0, false
	}
}

func (f File) IsValid() bool {
	return f >= FileA && f <= FileH
}

func (f File) String() string {
	return string(rune('a' + f))
}
