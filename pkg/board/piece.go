package board

// PieceType represents a chess piece's kind, with no color. 3 bits.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const NumPieceTypes = 7 // includes NoPieceType, for table sizing

func (t PieceType) IsValid() bool {
	return t >= Pawn && t <= King
}

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return " "
	}
}

// Piece is a tagged (color, type) pair stored directly on the mailbox board,
// plus the off-board sentinel queried through it. 13 on-board inhabitants.
type Piece uint8

const (
	None Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing

	NumPieces = 13
)

// OffBoardPiece is the sentinel stored in Position's mailbox for the
// permanent border ring, distinguishing "off the board" from "empty".
const OffBoardPiece Piece = 13

// MakePiece composes a colored piece from its color and type.
func MakePiece(c Color, t PieceType) Piece {
	if t == NoPieceType {
		return None
	}
	if c == White {
		return Piece(t)
	}
	return Piece(t) + 6
}

// ColorOf returns the color of a non-None piece. Undefined for None.
func (p Piece) ColorOf() Color {
	if p <= WhiteKing {
		return White
	}
	return Black
}

// TypeOf returns the piece type of a (possibly None) piece.
func (p Piece) TypeOf() PieceType {
	if p == None {
		return NoPieceType
	}
	if p <= WhiteKing {
		return PieceType(p)
	}
	return PieceType(p - 6)
}

// ParsePiece parses a FEN piece letter, e.g. 'P' (white pawn), 'n' (black knight).
func ParsePiece(r rune) (Piece, bool) {
	switch r {
	case 'P':
		return WhitePawn, true
	case 'N':
		return WhiteKnight, true
	case 'B':
		return WhiteBishop, true
	case 'R':
		return WhiteRook, true
	case 'Q':
		return WhiteQueen, true
	case 'K':
		return WhiteKing, true
	case 'p':
		return BlackPawn, true
	case 'n':
		return BlackKnight, true
	case 'b':
		return BlackBishop, true
	case 'r':
		return BlackRook, true
	case 'q':
		return BlackQueen, true
	case 'k':
		return BlackKing, true
	default:
		return None, false
	}
}

func (p Piece) String() string {
	if p == OffBoardPiece {
		return "."
	}
	letters := [NumPieces]string{
		None: " ",
		WhitePawn: "P", WhiteKnight: "N", WhiteBishop: "B", WhiteRook: "R", WhiteQueen: "Q", WhiteKing: "K",
		BlackPawn: "p", BlackKnight: "n", BlackBishop: "b", BlackRook: "r", BlackQueen: "q", BlackKing: "k",
	}
	return letters[p]
}

// PromotablePieceTypes lists the piece types a pawn may promote to, queen first
// (highest ordering priority in move generation per spec.md's MVV-LVA notes).
var PromotablePieceTypes = [4]PieceType{Queen, Rook, Bishop, Knight}
