package board

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// StartFEN is the canonical chess starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// SetFromFEN parses a FEN record and replaces the Position's state with it.
// Accepts abbreviated FEN missing the halfmove clock and/or fullmove number
// (defaulting to 0 and 1). On any parse failure the Position is left reset
// to empty and false is returned.
func (p *Position) SetFromFEN(fen string) bool {
	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) < 4 {
		p.clear()
		return false
	}
	for len(parts) < 6 {
		if len(parts) == 4 {
			parts = append(parts, "0")
		} else {
			parts = append(parts, "1")
		}
	}

	p.clear()

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		p.clear()
		return false
	}
	for i, rankStr := range ranks {
		r := Rank8 - Rank(i)
		f := FileA
		for _, ch := range rankStr {
			switch {
			case unicode.IsDigit(ch):
				n := File(ch - '0')
				if n < 1 || n > 8 {
					p.clear()
					return false
				}
				f += n
			case unicode.IsLetter(ch):
				if f > FileH {
					p.clear()
					return false
				}
				piece, ok := ParsePiece(ch)
				if !ok {
					p.clear()
					return false
				}
				p.placePiece(piece.ColorOf(), piece.TypeOf(), NewSquare(f, r))
				f++
			default:
				p.clear()
				return false
			}
		}
		if f != FileH+1 {
			p.clear()
			return false
		}
	}

	switch strings.ToLower(parts[1]) {
	case "w":
		p.sideToMove = White
	case "b":
		p.sideToMove = Black
	default:
		p.clear()
		return false
	}

	castling, ok := parseCastlingFEN(parts[2])
	if !ok {
		p.clear()
		return false
	}
	p.castling = castling

	p.epSquare = NoSquare
	if parts[3] != "-" {
		epSq, err := ParseSquareStr(parts[3])
		if err != nil {
			p.clear()
			return false
		}
		p.epSquare = epSq
	}

	halfmove, err := strconv.Atoi(parts[4])
	if err != nil || halfmove < 0 {
		p.clear()
		return false
	}
	p.halfmoveClock = halfmove

	fullmove, err := strconv.Atoi(parts[5])
	if err != nil || fullmove < 1 {
		p.clear()
		return false
	}
	p.fullmoveNumber = fullmove

	p.hash = p.zt.Hash(p)
	return true
}

// ToFEN renders the Position as a FEN string. Round-trips exactly for any
// FEN a prior SetFromFEN accepted, given the same (non-abbreviated) form.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for r := Rank8; ; r-- {
		blanks := 0
		for f := FileA; f <= FileH; f++ {
			piece := p.squares[NewSquare(f, r)]
			if piece == None {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteString(piece.String())
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r == Rank1 {
			break
		}
		sb.WriteRune('/')
	}

	ep := "-"
	if p.epSquare != NoSquare {
		ep = p.epSquare.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), p.sideToMove, p.castling, ep, p.halfmoveClock, p.fullmoveNumber)
}

func parseCastlingFEN(str string) (Castling, bool) {
	var c Castling
	if str == "-" {
		return c, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			c |= WhiteKingSideCastle
		case 'Q':
			c |= WhiteQueenSideCastle
		case 'k':
			c |= BlackKingSideCastle
		case 'q':
			c |= BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return c, true
}
