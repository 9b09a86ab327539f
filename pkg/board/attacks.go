package board

// Mailbox step offsets for non-sliding pieces and sliding-ray directions.
// Off-board destinations are detected via the OffBoardPiece sentinel, so no
// explicit bounds checking is needed walking any of these.
var (
	knightOffsets = [8]int{-21, -19, -12, -8, 8, 12, 19, 21}
	kingOffsets   = [8]int{-11, -10, -9, -1, 1, 9, 10, 11}
	rookRays      = [4]int{-10, -1, 1, 10}
	bishopRays    = [4]int{-11, -9, 9, 11}
)

// IsSquareAttacked reports whether sq is attacked by any piece of color by.
// Used both for check detection (attacker = side not to move) and castling
// legality (attacker = opponent, queried against the king's transit
// squares).
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	if sq == NoSquare || !sq.IsOnBoard() {
		return false
	}

	// Pawns: an attacker of color `by` standing one diagonal step behind sq
	// (from sq's perspective) attacks sq.
	var p1, p2 Square
	if by == White {
		p1, p2 = sq-9, sq-11
	} else {
		p1, p2 = sq+9, sq+11
	}
	if pc := p.squares[p1]; pc.TypeOf() == Pawn && pc.ColorOf() == by {
		return true
	}
	if pc := p.squares[p2]; pc.TypeOf() == Pawn && pc.ColorOf() == by {
		return true
	}

	for _, off := range knightOffsets {
		t := p.squares[int(sq)+off]
		if t.TypeOf() == Knight && t.ColorOf() == by {
			return true
		}
	}
	for _, off := range kingOffsets {
		t := p.squares[int(sq)+off]
		if t.TypeOf() == King && t.ColorOf() == by {
			return true
		}
	}

	for _, dir := range rookRays {
		if p.rayAttacked(sq, dir, by, Rook, Queen) {
			return true
		}
	}
	for _, dir := range bishopRays {
		if p.rayAttacked(sq, dir, by, Bishop, Queen) {
			return true
		}
	}
	return false
}

// rayAttacked walks from sq in direction dir until it hits a non-empty
// square or the border, reporting whether the first occupied square is an
// attacker of color `by` with piece type t1 or t2.
func (p *Position) rayAttacked(sq Square, dir int, by Color, t1, t2 PieceType) bool {
	cur := int(sq) + dir
	for {
		pc := p.squares[cur]
		if pc == OffBoardPiece {
			return false
		}
		if pc != None {
			if pc.ColorOf() != by {
				return false
			}
			t := pc.TypeOf()
			return t == t1 || t == t2
		}
		cur += dir
	}
}
