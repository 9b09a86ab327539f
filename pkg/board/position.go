package board

import "fmt"

const maxPieceListLen = 10

// historyEntry captures everything Unmake needs to exactly restore the
// Position to its state before the paired Make, hash included.
type historyEntry struct {
	move          Move
	priorCastling Castling
	priorEP       Square
	priorHalfmove int
	priorHash     ZobristHash
	priorFullmove int
	capturedType  PieceType // NoPieceType if the move captured nothing
	movedType     PieceType // the piece type that occupied From before the move (pre-promotion)
}

// Position is the canonical, mutable game state: a 10x12 mailbox board with
// cached king locations, per-(color,type) piece lists and counts, redundant
// pawn bitboards, an incrementally maintained Zobrist hash, and a history
// stack that supports exact undo via Unmake. Zero value is not usable;
// construct with NewPosition and initialize with SetStartpos or SetFromFEN.
type Position struct {
	squares [120]Piece

	sideToMove     Color
	castling       Castling
	epSquare       Square
	halfmoveClock  int
	fullmoveNumber int

	kingSq     [NumColors]Square
	pieceCount [NumColors][NumPieceTypes]int
	pieceList  [NumColors][NumPieceTypes][maxPieceListLen]Square

	pawns    [NumColors]Bitboard
	allPawns Bitboard

	hash ZobristHash
	zt   *ZobristTable

	history []historyEntry
	ply     int
}

// NewPosition returns an empty (64 empty squares, off-board border) Position
// bound to the given Zobrist table. Call SetStartpos or SetFromFEN before
// use.
func NewPosition(zt *ZobristTable) *Position {
	p := &Position{zt: zt}
	p.clear()
	return p
}

func (p *Position) clear() {
	for sq := range p.squares {
		if Square(sq).IsOnBoard() {
			p.squares[sq] = None
		} else {
			p.squares[sq] = OffBoardPiece
		}
	}
	p.sideToMove = White
	p.castling = 0
	p.epSquare = NoSquare
	p.halfmoveClock = 0
	p.fullmoveNumber = 1
	p.kingSq = [NumColors]Square{NoSquare, NoSquare}
	p.pieceCount = [NumColors][NumPieceTypes]int{}
	p.pawns = [NumColors]Bitboard{}
	p.allPawns = 0
	p.hash = 0
	p.history = p.history[:0]
	p.ply = 0
}

// SetStartpos resets the position to the canonical chess starting position.
func (p *Position) SetStartpos() {
	// Decode is infallible for this constant; error is impossible.
	_ = p.SetFromFEN(StartFEN)
}

// At returns the piece (or None, or OffBoardPiece) occupying sq.
func (p *Position) At(sq Square) Piece {
	return p.squares[sq]
}

func (p *Position) SideToMove() Color         { return p.sideToMove }
func (p *Position) Castling() Castling        { return p.castling }
func (p *Position) EnPassant() Square         { return p.epSquare }
func (p *Position) HalfmoveClock() int        { return p.halfmoveClock }
func (p *Position) FullmoveNumber() int       { return p.fullmoveNumber }
func (p *Position) KingSquare(c Color) Square { return p.kingSq[c] }
func (p *Position) Hash() ZobristHash         { return p.hash }
func (p *Position) Ply() int                  { return p.ply }

// PieceCount returns the number of pieces of (c, t) on the board.
func (p *Position) PieceCount(c Color, t PieceType) int {
	return p.pieceCount[c][t]
}

// PieceSquares returns the occupied squares of (c, t). The returned slice
// aliases internal state and must not be retained past the next Make/Unmake.
func (p *Position) PieceSquares(c Color, t PieceType) []Square {
	return p.pieceList[c][t][:p.pieceCount[c][t]]
}

// PawnBitboard returns the redundant 64-bit pawn occupancy for c.
func (p *Position) PawnBitboard(c Color) Bitboard {
	return p.pawns[c]
}

func (p *Position) placePiece(c Color, t PieceType, sq Square) {
	p.squares[sq] = MakePiece(c, t)
	idx := p.pieceCount[c][t]
	p.pieceList[c][t][idx] = sq
	p.pieceCount[c][t] = idx + 1
	p.hash ^= p.zt.PieceKey(c, t, sq)

	switch t {
	case King:
		p.kingSq[c] = sq
	case Pawn:
		p.pawns[c] = p.pawns[c].Set(sq)
		p.allPawns = p.allPawns.Set(sq)
	}
}

func (p *Position) removePiece(c Color, t PieceType, sq Square) {
	p.squares[sq] = None
	p.hash ^= p.zt.PieceKey(c, t, sq)

	list := &p.pieceList[c][t]
	count := p.pieceCount[c][t]
	for i := 0; i < count; i++ {
		if list[i] == sq {
			list[i] = list[count-1]
			break
		}
	}
	p.pieceCount[c][t] = count - 1

	if t == Pawn {
		p.pawns[c] = p.pawns[c].Clear(sq)
		p.allPawns = p.allPawns.Clear(sq)
	}
}

func (p *Position) setCastling(c Castling) {
	p.hash ^= p.zt.CastlingKey(p.castling)
	p.castling = c
	p.hash ^= p.zt.CastlingKey(p.castling)
}

func (p *Position) setEnPassant(sq Square) {
	if p.epSquare != NoSquare {
		p.hash ^= p.zt.EnPassantKey(p.epSquare.File())
	}
	p.epSquare = sq
	if p.epSquare != NoSquare {
		p.hash ^= p.zt.EnPassantKey(p.epSquare.File())
	}
}

func (p *Position) flipSideToMove() {
	p.sideToMove = p.sideToMove.Opponent()
	p.hash ^= p.zt.TurnKey()
}

// IsInCheck reports whether the side to move's king is currently attacked.
func (p *Position) IsInCheck() bool {
	return p.IsSquareAttacked(p.kingSq[p.sideToMove], p.sideToMove.Opponent())
}

// Make applies m (From/To/Promotion only need be populated; Captured and
// Flags are resolved against current board state if absent) and returns
// true if legal, i.e. it does not leave the mover's own king in check. On
// rejection, the Position is fully restored before returning false.
func (p *Position) Make(m Move) bool {
	m = p.resolveMove(m)
	mover := p.sideToMove

	entry := historyEntry{
		move:          m,
		priorCastling: p.castling,
		priorEP:       p.epSquare,
		priorHalfmove: p.halfmoveClock,
		priorHash:     p.hash,
		priorFullmove: p.fullmoveNumber,
		capturedType:  m.Captured,
	}
	movedPiece := p.squares[m.From]
	entry.movedType = movedPiece.TypeOf()
	p.history = append(p.history, entry)

	movedType := entry.movedType

	if m.Flags.Has(EnPassant) {
		capSq := epCaptureSquare(m.To, mover)
		p.removePiece(mover.Opponent(), Pawn, capSq)
	} else if m.Flags.Has(Capture) {
		p.removePiece(mover.Opponent(), m.Captured, m.To)
	}

	p.removePiece(mover, movedType, m.From)
	if m.Promotion != NoPieceType {
		p.placePiece(mover, m.Promotion, m.To)
	} else {
		p.placePiece(mover, movedType, m.To)
	}

	if m.Flags.Has(Castle) {
		rookFrom, rookTo := castlingRookSquares(m.To)
		p.removePiece(mover, Rook, rookFrom)
		p.placePiece(mover, Rook, rookTo)
	}

	newRights := p.castling
	newRights = newRights.Revoke(castleRightsLost[m.From])
	newRights = newRights.Revoke(castleRightsLost[m.To])
	p.setCastling(newRights)

	if movedType == Pawn && m.Flags.Has(PawnStart) {
		p.setEnPassant(epTargetSquare(m.From, mover))
	} else {
		p.setEnPassant(NoSquare)
	}

	if movedType == Pawn || m.Flags.Has(Capture) {
		p.halfmoveClock = 0
	} else {
		p.halfmoveClock++
	}
	if mover == Black {
		p.fullmoveNumber++
	}

	p.flipSideToMove()
	p.ply++

	if p.IsSquareAttacked(p.kingSq[mover], mover.Opponent()) {
		p.Unmake()
		return false
	}
	return true
}

// Unmake pops the most recent history entry and restores the exact prior
// state. Panics if called with an empty history, a programming error.
func (p *Position) Unmake() {
	n := len(p.history)
	entry := p.history[n-1]
	p.history = p.history[:n-1]
	m := entry.move

	p.flipSideToMove()
	mover := p.sideToMove
	p.ply--

	if m.Flags.Has(Castle) {
		rookFrom, rookTo := castlingRookSquares(m.To)
		p.removePiece(mover, Rook, rookTo)
		p.placePiece(mover, Rook, rookFrom)
	}

	if m.Promotion != NoPieceType {
		p.removePiece(mover, m.Promotion, m.To)
	} else {
		p.removePiece(mover, entry.movedType, m.To)
	}
	p.placePiece(mover, entry.movedType, m.From)

	if m.Flags.Has(EnPassant) {
		capSq := epCaptureSquare(m.To, mover)
		p.placePiece(mover.Opponent(), Pawn, capSq)
	} else if m.Flags.Has(Capture) {
		p.placePiece(mover.Opponent(), entry.capturedType, m.To)
	}

	p.castling = entry.priorCastling
	p.epSquare = entry.priorEP
	p.halfmoveClock = entry.priorHalfmove
	p.fullmoveNumber = entry.priorFullmove
	p.hash = entry.priorHash
}

// MakeNull passes the turn without moving a piece, for null-move pruning.
// Clears any en passant square, since a null move cannot be followed by a
// capture of it. Pair with UnmakeNull, never with Unmake.
func (p *Position) MakeNull() {
	entry := historyEntry{
		priorCastling: p.castling,
		priorEP:       p.epSquare,
		priorHalfmove: p.halfmoveClock,
		priorHash:     p.hash,
		priorFullmove: p.fullmoveNumber,
	}
	p.history = append(p.history, entry)

	p.setEnPassant(NoSquare)
	p.halfmoveClock++
	if p.sideToMove == Black {
		p.fullmoveNumber++
	}
	p.flipSideToMove()
	p.ply++
}

// UnmakeNull restores the state saved by the paired MakeNull.
func (p *Position) UnmakeNull() {
	n := len(p.history)
	entry := p.history[n-1]
	p.history = p.history[:n-1]

	p.flipSideToMove()
	p.ply--

	p.castling = entry.priorCastling
	p.epSquare = entry.priorEP
	p.halfmoveClock = entry.priorHalfmove
	p.fullmoveNumber = entry.priorFullmove
	p.hash = entry.priorHash
}

// Clone returns an independent copy of p. The two positions share no state:
// mutating one (including Make/Unmake) never affects the other. Used to hand
// a search goroutine exclusive ownership of a position while the UCI reader
// keeps the original.
func (p *Position) Clone() *Position {
	c := *p
	c.history = append([]historyEntry(nil), p.history...)
	return &c
}

// resolveMove fills in Captured and Flags for a move that only specifies
// From/To/Promotion (as produced by UCI's coordinate-notation parser).
// Moves produced by the move generator already carry this information and
// pass through unchanged.
func (p *Position) resolveMove(m Move) Move {
	moving := p.squares[m.From]
	t := moving.TypeOf()

	if t == Pawn && m.To == p.epSquare && p.squares[m.To] == None && m.From.File() != m.To.File() {
		m.Flags |= EnPassant | Capture
		m.Captured = Pawn
		return m
	}
	if target := p.squares[m.To]; target != None && target != OffBoardPiece {
		m.Flags |= Capture
		m.Captured = target.TypeOf()
	}
	if t == Pawn && abs(int(m.To)-int(m.From)) == 2*mailboxDim {
		m.Flags |= PawnStart
	}
	if t == King && abs(int(m.To)-int(m.From)) == 2 {
		m.Flags |= Castle
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// epCaptureSquare returns the square of the pawn captured en passant, which
// sits behind (from the mover's perspective) the destination square.
func epCaptureSquare(to Square, mover Color) Square {
	if mover == White {
		return to - mailboxDim
	}
	return to + mailboxDim
}

// epTargetSquare returns the new ep_square created by a pawn double push
// from "from", i.e. the square passed over.
func epTargetSquare(from Square, mover Color) Square {
	if mover == White {
		return from + mailboxDim
	}
	return from - mailboxDim
}

// castlingRookSquares returns the rook's from/to squares for a castle move,
// keyed by the king's destination square.
func castlingRookSquares(kingTo Square) (from, to Square) {
	switch kingTo {
	case NewSquare(FileG, Rank1):
		return NewSquare(FileH, Rank1), NewSquare(FileF, Rank1)
	case NewSquare(FileC, Rank1):
		return NewSquare(FileA, Rank1), NewSquare(FileD, Rank1)
	case NewSquare(FileG, Rank8):
		return NewSquare(FileH, Rank8), NewSquare(FileF, Rank8)
	case NewSquare(FileC, Rank8):
		return NewSquare(FileA, Rank8), NewSquare(FileD, Rank8)
	default:
		panic(fmt.Sprintf("not a castle destination: %v", kingTo))
	}
}

// IsThreefold reports whether the current hash has occurred at least twice
// before in the retained history (three occurrences total), searched back
// only as far as the last irreversible move (approximated by how far the
// halfmove clock reaches).
func (p *Position) IsThreefold() bool {
	count := 1
	limit := len(p.history) - p.halfmoveClock
	if limit < 0 {
		limit = 0
	}
	for i := len(p.history) - 1; i >= limit; i-- {
		if p.history[i].priorHash == p.hash {
			count++
			if count >= 3 {
				return true
			}
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether the halfmove clock has reached the
// fifty-move rule threshold (100 plies).
func (p *Position) IsFiftyMoveDraw() bool {
	return p.halfmoveClock >= 100
}

// IsInsufficientMaterial reports draws by insufficient mating material: king
// vs king, king+minor vs king, or king+bishop vs king+bishop with
// same-colored bishops.
func (p *Position) IsInsufficientMaterial() bool {
	for c := Color(0); c < NumColors; c++ {
		if p.pieceCount[c][Pawn] > 0 || p.pieceCount[c][Rook] > 0 || p.pieceCount[c][Queen] > 0 {
			return false
		}
	}
	minorCount := func(c Color) int {
		return p.pieceCount[c][Bishop] + p.pieceCount[c][Knight]
	}
	wm, bm := minorCount(White), minorCount(Black)
	if wm == 0 && bm == 0 {
		return true // K vs K
	}
	if (wm == 1 && bm == 0) || (wm == 0 && bm == 1) {
		return true // K+minor vs K
	}
	if wm == 1 && bm == 1 && p.pieceCount[White][Knight] == 0 && p.pieceCount[Black][Knight] == 0 {
		wSq := p.pieceList[White][Bishop][0]
		bSq := p.pieceList[Black][Bishop][0]
		return squareColor(wSq) == squareColor(bSq)
	}
	return false
}

func squareColor(sq Square) int {
	return (int(sq.File()) + int(sq.Rank())) & 1
}

// GameResult reports whether the game has ended at the current position and
// why: checkmate, stalemate, the fifty-move rule, insufficient material, or
// threefold repetition. Returns Undecided/NoDraw if play continues.
func (p *Position) GameResult() (Result, DrawReason) {
	var list MoveList
	p.GenerateLegal(&list)

	if list.Count == 0 {
		if p.IsInCheck() {
			if p.sideToMove == White {
				return BlackWins, NoDraw
			}
			return WhiteWins, NoDraw
		}
		return Draw, DrawStalemate
	}

	switch {
	case p.IsFiftyMoveDraw():
		return Draw, DrawFiftyMove
	case p.IsInsufficientMaterial():
		return Draw, DrawInsufficientMaterial
	case p.IsThreefold():
		return Draw, DrawThreefold
	default:
		return Undecided, NoDraw
	}
}
