package board

// MaxMoves safely exceeds the maximum number of pseudo-legal moves possible
// in any reachable chess position (the theoretical worst case is in the low
// 200s).
const MaxMoves = 256

// MoveList is a fixed-capacity ordered sequence of moves with a count, used
// throughout move generation and search to avoid per-node heap allocation.
type MoveList struct {
	Moves [MaxMoves]Move
	Count int
}

func (l *MoveList) Add(m Move) {
	l.Moves[l.Count] = m
	l.Count++
}

func (l *MoveList) Reset() {
	l.Count = 0
}

// GeneratePseudoLegal appends every pseudo-legal move for the side to move
// to list: moves that obey piece movement rules but may leave the mover's
// own king in check. Legality is filtered later, at Make.
func (p *Position) GeneratePseudoLegal(list *MoveList) {
	us := p.sideToMove
	p.generatePawnMoves(list, us, false)
	p.generateStepMoves(list, us, Knight, knightOffsets)
	p.generateStepMoves(list, us, King, kingOffsets)
	p.generateSlidingMoves(list, us, Bishop, bishopRays)
	p.generateSlidingMoves(list, us, Rook, rookRays)
	p.generateSlidingMoves(list, us, Queen, append(append([]int{}, bishopRays[:]...), rookRays[:]...))
	p.generateCastlingMoves(list, us)
}

// GenerateCaptures appends only capturing pseudo-legal moves (including en
// passant and capture-promotions), the move set quiescence search explores.
// Non-capturing promotions are not generated here.
func (p *Position) GenerateCaptures(list *MoveList) {
	us := p.sideToMove
	p.generatePawnMoves(list, us, true)
	p.generateCaptureOnlyStepMoves(list, us, Knight, knightOffsets)
	p.generateCaptureOnlyStepMoves(list, us, King, kingOffsets)
	p.generateCaptureOnlySlidingMoves(list, us, Bishop, bishopRays)
	p.generateCaptureOnlySlidingMoves(list, us, Rook, rookRays)
	dirs := append(append([]int{}, bishopRays[:]...), rookRays[:]...)
	p.generateCaptureOnlySlidingMoves(list, us, Queen, dirs)
}

// GenerateLegal returns every legal move for the side to move, filtering
// GeneratePseudoLegal's output through a trial Make/Unmake. Used by the
// opening-book probe, GameResult and the debug console, where correctness
// matters more than the extra cost of the legality probe; search and perft
// generate pseudo-legal moves and rely on Make rejecting illegal ones.
func (p *Position) GenerateLegal(list *MoveList) {
	var pseudo MoveList
	p.GeneratePseudoLegal(&pseudo)
	for i := 0; i < pseudo.Count; i++ {
		m := pseudo.Moves[i]
		if p.Make(m) {
			p.Unmake()
			list.Add(m)
		}
	}
}

func (p *Position) generatePawnMoves(list *MoveList, us Color, capturesOnly bool) {
	forward, startRank, promoRank := 10, Rank2, Rank8
	if us == Black {
		forward, startRank, promoRank = -10, Rank7, Rank1
	}

	for _, from := range p.PieceSquares(us, Pawn) {
		if !capturesOnly {
			one := from + Square(forward)
			if p.squares[one] == None {
				p.addPawnMove(list, from, one, NoPieceType, 0, promoRank)
				if from.Rank() == startRank {
					two := one + Square(forward)
					if p.squares[two] == None {
						list.Add(Move{From: from, To: two, Flags: PawnStart})
					}
				}
			}
		}

		for _, side := range [2]int{-1, 1} {
			to := from + Square(forward+side)
			if !to.IsOnBoard() {
				continue
			}
			if to == p.epSquare {
				list.Add(Move{From: from, To: to, Captured: Pawn, Flags: EnPassant | Capture})
				continue
			}
			target := p.squares[to]
			if target != None && target != OffBoardPiece && target.ColorOf() != us {
				p.addPawnMove(list, from, to, target.TypeOf(), Capture, promoRank)
			}
		}
	}
}

func (p *Position) addPawnMove(list *MoveList, from, to Square, captured PieceType, flags MoveFlag, promoRank Rank) {
	if to.Rank() == promoRank {
		for _, pt := range PromotablePieceTypes {
			list.Add(Move{From: from, To: to, Captured: captured, Promotion: pt, Flags: flags})
		}
		return
	}
	list.Add(Move{From: from, To: to, Captured: captured, Flags: flags})
}

func (p *Position) generateStepMoves(list *MoveList, us Color, t PieceType, offsets [8]int) {
	for _, from := range p.PieceSquares(us, t) {
		for _, off := range offsets {
			to := from + Square(off)
			if !to.IsOnBoard() {
				continue
			}
			target := p.squares[to]
			if target == None {
				list.Add(Move{From: from, To: to})
			} else if target.ColorOf() != us {
				list.Add(Move{From: from, To: to, Captured: target.TypeOf(), Flags: Capture})
			}
		}
	}
}

func (p *Position) generateCaptureOnlyStepMoves(list *MoveList, us Color, t PieceType, offsets [8]int) {
	for _, from := range p.PieceSquares(us, t) {
		for _, off := range offsets {
			to := from + Square(off)
			if !to.IsOnBoard() {
				continue
			}
			target := p.squares[to]
			if target != None && target != OffBoardPiece && target.ColorOf() != us {
				list.Add(Move{From: from, To: to, Captured: target.TypeOf(), Flags: Capture})
			}
		}
	}
}

func (p *Position) generateSlidingMoves(list *MoveList, us Color, t PieceType, dirs []int) {
	for _, from := range p.PieceSquares(us, t) {
		for _, dir := range dirs {
			to := from + Square(dir)
			for to.IsOnBoard() {
				target := p.squares[to]
				if target == None {
					list.Add(Move{From: from, To: to})
				} else {
					if target.ColorOf() != us {
						list.Add(Move{From: from, To: to, Captured: target.TypeOf(), Flags: Capture})
					}
					break
				}
				to += Square(dir)
			}
		}
	}
}

func (p *Position) generateCaptureOnlySlidingMoves(list *MoveList, us Color, t PieceType, dirs []int) {
	for _, from := range p.PieceSquares(us, t) {
		for _, dir := range dirs {
			to := from + Square(dir)
			for to.IsOnBoard() {
				target := p.squares[to]
				if target != None {
					if target.ColorOf() != us {
						list.Add(Move{From: from, To: to, Captured: target.TypeOf(), Flags: Capture})
					}
					break
				}
				to += Square(dir)
			}
		}
	}
}

func (p *Position) generateCastlingMoves(list *MoveList, us Color) {
	them := us.Opponent()
	if p.IsSquareAttacked(p.kingSq[us], them) {
		return
	}

	if us == White {
		if p.castling.IsAllowed(WhiteKingSideCastle) &&
			p.squares[NewSquare(FileF, Rank1)] == None && p.squares[NewSquare(FileG, Rank1)] == None &&
			!p.IsSquareAttacked(NewSquare(FileF, Rank1), them) && !p.IsSquareAttacked(NewSquare(FileG, Rank1), them) {
			list.Add(Move{From: NewSquare(FileE, Rank1), To: NewSquare(FileG, Rank1), Flags: Castle})
		}
		if p.castling.IsAllowed(WhiteQueenSideCastle) &&
			p.squares[NewSquare(FileD, Rank1)] == None && p.squares[NewSquare(FileC, Rank1)] == None && p.squares[NewSquare(FileB, Rank1)] == None &&
			!p.IsSquareAttacked(NewSquare(FileD, Rank1), them) && !p.IsSquareAttacked(NewSquare(FileC, Rank1), them) {
			list.Add(Move{From: NewSquare(FileE, Rank1), To: NewSquare(FileC, Rank1), Flags: Castle})
		}
	} else {
		if p.castling.IsAllowed(BlackKingSideCastle) &&
			p.squares[NewSquare(FileF, Rank8)] == None && p.squares[NewSquare(FileG, Rank8)] == None &&
			!p.IsSquareAttacked(NewSquare(FileF, Rank8), them) && !p.IsSquareAttacked(NewSquare(FileG, Rank8), them) {
			list.Add(Move{From: NewSquare(FileE, Rank8), To: NewSquare(FileG, Rank8), Flags: Castle})
		}
		if p.castling.IsAllowed(BlackQueenSideCastle) &&
			p.squares[NewSquare(FileD, Rank8)] == None && p.squares[NewSquare(FileC, Rank8)] == None && p.squares[NewSquare(FileB, Rank8)] == None &&
			!p.IsSquareAttacked(NewSquare(FileD, Rank8), them) && !p.IsSquareAttacked(NewSquare(FileC, Rank8), them) {
			list.Add(Move{From: NewSquare(FileE, Rank8), To: NewSquare(FileC, Rank8), Flags: Castle})
		}
	}
}
