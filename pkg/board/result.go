package board

// Result represents the result of a game, if any. 2 bits.
type Result uint8

const (
	Undecided Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// DrawReason distinguishes why Position considers the game drawn, since the
// UCI layer and search draw handling care about which rule applies.
type DrawReason uint8

const (
	NoDraw DrawReason = iota
	DrawStalemate
	DrawFiftyMove
	DrawThreefold
	DrawInsufficientMaterial
)

func (d DrawReason) String() string {
	switch d {
	case DrawStalemate:
		return "stalemate"
	case DrawFiftyMove:
		return "fifty-move rule"
	case DrawThreefold:
		return "threefold repetition"
	case DrawInsufficientMaterial:
		return "insufficient material"
	default:
		return "none"
	}
}
