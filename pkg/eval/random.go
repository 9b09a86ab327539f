package eval

import (
	"math/rand"

	"github.com/mtduke71/huginn/pkg/board"
)

// Random is a seeded source of small centipawn offsets, built by the engine
// from its Noise option on every reset and carried in search.Context.Noise.
// Opening-book move selection does not use it.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

// Noise returns a centipawn offset in [-limit/2, limit/2]; zero if disabled.
func (n Random) Noise() board.Score {
	if n.limit <= 0 {
		return 0
	}
	return board.Score(n.rand.Intn(n.limit) - n.limit/2)
}
