package board_test

import (
	"testing"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerft_StartPosition(t *testing.T) {
	cases := []struct {
		depth int
		nodes uint64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, c := range cases {
		p := newPos(t)
		p.SetStartpos()
		assert.Equal(t, c.nodes, p.Perft(c.depth), "depth %d", c.depth)
	}
}

func TestPerft_Kiwipete(t *testing.T) {
	p := newPos(t)
	require.True(t, p.SetFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))

	assert.Equal(t, uint64(48), p.Perft(1))
	assert.Equal(t, uint64(2039), p.Perft(2))
	assert.Equal(t, uint64(97862), p.Perft(3))
}

func TestPerft_EnPassantPosition(t *testing.T) {
	p := newPos(t)
	require.True(t, p.SetFromFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"))

	assert.Equal(t, uint64(14), p.Perft(1))
	assert.Equal(t, uint64(191), p.Perft(2))
	assert.Equal(t, uint64(2812), p.Perft(3))
}
