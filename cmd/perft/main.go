// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	fen := *position
	if fen == "" {
		fen = board.StartFEN
	}

	pos := board.NewPosition(board.NewZobristTable(1))
	if !pos.SetFromFEN(fen) {
		logw.Exitf(ctx, "Invalid fen '%v'", fen)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()

		var nodes uint64
		if *divide && i == *depth {
			for move, count := range pos.Divide(i) {
				fmt.Println(fmt.Sprintf("%v: %v", move, count))
				nodes += count
			}
		} else {
			nodes = pos.Perft(i)
		}

		duration := time.Since(start)
		fmt.Println(fmt.Sprintf("perft,%v,%v,%v,%v", fen, i, nodes, duration.Microseconds()))
	}
}
