package console_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mtduke71/huginn/pkg/engine"
	"github.com/mtduke71/huginn/pkg/engine/console"
	"github.com/mtduke71/huginn/pkg/search"
	"github.com/stretchr/testify/require"
)

func collectUntil(t *testing.T, out <-chan string, prefix string, timeout time.Duration) []string {
	t.Helper()

	var lines []string
	deadline := time.After(timeout)
	for {
		select {
		case line, ok := <-out:
			if !ok {
				t.Fatalf("output stream closed before seeing %q, got: %v", prefix, lines)
			}
			lines = append(lines, line)
			if strings.HasPrefix(line, prefix) {
				return lines
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q, got: %v", prefix, lines)
		}
	}
}

func TestDriver_StartsWithBoardPrinted(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", search.AlphaBeta{})

	in := make(chan string, 10)
	_, out := console.NewDriver(ctx, e, search.AlphaBeta{}, in)

	lines := collectUntil(t, out, "side to move", 2*time.Second)

	var sawFEN bool
	for _, l := range lines {
		if strings.HasPrefix(l, "fen:") {
			sawFEN = true
		}
	}
	require.True(t, sawFEN, "missing fen line, got: %v", lines)
}

func TestDriver_MoveUpdatesPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", search.AlphaBeta{})

	in := make(chan string, 10)
	_, out := console.NewDriver(ctx, e, search.AlphaBeta{}, in)
	collectUntil(t, out, "side to move", 2*time.Second)

	in <- "e2e4"
	lines := collectUntil(t, out, "side to move", 2*time.Second)

	var sawBlackToMove bool
	for _, l := range lines {
		if strings.Contains(l, "side to move: b,") {
			sawBlackToMove = true
		}
	}
	require.True(t, sawBlackToMove, "expected black to move after e2e4, got: %v", lines)
}

func TestDriver_QuitClosesDriver(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", search.AlphaBeta{})

	in := make(chan string, 10)
	d, out := console.NewDriver(ctx, e, search.AlphaBeta{}, in)
	collectUntil(t, out, "side to move", 2*time.Second)

	in <- "quit"

	select {
	case <-d.Closed():
	case <-time.After(time.Second):
		t.Fatal("driver did not close after quit")
	}
}
