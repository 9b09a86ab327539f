package uci_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/mtduke71/huginn/pkg/engine"
	"github.com/mtduke71/huginn/pkg/engine/uci"
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

func TestDriver_HandshakeSendsIdAndUciOk(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", search.AlphaBeta{})

	in := make(chan string, 10)
	_, out := uci.NewDriver(ctx, e, in)

	lines := collectUntil(t, out, "uciok", time.Second)

	var sawName, sawAuthor bool
	for _, l := range lines {
		if strings.HasPrefix(l, "id name test") {
			sawName = true
		}
		if l == "id author tester" {
			sawAuthor = true
		}
	}
	require.True(t, sawName, "missing id name line, got: %v", lines)
	require.True(t, sawAuthor, "missing id author line, got: %v", lines)
}

func TestDriver_GoDepthReturnsBestMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", search.AlphaBeta{})

	in := make(chan string, 10)
	_, out := uci.NewDriver(ctx, e, in)
	collectUntil(t, out, "uciok", time.Second)

	in <- "isready"
	collectUntil(t, out, "readyok", time.Second)

	in <- "position startpos"
	in <- "go depth 2"

	lines := collectUntil(t, out, "bestmove", 5*time.Second)
	found := false
	for _, l := range lines {
		if strings.HasPrefix(l, "bestmove") {
			found = true
		}
	}
	require.True(t, found)
}

func TestDriver_QuitClosesDriver(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "tester", search.AlphaBeta{})

	in := make(chan string, 10)
	d, out := uci.NewDriver(ctx, e, in)
	collectUntil(t, out, "uciok", time.Second)

	in <- "quit"

	select {
	case <-d.Closed():
	case <-time.After(time.Second):
		t.Fatal("driver did not close after quit")
	}
}
