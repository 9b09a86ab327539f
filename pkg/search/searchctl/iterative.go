package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/eval"
	"github.com/mtduke71/huginn/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is a search harness for iterative deepening: it re-runs Root at
// increasing depth, reusing the transposition table and move-ordering
// tables across iterations, until a stop condition is met.
type Iterative struct {
	Root search.Search
}

func (i *Iterative) Launch(ctx context.Context, pos *board.Position, tt search.TranspositionTable, killers *search.Killers, history *search.History, noise eval.Random, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Root, pos, tt, killers, history, noise, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, root search.Search, pos *board.Position, tt search.TranspositionTable, killers *search.Killers, history *search.History, noise eval.Random, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	sctx := &search.Context{Alpha: -board.Mate, Beta: board.Mate, TT: tt, Killers: killers, History: history, Noise: noise}
	defer logFailHighRatio(ctx, sctx)
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, pos.SideToMove())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	if tt != nil {
		tt.NewSearch()
	}
	killers.Clear()

	depth := 1
	begin := time.Now()
	for !h.quit.IsClosed() {
		start := time.Now()

		nodes, score, moves, err := root.Search(wctx, sctx, pos, depth)
		if err != nil {
			if err == search.ErrHalted {
				return // Halt was called.
			}
			logw.Errorf(ctx, "Search failed at depth=%v: %v", depth, err)
			return
		}

		pv := search.PV{
			Depth: depth,
			Nodes: nodes,
			Score: score,
			Moves: moves,
			Time:  time.Since(start),
		}
		if tt != nil {
			pv.Hash = tt.Used()
		}

		logw.Debugf(ctx, "Searched depth=%v: %v", depth, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if limit, ok := opt.DepthLimit.V(); ok && uint(depth) == limit {
			return // halt: reached max depth
		}
		if score.IsMateScore() {
			if md := score.MateDistance(); md > 0 && md <= depth {
				return // halt: forced mate found within full width search. Exact result.
			}
		}
		if useSoft && soft < time.Since(begin) {
			return // halt: exceeded soft time limit. Do not start new search.
		}
		depth++
	}
}

// logFailHighRatio reports the move-ordering quality counters accumulated
// over the whole iterative-deepening run: the fraction of beta cutoffs that
// landed on the first move tried should exceed 80% for move ordering to be
// considered correct.
func logFailHighRatio(ctx context.Context, sctx *search.Context) {
	ratio := 0.0
	if sctx.FailHighCount > 0 {
		ratio = float64(sctx.FailHighFirstCount) / float64(sctx.FailHighCount)
	}
	logw.Debugf(ctx, "Move ordering: fail_high_count=%v fail_high_first_count=%v (%.1f%%) null_cut_count=%v",
		sctx.FailHighCount, sctx.FailHighFirstCount, ratio*100, sctx.NullCutCount)
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
