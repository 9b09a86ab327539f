package searchctl

import (
	"context"
	"fmt"
	"github.com/mtduke71/huginn/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"time"
)

// TimeControl represents time control information relayed by a "go wtime
// btime winc binc movestogo" UCI command.
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
	Moves              int // 0 == rest of game (assume 30)
}

// Limits returns a soft and hard limit for making a move with the given
// color. After the soft limit, no new iterative-deepening iteration should
// be started; the hard limit is the safety backstop an in-flight iteration
// must never exceed (enforced by halting the search outright).
//
// Allocation: T/max(1,M) + I/2, minus a safety reserve of min(1000ms, T/10),
// capped at 60% of T and clamped to at least 50ms, where T is the own
// remaining time, I the own increment and M the moves to go (default 30).
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder, inc := t.White, t.WhiteInc
	if c == board.Black {
		remainder, inc = t.Black, t.BlackInc
	}

	moves := t.Moves
	if moves <= 0 {
		moves = 30
	}

	alloc := remainder/time.Duration(moves) + inc/2

	reserve := remainder / 10
	if reserve > time.Second {
		reserve = time.Second
	}
	alloc -= reserve

	if cap := remainder * 60 / 100; alloc > cap {
		alloc = cap
	}
	if alloc < 50*time.Millisecond {
		alloc = 50 * time.Millisecond
	}

	return alloc, 3 * alloc
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// EnforceTimeControl enforces the time control limits, if any. Returns soft limit.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
