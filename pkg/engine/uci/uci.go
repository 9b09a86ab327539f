// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/mtduke71/huginn/pkg/board"
	"github.com/mtduke71/huginn/pkg/book"
	"github.com/mtduke71/huginn/pkg/engine"
	"github.com/mtduke71/huginn/pkg/search"
	"github.com/mtduke71/huginn/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

const ProtocolName = "uci"

// Option is an UCI driver option.
type Option func(*options)

type options struct {
	useBook  bool
	bookFile string
	rand     *rand.Rand
}

// UseBook instructs the driver to probe an opening book by default, loaded
// from file (or the conventional candidate locations, if file is empty).
func UseBook(file string, seed int64) Option {
	return func(opt *options) {
		opt.useBook = true
		opt.bookFile = file
		opt.rand = rand.New(rand.NewSource(seed))
	}
}

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e   *engine.Engine
	opt options

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string, opts ...Option) (*Driver, <-chan string) {
	opt := options{rand: rand.New(rand.NewSource(1))}
	for _, fn := range opts {
		fn(&opt)
	}

	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		opt:    opt,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	if opt.useBook {
		b, path := book.LoadFromCandidates(ctx, append([]string{opt.bookFile}, book.DefaultCandidates()...))
		e.SetBook(b)
		if path != "" {
			logw.Infof(ctx, "Opening book loaded: %v", path)
		}
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CAS(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	// * uci
	//
	//	tell engine to use the uci (universal chess interface),
	//	this will be send once as a first command after program boot
	//	to tell the engine to switch to uci mode.
	//	After receiving the uci command the engine must identify itself with the "id" command
	//	and sent the "option" commands to tell the GUI which engine settings the engine supports if any.
	//	After that the engine should sent "uciok" to acknowledge the uci mode.
	//	If no uciok is sent within a certain time period, the engine task will be killed by the GUI.

	logw.Infof(ctx, "UCI protocol initialized")

	// * id
	//	* name <x>
	//		this must be sent after receiving the "uci" command to identify the engine,
	//		e.g. "id name Shredder X.Y\n"
	//	* author <x>
	//		this must be sent after receiving the "uci" command to identify the engine,
	//		e.g. "id author Stefan MK\n"

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	// * option
	//	This command tells the GUI which parameters can be changed in the engine.
	//	This should be sent once at engine startup after the "uci" and the "id" commands
	//	if any parameter can be changed in the engine.
	//	The GUI should parse this and build a dialog for the user to change the settings.
	//	* <id> = Hash, type is spin
	//		the value in MB for memory for hash tables can be changed,
	//		this should be answered with the first "setoptions" command at program boot
	//		if the engine has sent the appropriate "option name Hash" command,
	//		which should be supported by all engines!
	//	* <id> = Threads, type spin
	//		number of CPU threads the engine is allowed to use. Honored up to 1:
	//		this engine searches single-threaded, per its cooperative concurrency model.
	//	* <id> = Ponder, type check
	//		this means that the engine is able to ponder.
	//		The GUI will send this whenever pondering is possible or not.
	//	* <id> = OwnBook, type check
	//		this means that the engine has its own book which is accessed by the engine itself.
	//		if this is set, the engine takes care of the opening book and the GUI will never
	//		execute a move out of its book for the engine. If this is set to false by the GUI,
	//		the engine should not access its own book.
	//	* <id> = BookFile, type string
	//		filesystem path to the Polyglot opening book file to use when OwnBook is set.

	d.out <- "option name Threads type spin default 1 min 1 max 64"
	d.out <- "option name Ponder type check default false"
	d.out <- fmt.Sprintf("option name OwnBook type check default %v", d.opt.useBook)
	d.out <- fmt.Sprintf("option name BookFile type string default %v", d.opt.bookFile)

	// * uciok
	//
	//	Must be sent after the id and optional options to tell the GUI that the engine
	//	has sent all infos and is ready in uci mode.

	d.out <- "uciok"

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "isready":
				// * isready
				//
				//  this is used to synchronize the engine with the GUI. When the GUI has sent a command or
				//	multiple commands that can take some time to complete,
				//	this command can be used to wait for the engine to be ready again or
				//	to ping the engine to find out if it is still alive.
				//	This command must always be answered with "readyok".

				// * readyok
				//
				//	This must be sent when the engine has received an "isready" command and has
				//	processed all input and is ready to accept new commands now.

				d.out <- "readyok"

			case "debug":
				// * debug [ on | off ]
				//
				//	switch the debug mode of the engine on and off. Unused: all diagnostic
				//	output is routed through logw at debug level regardless.

			case "setoption":
				// * setoption name <id> [value <x>]
				//
				//	this is sent to the engine when the user wants to change the internal parameters
				//	of the engine. For the "button" type no value is needed.
				//	Recognized: Threads, Ponder, OwnBook, BookFile.

				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = strings.Join(args[3:], " ")
				}

				switch name {
				case "OwnBook":
					want, _ := strconv.ParseBool(value)
					if want != d.opt.useBook {
						d.opt.useBook = want
						d.reloadBook(ctx)
					}
				case "BookFile":
					d.opt.bookFile = value
					if d.opt.useBook {
						d.reloadBook(ctx)
					}
				case "Threads", "Ponder":
					// Accepted, no effect: single-threaded search only.
				}

			case "register":
				// * register
				//
				//	this is the command to try to register an engine or to tell the engine that registration
				//	will be done later. Not applicable: this engine requires no registration.

			case "ucinewgame":
				// * ucinewgame
				//
				//   this is sent to the engine when the next search (started with "position" and "go") will be from
				//   a different game. Clears the transposition table and move-ordering tables via Reset.

				d.ensureInactive(ctx)
				d.lastPosition = ""
				_ = d.e.Reset(ctx, board.StartFEN)

			case "position":
				// * position [fen <fenstring> | startpos ]  moves <move1> .... <movei>
				//
				//	set up the position described in fenstring on the internal board and
				//	play the moves on the internal chess board.
				//	if the game was played  from the start position the string "startpos" will be sent

				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					// Continuation of game.

					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Split(moves, " ") {
						if arg == "" || arg == "moves" {
							continue
						}

						if err := d.e.Move(ctx, arg); err != nil {
							logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
							return
						}
					}

					d.lastPosition = line
					break
				}

				// New position.

				position := board.StartFEN
				if len(args) >= 7 && args[0] == "fen" {
					position = strings.Join(args[1:7], " ")
				}

				if err := d.e.Reset(ctx, position); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}

				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}

					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.lastPosition = line

			case "go":
				// * go
				//
				//	start calculating on the current position set up with the "position" command.
				//	* wtime <x> / btime <x> / winc <x> / binc <x> / movestogo <x>
				//		clock state, used to compute a time allocation.
				//	* depth <x>
				//		search x plies only.
				//	* movetime <x>
				//		search exactly x mseconds.
				//	* infinite
				//		search until the "stop" command. Do not exit the search without being told so in this mode!

				d.ensureInactive(ctx)

				var opt searchctl.Options
				var tc searchctl.TimeControl
				haveTC := false
				infinite := false
				movetime := time.Duration(0)

				for i := 0; i < len(args); i++ {
					cmd := args[i]
					switch cmd {
					case "wtime", "btime", "winc", "binc", "movestogo", "depth", "movetime", "nodes", "mate":
						i++
						if i == len(args) {
							logw.Errorf(ctx, "No argument for %v: %v", cmd, line)
							return
						}
						n, err := strconv.Atoi(args[i])
						if err != nil {
							logw.Errorf(ctx, "Invalid argument for %v: %v", line, err)
							return
						}

						switch cmd {
						case "depth":
							opt.DepthLimit = lang.Some(uint(n))
						case "wtime":
							tc.White = time.Millisecond * time.Duration(n)
							haveTC = true
						case "btime":
							tc.Black = time.Millisecond * time.Duration(n)
							haveTC = true
						case "winc":
							tc.WhiteInc = time.Millisecond * time.Duration(n)
							haveTC = true
						case "binc":
							tc.BlackInc = time.Millisecond * time.Duration(n)
							haveTC = true
						case "movestogo":
							tc.Moves = n
							haveTC = true
						case "movetime":
							movetime = time.Millisecond * time.Duration(n)
						case "nodes", "mate":
							// Accepted, not honored: no node-count or
							// mate-search-only limit is implemented.
						}

					case "infinite":
						infinite = true

					default:
						// silently ignore anything not handled (e.g. ponder, searchmoves).
					}
				}

				if haveTC && !infinite {
					opt.TimeControl = lang.Some(tc)
				}

				if d.opt.useBook {
					if m, ok := d.e.ProbeBook(d.opt.rand); ok {
						pv := search.PV{Moves: []board.Move{m}}

						d.active.Store(true)
						d.searchCompleted(ctx, pv)
						break
					} // else: no book move, fall through to search
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				// Forward ponder info. Complete search if it ends, unless infinite.

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !infinite {
						d.searchCompleted(ctx, last)
					}
				}()

				// Enforce movetime, if set: identical to a "stop" triggered by the clock.

				if movetime > 0 {
					time.AfterFunc(movetime, func() {
						_, _ = d.e.Halt(ctx)
					})
				}

			case "stop":
				// * stop
				//
				//	stop calculating as soon as possible,
				//	don't forget the "bestmove" and possibly the "ponder" token when finishing the search

				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "ponderhit":
				// * ponderhit
				//
				//	the user has played the expected move. This will be sent if the engine was told to ponder on the same move
				//	the user has played. The engine should continue searching but switch from pondering to normal search.

			case "quit":
				// * quit
				//
				//	quit the program as soon as possible

				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			// * info
			//	the engine wants to send infos to the GUI. This should be done whenever one of the info has changed.
			//	e.g. "info depth 12 nodes 123456 nps 100000" or
			//	     "info depth 2 score cp 214 time 1242 nodes 2124 nps 34928 pv e2e4 e7e5 g1f3"

			if d.active.Load() {
				d.out <- printPV(pv)
			}

		case <-d.quit:
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) reloadBook(ctx context.Context) {
	b, path := book.LoadFromCandidates(ctx, append([]string{d.opt.bookFile}, book.DefaultCandidates()...))
	d.e.SetBook(b)
	if path != "" {
		d.out <- fmt.Sprintf("info string Opening book loaded: %v", path)
	} else {
		d.out <- "info string Opening book not found"
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if d.active.CAS(true, false) {
		if len(pv.Moves) > 0 {
			// * bestmove <move1> [ ponder <move2> ]
			//
			//	the engine has stopped searching and found the move <move> best in this position.
			//	Directly before that the engine should send a final "info" command with the final
			//	search information, so the GUI has the complete statistics about the last search.

			d.out <- printPV(pv)
			d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
		} else {
			// No PV. Position is checkmate or stalemate. Send NullMove.

			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV) string {
	// "info depth 2 score cp 214 time 1242 nodes 2124 nps 34928 pv e2e4 e7e5 g1f3"

	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))
	if pv.Score.IsMateScore() {
		parts = append(parts, fmt.Sprintf("score mate %v", mateInMoves(pv.Score)))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	}
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv")
		parts = append(parts, printMoves(pv.Moves))
	}

	return strings.Join(parts, " ")
}

// mateInMoves converts a mate score's ply distance to the "mate in y moves"
// count UCI expects, preserving sign (negative: side to move is mated).
func mateInMoves(s board.Score) int {
	plies := s.MateDistance()
	sign := 1
	if plies < 0 {
		sign, plies = -1, -plies
	}
	return sign * (plies + 1) / 2
}

func printMoves(moves []board.Move) string {
	var sb strings.Builder
	for i, m := range moves {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(m.String())
	}
	return sb.String()
}
