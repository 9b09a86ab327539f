package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mtduke71/huginn/pkg/engine"
	"github.com/mtduke71/huginn/pkg/engine/console"
	"github.com/mtduke71/huginn/pkg/engine/uci"
	"github.com/mtduke71/huginn/pkg/search"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 0, "Search depth limit (zero if unbounded, governed by time control)")
	hash     = flag.Int("hash", 64, "Transposition table size in MB (zero to disable)")
	noise    = flag.Int("noise", 0, "Evaluation noise in centipawns (zero if deterministic)")
	ownBook  = flag.Bool("ownbook", false, "Probe an opening book before searching")
	bookFile = flag.String("bookfile", "", "Polyglot opening book file (tries conventional locations if empty)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: huginn [options]

huginn is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	s := search.AlphaBeta{}
	e := engine.New(ctx, "huginn", "mtduke71", s, engine.WithOptions(engine.Options{
		Depth: uint(*depth),
		Hash:  uint(*hash),
		Noise: uint(*noise),
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		var opts []uci.Option
		if *ownBook {
			opts = append(opts, uci.UseBook(*bookFile, time.Now().UnixNano()))
		}

		driver, out := uci.NewDriver(ctx, e, in, opts...)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
