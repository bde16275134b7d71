package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strings"

	"github.com/daystram/arbiter/board"
)

const (
	exitOK = iota
	exitErr
)

var (
	profile = flag.Bool("profile", false, "serve pprof endpoint")

	perftDepth    = flag.Int("perft", 0, "run perft to the given depth")
	perftParallel = flag.Bool("perft.parallel", true, "split perft across root moves")
	perftDivide   = flag.Bool("perft.divide", false, "print node counts per root move")
	perftStats    = flag.Bool("perft.stats", false, "collect capture, castle, promotion, check and mate counts")
	perftVerify   = flag.String("perft.verify", "", "compare perft divide against a reference move generator (dragontooth, goose, notnil)")

	movegenRun  = flag.Bool("movegen", false, "run movegen mode")
	movegenDraw = flag.Bool("movegen.draw", false, "draw applied moves in movegen mode")

	stepRun   = flag.Bool("step", false, "run step mode")
	stepSeed  = flag.Uint64("step.seed", 1, "random seed in step mode")
	stepLimit = flag.Int("step.limit", 5000, "maximum plies in step mode")

	playRun = flag.Bool("play", false, "play a game on the console")
)

func main() {
	flag.Parse()

	if *profile {
		runProfiler()
	}

	err := realMain(flag.Args())
	if err != nil {
		log.Println(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

func runProfiler() {
	go func() {
		addr := "localhost:6060"
		log.Printf("starting pprof endpoint: http://%s/debug/pprof\n", addr)
		_ = http.ListenAndServe(addr, nil)
	}()
}

func realMain(args []string) error {
	fen := board.DefaultStartingPositionFEN
	if len(args) > 0 {
		fen = strings.Join(args, " ")
	}
	switch {
	case *perftVerify != "":
		return verify(*perftDepth, fen, *perftVerify)
	case *perftDepth > 0:
		return perft(*perftDepth, fen, *perftParallel, *perftDivide, *perftStats)
	case *movegenRun:
		return movegen(fen, *movegenDraw)
	case *stepRun:
		return step(fen, *stepSeed, *stepLimit)
	case *playRun:
		return play(fen)
	}

	return runUCI()
}
