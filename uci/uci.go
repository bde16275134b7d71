package uci

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/daystram/arbiter/bench"
	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/game"
)

var (
	EngineName   = "Arbiter"
	EngineAuthor = "Danny August Ramaputra"

	defaultOptions = options{
		debug:         false,
		parallelPerft: true,
	}
)

type options struct {
	debug         bool
	parallelPerft bool
}

// Interface speaks enough of the UCI protocol to set up positions, play
// moves and run perft. It has no search: a plain "go" is ignored.
type Interface struct {
	game    *game.Game
	options options

	in  io.Reader
	out io.Writer
}

func NewInterface() *Interface {
	return &Interface{
		options: defaultOptions,
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

// WithIO replaces stdin and stdout.
func (i *Interface) WithIO(in io.Reader, out io.Writer) *Interface {
	i.in, i.out = in, out
	return i
}

func (i *Interface) Run() error {
	ctx := context.Background()
	i.reset(ctx)

	reader := bufio.NewReader(i.in)
	for {
		cmd, err := reader.ReadString('\n')
		if err != nil && cmd == "" {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch args := strings.Fields(cmd); {
		case len(args) == 0:
		case args[0] == "uci":
			i.commandUCI(ctx)
		case args[0] == "ucinewgame":
			i.reset(ctx)
		case args[0] == "isready":
			i.commandReady(ctx)
		case args[0] == "setoption":
			i.commandSetOption(ctx, args[1:])
		case args[0] == "position":
			i.commandPosition(ctx, args[1:])
		case args[0] == "d":
			i.commandDraw(ctx)
		case args[0] == "go":
			i.commandGo(ctx, args[1:])
		case args[0] == "moves":
			i.commandMoves(ctx)
		case args[0] == "undo":
			i.commandUndo(ctx)
		case args[0] == "quit":
			return nil
		}
	}
}

func (i *Interface) commandUCI(_ context.Context) {
	i.println(fmt.Sprintf("id name %s", EngineName))
	i.println(fmt.Sprintf("id author %s", EngineAuthor))
	i.println(fmt.Sprintf("option name Debug type check default %v", defaultOptions.debug))
	i.println(fmt.Sprintf("option name ParallelPerft type check default %v", defaultOptions.parallelPerft))
	i.println("uciok")
}

func (i *Interface) commandReady(_ context.Context) {
	if i.game != nil {
		i.println("readyok")
	}
}

func (i *Interface) commandSetOption(_ context.Context, args []string) {
	if len(args) < 4 || args[0] != "name" || args[2] != "value" {
		return
	}
	value, err := strconv.ParseBool(args[3])
	if err != nil {
		return
	}
	switch strings.ToLower(args[1]) {
	case "debug":
		i.options.debug = value
	case "parallelperft":
		i.options.parallelPerft = value
	}
}

// commandPosition handles "startpos|fen <fen> [moves <m1> ...]". On any
// error the previous position is kept.
func (i *Interface) commandPosition(_ context.Context, args []string) {
	if len(args) == 0 {
		return
	}

	var fen string
	rest := args[1:]
	switch args[0] {
	case "fen":
		n := len(rest)
		for idx, a := range rest {
			if a == "moves" {
				n = idx
				break
			}
		}
		fen, rest = strings.Join(rest[:n], " "), rest[n:]
	case "startpos":
		fen = board.DefaultStartingPositionFEN
	default:
		return
	}

	g, err := game.Import(fen)
	if err != nil {
		i.debugf("invalid position: %v", err)
		return
	}
	if len(rest) > 0 && rest[0] == "moves" {
		for _, m := range rest[1:] {
			tok, err := board.ParseToken(m)
			if err == nil {
				_, err = g.ApplyToken(tok)
			}
			if err != nil {
				i.debugf("invalid move %s: %v", m, err)
				return
			}
		}
	}
	i.game = g
}

func (i *Interface) commandDraw(_ context.Context) {
	b := i.game.Board()
	i.println(b.Draw())
	i.println(fmt.Sprintf("fen: %s", b.FEN()))
	i.println(fmt.Sprintf("state: %s", i.game.State()))
	if i.options.debug {
		i.println(b.DebugString())
	}
}

func (i *Interface) commandMoves(_ context.Context) {
	var moves []string
	for _, mv := range i.game.LegalMoves() {
		moves = append(moves, mv.UCI())
	}
	i.println(strings.Join(moves, " "))
}

func (i *Interface) commandUndo(_ context.Context) {
	if err := i.game.Undo(); err != nil {
		i.debugf("%v", err)
	}
}

func (i *Interface) commandGo(_ context.Context, args []string) {
	if len(args) != 2 || args[0] != "perft" {
		return
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil || depth < 0 {
		return
	}

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			i.println(s)
		}
	}()
	_ = bench.Run(depth, i.game.FEN(), i.options.parallelPerft, i.options.debug, out)
	close(out)
	<-done
}

func (i *Interface) reset(ctx context.Context) {
	i.commandPosition(ctx, []string{"startpos"})
}

func (i *Interface) debugf(format string, a ...any) {
	if i.options.debug {
		i.println("info string " + fmt.Sprintf(format, a...))
	}
}

func (i *Interface) println(a ...any) {
	fmt.Fprintln(i.out, a...)
}
