package bench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/game"
)

// Result holds the leaf statistics of a perft run, in the layout of the
// published reference tables.
type Result struct {
	Nodes      uint64
	Captures   uint64
	EnPassants uint64
	Castles    uint64
	Promotions uint64
	Checks     uint64
	Checkmates uint64
}

func (r *Result) add(o Result) {
	r.Nodes += o.Nodes
	r.Captures += o.Captures
	r.EnPassants += o.EnPassants
	r.Castles += o.Castles
	r.Promotions += o.Promotions
	r.Checks += o.Checks
	r.Checkmates += o.Checkmates
}

type DivideEntry struct {
	Move  string
	Nodes uint64
}

// CountPositions returns the number of leaf positions depth plies below g.
// The game is restored before returning. Draw rules of g cut the tree, so
// reference counts need a game imported WithoutDrawRules.
func CountPositions(g *game.Game, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := g.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var sum uint64
	for _, mv := range moves {
		mustApply(g, mv)
		sum += CountPositions(g, depth-1)
		mustUndo(g)
	}
	return sum
}

// CountPositionsParallel splits the root moves over goroutines, each working
// on its own clone of g.
func CountPositionsParallel(g *game.Game, depth int) uint64 {
	if depth <= 1 {
		return CountPositions(g, depth)
	}
	var sum uint64
	var wg sync.WaitGroup
	for _, mv := range g.LegalMoves() {
		mv := mv
		gg := g.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			mustApply(gg, mv)
			atomic.AddUint64(&sum, CountPositions(gg, depth-1))
		}()
	}
	wg.Wait()
	return sum
}

// Perft counts leaves like CountPositions and classifies the last move
// leading to each of them.
func Perft(g *game.Game, depth int) Result {
	var res Result
	if depth == 0 {
		res.Nodes = 1
		return res
	}
	for _, mv := range g.LegalMoves() {
		mustApply(g, mv)
		if depth == 1 {
			res.add(leaf(g, mv))
		} else {
			res.add(Perft(g, depth-1))
		}
		mustUndo(g)
	}
	return res
}

func leaf(g *game.Game, mv board.Move) Result {
	res := Result{Nodes: 1}
	if mv.IsCapture() {
		res.Captures++
	}
	if mv.IsEnPassant() {
		res.EnPassants++
	}
	if mv.IsCastle() != board.CastleDirectionUnknown {
		res.Castles++
	}
	if mv.IsPromote != board.PieceUnknown {
		res.Promotions++
	}
	if g.State().IsCheck() {
		res.Checks++
	}
	if g.State() == game.StateCheckmate {
		res.Checkmates++
	}
	return res
}

// Divide returns the node count below each root move, sorted by move.
func Divide(g *game.Game, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}
	counts := make(map[string]uint64)
	for _, mv := range g.LegalMoves() {
		mustApply(g, mv)
		counts[mv.UCI()] = CountPositions(g, depth-1)
		mustUndo(g)
	}
	keys := maps.Keys(counts)
	slices.Sort(keys)
	entries := make([]DivideEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, DivideEntry{Move: k, Nodes: counts[k]})
	}
	return entries
}

// Run counts the positions of fen at depth and reports to out: one line per
// root move when verbose, then a summary.
func Run(depth int, fen string, parallel, verbose bool, out chan string) error {
	g, err := game.Import(fen, game.WithoutDrawRules())
	if err != nil {
		return err
	}

	start := time.Now()
	var nodes uint64
	switch {
	case verbose:
		for _, e := range Divide(g, depth) {
			out <- fmt.Sprintf("%s: %d", e.Move, e.Nodes)
			nodes += e.Nodes
		}
	case parallel:
		nodes = CountPositionsParallel(g, depth)
	default:
		nodes = CountPositions(g, depth)
	}
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s (%.3fs elapsed)",
			depth, nodes, rate(nodes, elapsed), elapsed.Seconds())
	return nil
}

// RunStats is Run with the full leaf statistics.
func RunStats(depth int, fen string, out chan string) error {
	g, err := game.Import(fen, game.WithoutDrawRules())
	if err != nil {
		return err
	}

	start := time.Now()
	res := Perft(g, depth)
	elapsed := time.Since(start)

	out <- message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s cap=%d enp=%d cas=%d pro=%d chk=%d mat=%d (%.3fs elapsed)",
			depth, res.Nodes, rate(res.Nodes, elapsed), res.Captures, res.EnPassants, res.Castles,
			res.Promotions, res.Checks, res.Checkmates, elapsed.Seconds())
	return nil
}

func rate[T constraints.Integer](n T, d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(float64(n) / d.Seconds())
}

// The harness only plays moves taken from LegalMoves, so a failure here is a
// bug in the rules, not in the caller.
func mustApply(g *game.Game, mv board.Move) {
	if err := g.Apply(mv); err != nil {
		panic(err)
	}
}

func mustUndo(g *game.Game) {
	if err := g.Undo(); err != nil {
		panic(err)
	}
}
