// Package oracle cross-checks move generation against independent move
// generators. A disagreement in per-move node counts points at the subtree
// holding the bug.
package oracle

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/daystram/arbiter/bench"
	"github.com/daystram/arbiter/game"
)

var (
	ErrUnknownReference = errors.New("unknown reference")
	ErrReference        = errors.New("reference failed")
)

// Reference is a third-party move generator able to split a perft count by
// root move. Moves are keyed by their UCI text.
type Reference interface {
	Name() string
	Divide(fen string, depth int) (map[string]uint64, error)
}

var references = map[string]func() Reference{
	"dragontooth": func() Reference { return Dragontooth{} },
	"goose":       func() Reference { return Goose{} },
	"notnil":      func() Reference { return Notnil{} },
}

// Names lists the references accepted by Lookup.
func Names() []string {
	names := maps.Keys(references)
	slices.Sort(names)
	return names
}

func Lookup(name string) (Reference, error) {
	f, ok := references[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q, want one of %s", ErrUnknownReference, name, strings.Join(Names(), ", "))
	}
	return f(), nil
}

// Mismatch is a root move whose subtree size differs. A move only one side
// generates shows up with a zero count on the other.
type Mismatch struct {
	Move string
	Got  uint64
	Want uint64
}

func (m Mismatch) String() string {
	switch {
	case m.Got == 0:
		return fmt.Sprintf("%s: missing, want=%d", m.Move, m.Want)
	case m.Want == 0:
		return fmt.Sprintf("%s: got=%d, not generated by reference", m.Move, m.Got)
	default:
		return fmt.Sprintf("%s: got=%d want=%d", m.Move, m.Got, m.Want)
	}
}

// Compare divides g at depth and checks every root move against ref. The
// game must not carry draw rules for the counts to be comparable.
func Compare(g *game.Game, depth int, ref Reference) ([]Mismatch, error) {
	want, err := ref.Divide(g.FEN(), depth)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReference, ref.Name(), err)
	}
	got := make(map[string]uint64)
	for _, e := range bench.Divide(g, depth) {
		got[e.Move] = e.Nodes
	}

	moves := maps.Keys(got)
	for mv := range want {
		if _, ok := got[mv]; !ok {
			moves = append(moves, mv)
		}
	}
	slices.Sort(moves)

	var mismatches []Mismatch
	for _, mv := range moves {
		if got[mv] != want[mv] {
			mismatches = append(mismatches, Mismatch{Move: mv, Got: got[mv], Want: want[mv]})
		}
	}
	return mismatches, nil
}
