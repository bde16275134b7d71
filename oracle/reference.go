package oracle

import (
	"fmt"

	goosemg "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"

	"github.com/daystram/arbiter/game"
)

// Dragontooth is backed by dylhunn/dragontoothmg, a magic bitboard generator.
type Dragontooth struct{}

func (Dragontooth) Name() string {
	return "dragontooth"
}

func (Dragontooth) Divide(fen string, depth int) (counts map[string]uint64, err error) {
	// ParseFen panics on malformed input
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse %q: %v", fen, r)
		}
	}()
	counts = make(map[string]uint64)
	if depth < 1 {
		return counts, nil
	}
	b := dragontoothmg.ParseFen(fen)
	for _, mv := range b.GenerateLegalMoves() {
		unapply := b.Apply(mv)
		counts[mv.String()] = dragontoothPerft(&b, depth-1)
		unapply()
	}
	return counts, nil
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	switch depth {
	case 0:
		return 1
	case 1:
		return uint64(len(moves))
	}
	var sum uint64
	for _, mv := range moves {
		unapply := b.Apply(mv)
		sum += dragontoothPerft(b, depth-1)
		unapply()
	}
	return sum
}

// Goose is backed by the GooseEngine move generator.
type Goose struct{}

func (Goose) Name() string {
	return "goose"
}

func (Goose) Divide(fen string, depth int) (map[string]uint64, error) {
	b, err := goosemg.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]uint64)
	for mv, n := range goosemg.PerftDivide(b, depth) {
		counts[mv.String()] = n
	}
	return counts, nil
}

// Notnil is backed by notnil/chess. It is by far the slowest reference and
// only suits shallow depths.
type Notnil struct{}

func (Notnil) Name() string {
	return "notnil"
}

func (Notnil) Divide(fen string, depth int) (map[string]uint64, error) {
	pos, err := notnilPosition(fen)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]uint64)
	if depth < 1 {
		return counts, nil
	}
	for _, mv := range pos.ValidMoves() {
		counts[chess.UCINotation{}.Encode(pos, mv)] = notnilPerft(pos.Update(mv), depth-1)
	}
	return counts, nil
}

func notnilPerft(pos *chess.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := pos.ValidMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var sum uint64
	for _, mv := range moves {
		sum += notnilPerft(pos.Update(mv), depth-1)
	}
	return sum
}

func notnilPosition(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	return chess.NewGame(opt).Position(), nil
}

// Classify reports how notnil/chess sees fen: StateCheckmate, StateStalemate
// or StateInProgress. Check is not told apart from InProgress, and draw
// rules are not consulted.
func Classify(fen string) (game.State, error) {
	pos, err := notnilPosition(fen)
	if err != nil {
		return game.StateUnknown, fmt.Errorf("%w: notnil: %w", ErrReference, err)
	}
	switch pos.Status() {
	case chess.Checkmate:
		return game.StateCheckmate, nil
	case chess.Stalemate:
		return game.StateStalemate, nil
	default:
		return game.StateInProgress, nil
	}
}
