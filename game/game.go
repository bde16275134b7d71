package game

import (
	"errors"
	"fmt"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game over")
	ErrNoHistory   = errors.New("no move to undo")
	ErrImport      = errors.New("cannot import position")
)

// HistoryEntry is what Undo needs to invert a move exactly.
type HistoryEntry struct {
	Move board.Move
	Meta board.Meta
}

// Game is a single timeline of play. It is not safe for concurrent use;
// callers sharing one must serialize access.
type Game struct {
	board   *board.Board
	history []HistoryEntry
	// keys[i] is the position key before history[i]; the last one is the
	// current position
	keys []uint64

	legal      []board.Move
	state      State
	drawReason DrawReason
	policy     policy
}

// New starts a game from the standard initial position.
func New(opts ...Option) *Game {
	g, err := Import(board.DefaultStartingPositionFEN, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Import starts a game from a FEN position.
func Import(fen string, opts ...Option) (*Game, error) {
	b, err := board.NewBoard(board.WithFEN(fen))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImport, err)
	}
	g := &Game{
		board:  b,
		keys:   []uint64{b.PositionKey()},
		policy: newPolicy(opts...),
	}
	g.classify()
	return g, nil
}

// LegalMoves returns the moves the side to move may play. It is empty once
// the game is over.
func (g *Game) LegalMoves() []board.Move {
	if g.state.IsTerminal() {
		return nil
	}
	moves := make([]board.Move, len(g.legal))
	copy(moves, g.legal)
	return moves
}

// LegalMovesFrom returns the legal moves of the piece standing on pos.
func (g *Game) LegalMovesFrom(pos position.Pos) []board.Move {
	if g.state.IsTerminal() {
		return nil
	}
	var moves []board.Move
	for _, mv := range g.legal {
		if mv.From == pos {
			moves = append(moves, mv)
		}
	}
	return moves
}

// Apply plays mv, which must be one of LegalMoves. The game is left untouched
// on error.
func (g *Game) Apply(mv board.Move) error {
	if g.state.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}
	if !g.isLegal(mv) {
		return fmt.Errorf("%w: %s", ErrIllegalMove, mv.UCI())
	}
	g.apply(mv)
	return nil
}

// ApplyToken resolves tok against the legal moves and plays the matching one.
func (g *Game) ApplyToken(tok board.Token) (board.Move, error) {
	if g.state.IsTerminal() {
		return board.Move{}, fmt.Errorf("%w: %s", ErrGameOver, g.state)
	}
	for _, mv := range g.legal {
		if mv.Token() == tok {
			g.apply(mv)
			return mv, nil
		}
	}
	return board.Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, tok.UCI())
}

func (g *Game) apply(mv board.Move) {
	g.history = append(g.history, HistoryEntry{Move: mv, Meta: g.board.Meta()})
	g.board.Apply(mv)
	g.keys = append(g.keys, g.board.PositionKey())
	g.classify()
}

// Undo takes back the last move, reopening a finished game if needed.
func (g *Game) Undo() error {
	if len(g.history) == 0 {
		return ErrNoHistory
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	g.keys = g.keys[:len(g.keys)-1]
	g.board.Revert(last.Move, last.Meta)
	g.classify()
	return nil
}

func (g *Game) isLegal(mv board.Move) bool {
	for _, legal := range g.legal {
		if legal == mv {
			return true
		}
	}
	return false
}

// classify refreshes the legal move cache and the state. Checkmate and
// stalemate take precedence over draw rules, which take precedence over
// check.
func (g *Game) classify() {
	g.legal = g.board.AppendMoves(g.legal[:0])
	g.drawReason = DrawReasonNone
	inCheck := g.board.InCheck()

	switch {
	case len(g.legal) == 0 && inCheck:
		g.state = StateCheckmate
	case len(g.legal) == 0:
		g.state = StateStalemate
	case g.drawn():
		g.state = StateDraw
	case inCheck:
		g.state = StateCheck
	default:
		g.state = StateInProgress
	}
}

func (g *Game) drawn() bool {
	p := g.policy
	switch {
	case p.fiftyMoveLimit != 0 && g.board.HalfMoveClock() >= p.fiftyMoveLimit:
		g.drawReason = DrawReasonFiftyMove
	case p.repetitionLimit != 0 && g.Repetitions() >= p.repetitionLimit:
		g.drawReason = DrawReasonRepetition
	case p.insufficientMaterial && g.board.InsufficientMaterial():
		g.drawReason = DrawReasonInsufficientMaterial
	}
	return g.drawReason != DrawReasonNone
}

// Repetitions counts how many times the current position has occurred,
// itself included. Only positions since the last pawn move or capture can
// repeat, and only every other ply.
func (g *Game) Repetitions() int {
	current := len(g.keys) - 1
	window := int(g.board.HalfMoveClock())
	if window > current {
		window = current
	}
	count := 1
	for i := current - 2; i >= current-window; i -= 2 {
		if g.keys[i] == g.keys[current] {
			count++
		}
	}
	return count
}

func (g *Game) State() State {
	return g.state
}

// DrawReason tells which rule ended the game when State is StateDraw.
func (g *Game) DrawReason() DrawReason {
	return g.drawReason
}

func (g *Game) Turn() board.Side {
	return g.board.Turn()
}

func (g *Game) InCheck() bool {
	return g.state.IsCheck()
}

func (g *Game) FEN() string {
	return g.board.FEN()
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board {
	return g.board.Clone()
}

// History returns the played moves, oldest first.
func (g *Game) History() []board.Move {
	moves := make([]board.Move, len(g.history))
	for i, entry := range g.history {
		moves[i] = entry.Move
	}
	return moves
}

// Clone returns an independent copy sharing nothing with g.
func (g *Game) Clone() *Game {
	gg := *g
	gg.board = g.board.Clone()
	gg.history = append([]HistoryEntry(nil), g.history...)
	gg.keys = append([]uint64(nil), g.keys...)
	gg.legal = append([]board.Move(nil), g.legal...)
	return &gg
}
