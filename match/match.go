// Package match keeps the game of record for matches played between two
// remote peers. The relay hands it opaque move tokens and forwards the
// Outcome to both sides; it never needs to understand the rules.
package match

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/game"
)

var (
	ErrNotFound       = errors.New("match not found")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInvalidRequest = errors.New("invalid request")
)

var validate = validator.New()

type MoveRequest struct {
	MatchID string `json:"matchId" validate:"required,uuid"`
	Side    string `json:"side" validate:"required,oneof=white black"`
	Move    string `json:"move" validate:"required,min=4,max=5"`
}

// Outcome is what both peers receive after an accepted move.
type Outcome struct {
	Move       string `json:"move"`
	State      string `json:"state"`
	DrawReason string `json:"drawReason,omitempty"`
	FEN        string `json:"fen"`
}

type match struct {
	mu sync.Mutex
	g  *game.Game
}

// Registry owns every live match. Moves on one match are serialized by that
// match's lock; distinct matches proceed independently.
type Registry struct {
	mu      sync.RWMutex
	matches map[string]*match
	opts    []game.Option
}

// NewRegistry creates an empty registry; opts set the draw policy of every
// match it creates.
func NewRegistry(opts ...game.Option) *Registry {
	return &Registry{
		matches: make(map[string]*match),
		opts:    opts,
	}
}

// Create starts a match from fen, the standard position when empty, and
// returns its ID.
func (r *Registry) Create(fen string) (string, error) {
	if fen == "" {
		fen = board.DefaultStartingPositionFEN
	}
	g, err := game.Import(fen, r.opts...)
	if err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		id := uuid.New().String()
		if _, exists := r.matches[id]; !exists {
			r.matches[id] = &match{g: g}
			return id, nil
		}
	}
}

func (r *Registry) lookup(id string) (*match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return m, nil
}

// Submit plays req.Move on behalf of req.Side.
func (r *Registry) Submit(req MoveRequest) (Outcome, error) {
	if err := validateRequest(req); err != nil {
		return Outcome{}, err
	}
	side, err := board.ParseSide(req.Side)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	tok, err := board.ParseToken(req.Move)
	if err != nil {
		return Outcome{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	m, err := r.lookup(req.MatchID)
	if err != nil {
		return Outcome{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if turn := m.g.Turn(); turn != side {
		return Outcome{}, fmt.Errorf("%w: %s to move", ErrNotYourTurn, turn)
	}
	mv, err := m.g.ApplyToken(tok)
	if err != nil {
		return Outcome{}, err
	}
	return outcome(m.g, mv.UCI()), nil
}

// Undo takes back the last move of the match.
func (r *Registry) Undo(id string) (Outcome, error) {
	m, err := r.lookup(id)
	if err != nil {
		return Outcome{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.g.Undo(); err != nil {
		return Outcome{}, err
	}
	return outcome(m.g, ""), nil
}

// Get returns the current outcome of the match without playing.
func (r *Registry) Get(id string) (Outcome, error) {
	m, err := r.lookup(id)
	if err != nil {
		return Outcome{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var last string
	if history := m.g.History(); len(history) > 0 {
		last = history[len(history)-1].UCI()
	}
	return outcome(m.g, last), nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(r.matches, id)
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}

func outcome(g *game.Game, move string) Outcome {
	o := Outcome{
		Move:  move,
		State: g.State().String(),
		FEN:   g.FEN(),
	}
	if g.State() == game.StateDraw {
		o.DrawReason = g.DrawReason().String()
	}
	return o
}

func validateRequest(req MoveRequest) error {
	errs := validate.Struct(req)
	if errs == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(errs, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, errs)
	}
	var details strings.Builder
	for _, err := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param()))
		case "min", "max":
			if err.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be %s %s characters", err.Field(), bound(err.Tag()), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be %s %s", err.Field(), bound(err.Tag()), err.Param()))
			}
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return fmt.Errorf("%w: %s", ErrInvalidRequest, details.String())
}

func bound(tag string) string {
	if tag == "min" {
		return "at least"
	}
	return "at most"
}
