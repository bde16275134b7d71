package game

const (
	DefaultFiftyMoveLimit  = 100
	DefaultRepetitionLimit = 3
)

// policy decides which draw rules end the game. A zero limit disables the
// rule.
type policy struct {
	fiftyMoveLimit       uint16
	repetitionLimit      int
	insufficientMaterial bool
}

type Option func(*policy)

// WithFiftyMoveLimit ends the game once the half-move clock reaches n. Zero
// disables the rule.
func WithFiftyMoveLimit(n uint16) Option {
	return func(p *policy) {
		p.fiftyMoveLimit = n
	}
}

// WithRepetitionLimit ends the game once the same position has occurred n
// times. Zero disables the rule.
func WithRepetitionLimit(n int) Option {
	return func(p *policy) {
		p.repetitionLimit = n
	}
}

func WithInsufficientMaterial(enabled bool) Option {
	return func(p *policy) {
		p.insufficientMaterial = enabled
	}
}

// WithoutDrawRules keeps only checkmate and stalemate as terminal states, as
// node counting requires.
func WithoutDrawRules() Option {
	return func(p *policy) {
		*p = policy{}
	}
}

func newPolicy(opts ...Option) policy {
	p := policy{
		fiftyMoveLimit:       DefaultFiftyMoveLimit,
		repetitionLimit:      DefaultRepetitionLimit,
		insufficientMaterial: true,
	}
	for _, f := range opts {
		f(&p)
	}
	return p
}
