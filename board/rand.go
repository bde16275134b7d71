package board

// PseudoRand is a xorshift64* generator. It seeds the Zobrist tables so
// position keys are stable across runs, and drives reproducible random
// playouts.
type PseudoRand struct {
	s uint64
}

// defaultSeed replaces a zero seed, which xorshift would never leave.
const defaultSeed uint64 = 0x2545f4914f6cdd1d

func NewPseudoRand() *PseudoRand {
	return &PseudoRand{s: defaultSeed}
}

func (r *PseudoRand) Seed(seed uint64) {
	if seed == 0 {
		seed = defaultSeed
	}
	r.s = seed
}

func (r *PseudoRand) Uint64() uint64 {
	r.s ^= r.s >> 12
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	return r.s * 2685821657736338717
}

// Pick returns a move chosen uniformly from mvs. mvs must not be empty.
func (r *PseudoRand) Pick(mvs []Move) Move {
	return mvs[r.Uint64()%uint64(len(mvs))]
}
