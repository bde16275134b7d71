package position

import (
	"errors"
)

const (
	// MaxComponentScalar is the maximum component scalar the position system supports.
	MaxComponentScalar Pos = 8

	// Invalid marks the absence of a position, e.g. no en passant target.
	Invalid Pos = -1
)

var (
	// ErrInvalidNotation represents an invalid notation error.
	ErrInvalidNotation = errors.New("invalid notation")

	// ErrOutOfBounds represents a file or rank outside the board.
	ErrOutOfBounds = errors.New("position out of bounds")
)

// Pos is a square index in little-endian rank-file order: a1=0, b1=1, ..., h8=63.
type Pos int8

const (
	A1, B1, C1, D1, E1, F1, G1, H1 Pos = 8*iota + 0, 8*iota + 1, 8*iota + 2, 8*iota + 3, 8*iota + 4, 8*iota + 5, 8*iota + 6, 8*iota + 7
	A2, B2, C2, D2, E2, F2, G2, H2
	A3, B3, C3, D3, E3, F3, G3, H3
	A4, B4, C4, D4, E4, F4, G4, H4
	A5, B5, C5, D5, E5, F5, G5, H5
	A6, B6, C6, D6, E6, F6, G6, H6
	A7, B7, C7, D7, E7, F7, G7, H7
	A8, B8, C8, D8, E8, F8, G8, H8
)

const (
	FileA Pos = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Pos = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func NewPos(file, rank int) (Pos, error) {
	if file < 0 || file >= int(MaxComponentScalar) || rank < 0 || rank >= int(MaxComponentScalar) {
		return Invalid, ErrOutOfBounds
	}
	return MaxComponentScalar*Pos(rank) + Pos(file), nil
}

func NewPosFromNotation(n string) (Pos, error) {
	x, y, err := notationToXY(n)
	if err != nil {
		return Invalid, err
	}
	return MaxComponentScalar*y + x, nil
}

// From0x88 converts a 0x88 index back into a position. The caller must have
// checked the index against the 0x88 mask.
func From0x88(i uint8) Pos {
	return Pos(i>>4)*MaxComponentScalar + Pos(i&0x07)
}

// To0x88 returns the 0x88 index of the position: rank in the high nibble,
// file in the low nibble.
func (p Pos) To0x88() uint8 {
	return uint8(p.Y())<<4 | uint8(p.X())
}

func (p Pos) IsValid() bool {
	return p >= 0 && p < MaxComponentScalar*MaxComponentScalar
}

func (p Pos) String() string {
	return p.Notation()
}

func (p Pos) Notation() string {
	if !p.IsValid() {
		return ""
	}
	return string(rune('a'+p.X())) + string(rune('1'+p.Y()))
}

func (p Pos) X() Pos {
	return p % MaxComponentScalar
}

func (p Pos) Y() Pos {
	return p / MaxComponentScalar
}

func notationToXY(n string) (Pos, Pos, error) {
	if len(n) != 2 {
		return 0, 0, ErrInvalidNotation
	}
	pX, err := notationToX(n[0])
	if err != nil {
		return 0, 0, err
	}
	pY, err := notationToY(n[1])
	if err != nil {
		return 0, 0, err
	}
	return pX, pY, nil
}

func notationToX(x byte) (Pos, error) {
	if x < 'a' || x > 'h' {
		return 0, ErrInvalidNotation
	}
	return Pos(x - 'a'), nil
}

func notationToY(y byte) (Pos, error) {
	if y < '1' || y > '8' {
		return 0, ErrInvalidNotation
	}
	return Pos(y - '1'), nil
}

func (p Pos) NotationComponentX() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('a' + p))
}

func (p Pos) NotationComponentY() string {
	if p < 0 || MaxComponentScalar <= p {
		return ""
	}
	return string(rune('0' + p + 1))
}
