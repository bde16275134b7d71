package board

import "github.com/daystram/arbiter/position"

type CastleDirection uint8

const (
	CastleDirectionUnknown CastleDirection = iota
	CastleDirectionWhiteRight
	CastleDirectionWhiteLeft
	CastleDirectionBlackRight
	CastleDirectionBlackLeft
)

func (d CastleDirection) String() string {
	switch d {
	case CastleDirectionWhiteRight:
		return "White 0-0"
	case CastleDirectionWhiteLeft:
		return "White 0-0-0"
	case CastleDirectionBlackRight:
		return "Black 0-0"
	case CastleDirectionBlackLeft:
		return "Black 0-0-0"
	default:
		return ""
	}
}

func (d CastleDirection) IsWhite() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionWhiteLeft
}

func (d CastleDirection) IsRight() bool {
	return d == CastleDirectionWhiteRight || d == CastleDirectionBlackRight
}

// CastleDirections returns the king side then queen side direction of s.
func CastleDirections(s Side) [2]CastleDirection {
	if s == SideBlack {
		return [2]CastleDirection{CastleDirectionBlackRight, CastleDirectionBlackLeft}
	}
	return [2]CastleDirection{CastleDirectionWhiteRight, CastleDirectionWhiteLeft}
}

// castleHops holds the fixed geometry of one castling direction.
type castleHops struct {
	king, kingTo position.Pos
	rook, rookTo position.Pos
	// empty must be vacant, path must not be attacked (king start included)
	empty []position.Pos
	path  []position.Pos
}

var posCastling = [4 + 1]castleHops{
	CastleDirectionWhiteRight: {
		king: position.E1, kingTo: position.G1,
		rook: position.H1, rookTo: position.F1,
		empty: []position.Pos{position.F1, position.G1},
		path:  []position.Pos{position.E1, position.F1, position.G1},
	},
	CastleDirectionWhiteLeft: {
		king: position.E1, kingTo: position.C1,
		rook: position.A1, rookTo: position.D1,
		empty: []position.Pos{position.D1, position.C1, position.B1},
		path:  []position.Pos{position.E1, position.D1, position.C1},
	},
	CastleDirectionBlackRight: {
		king: position.E8, kingTo: position.G8,
		rook: position.H8, rookTo: position.F8,
		empty: []position.Pos{position.F8, position.G8},
		path:  []position.Pos{position.E8, position.F8, position.G8},
	},
	CastleDirectionBlackLeft: {
		king: position.E8, kingTo: position.C8,
		rook: position.A8, rookTo: position.D8,
		empty: []position.Pos{position.D8, position.C8, position.B8},
		path:  []position.Pos{position.E8, position.D8, position.C8},
	},
}

type CastleRights uint8

const (
	CastleRightsNone CastleRights = 0
	CastleRightsAll  CastleRights = 0b1111
)

var maskCastleRights = [4 + 1]CastleRights{
	CastleDirectionWhiteRight: 0b1000,
	CastleDirectionWhiteLeft:  0b0100,
	CastleDirectionBlackRight: 0b0010,
	CastleDirectionBlackLeft:  0b0001,
}

// keepCastleRights is indexed by square: any move touching that square, from
// or to, clears the rights whose king or rook starts there.
var keepCastleRights = func() [position.MaxComponentScalar * position.MaxComponentScalar]CastleRights {
	var keep [position.MaxComponentScalar * position.MaxComponentScalar]CastleRights
	for i := range keep {
		keep[i] = CastleRightsAll
	}
	keep[position.E1] &^= maskCastleRights[CastleDirectionWhiteRight] | maskCastleRights[CastleDirectionWhiteLeft]
	keep[position.H1] &^= maskCastleRights[CastleDirectionWhiteRight]
	keep[position.A1] &^= maskCastleRights[CastleDirectionWhiteLeft]
	keep[position.E8] &^= maskCastleRights[CastleDirectionBlackRight] | maskCastleRights[CastleDirectionBlackLeft]
	keep[position.H8] &^= maskCastleRights[CastleDirectionBlackRight]
	keep[position.A8] &^= maskCastleRights[CastleDirectionBlackLeft]
	return keep
}()

func (c *CastleRights) Set(d CastleDirection, allow bool) {
	if allow {
		*c |= maskCastleRights[d]
	} else {
		*c &^= maskCastleRights[d]
	}
}

func (c CastleRights) IsAllowed(d CastleDirection) bool {
	return c&maskCastleRights[d] != 0
}

func (c CastleRights) IsSideAllowed(s Side) bool {
	if s == SideWhite {
		return c&(maskCastleRights[CastleDirectionWhiteLeft]|maskCastleRights[CastleDirectionWhiteRight]) != 0
	}
	return c&(maskCastleRights[CastleDirectionBlackLeft]|maskCastleRights[CastleDirectionBlackRight]) != 0
}

// String renders the rights in FEN order, "-" when none remain.
func (c CastleRights) String() string {
	if c == CastleRightsNone {
		return "-"
	}
	var out []byte
	if c.IsAllowed(CastleDirectionWhiteRight) {
		out = append(out, 'K')
	}
	if c.IsAllowed(CastleDirectionWhiteLeft) {
		out = append(out, 'Q')
	}
	if c.IsAllowed(CastleDirectionBlackRight) {
		out = append(out, 'k')
	}
	if c.IsAllowed(CastleDirectionBlackLeft) {
		out = append(out, 'q')
	}
	return string(out)
}
