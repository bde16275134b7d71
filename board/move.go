package board

import (
	"errors"
	"fmt"

	"github.com/daystram/arbiter/position"
)

var (
	ErrInvalidToken = errors.New("invalid move token")
)

type MoveFlag uint8

const (
	MoveFlagNone MoveFlag = iota
	MoveFlagDoublePush
	MoveFlagEnPassant
	MoveFlagCastleRight
	MoveFlagCastleLeft
	MoveFlagPromote
)

func (f MoveFlag) String() string {
	switch f {
	case MoveFlagDoublePush:
		return "DoublePush"
	case MoveFlagEnPassant:
		return "EnPassant"
	case MoveFlagCastleRight:
		return "CastleRight"
	case MoveFlagCastleLeft:
		return "CastleLeft"
	case MoveFlagPromote:
		return "Promote"
	default:
		return "None"
	}
}

// Move is fully self-describing: it can be applied and reverted without
// looking anything up on the board. Castling moves carry the king's squares.
type Move struct {
	From, To position.Pos
	Piece    Piece

	IsTurn    Side
	Captured  Piece
	Flag      MoveFlag
	IsPromote Piece
}

func (m Move) IsCapture() bool {
	return m.Captured != PieceUnknown
}

func (m Move) IsEnPassant() bool {
	return m.Flag == MoveFlagEnPassant
}

func (m Move) IsCastle() CastleDirection {
	switch m.Flag {
	case MoveFlagCastleRight:
		if m.IsTurn == SideWhite {
			return CastleDirectionWhiteRight
		}
		return CastleDirectionBlackRight
	case MoveFlagCastleLeft:
		if m.IsTurn == SideWhite {
			return CastleDirectionWhiteLeft
		}
		return CastleDirectionBlackLeft
	default:
		return CastleDirectionUnknown
	}
}

func (m Move) String() string {
	return m.Algebra()
}

func (m Move) Algebra() string {
	if d := m.IsCastle(); d != CastleDirectionUnknown {
		if d.IsRight() {
			return "0-0"
		}
		return "0-0-0"
	}
	nt := m.Piece.SymbolAlgebra(SideWhite) // SideWhite because it returns capital symbols
	if m.IsCapture() {
		if m.Piece == PiecePawn {
			nt += m.From.X().NotationComponentX()
		} else {
			nt += m.From.Notation()
		}
		nt += "x"
	}
	nt += m.To.Notation()
	if m.IsPromote != PieceUnknown {
		nt += m.IsPromote.SymbolAlgebra(SideWhite)
	}
	if m.IsEnPassant() {
		nt += " e.p."
	}
	return nt
}

func (m Move) UCI() string {
	return m.From.Notation() + m.To.Notation() + m.IsPromote.SymbolAlgebra(SideBlack)
}

func (m Move) Token() Token {
	return NewToken(m.From, m.To, m.IsPromote)
}

// Token is the transport form of a move: origin, destination and promotion
// kind packed as from(6) | to(6) | promote(3). It carries no rules knowledge
// and is resolved against the legal moves of a position.
type Token uint16

const (
	tokenFromShift    = 0
	tokenToShift      = 6
	tokenPromoteShift = 12
	tokenSquareMask   = 0x3f
	tokenPromoteMask  = 0x07
)

func NewToken(from, to position.Pos, promote Piece) Token {
	return Token(uint16(from)&tokenSquareMask<<tokenFromShift |
		uint16(to)&tokenSquareMask<<tokenToShift |
		uint16(promote)&tokenPromoteMask<<tokenPromoteShift)
}

// ParseToken reads long algebraic (UCI) notation such as "e2e4" or "e7e8q".
func ParseToken(s string) (Token, error) {
	if len(s) != 4 && len(s) != 5 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidToken, s)
	}
	from, err := position.NewPosFromNotation(s[0:2])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	to, err := position.NewPosFromNotation(s[2:4])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	promote := PieceUnknown
	if len(s) == 5 {
		var side Side
		side, promote = PieceFromSymbol(rune(s[4]))
		if side != SideBlack {
			return 0, fmt.Errorf("%w: promotion must be lowercase: %q", ErrInvalidToken, s)
		}
		switch promote {
		case PieceKnight, PieceBishop, PieceRook, PieceQueen:
		default:
			return 0, fmt.Errorf("%w: bad promotion piece: %q", ErrInvalidToken, s)
		}
	}
	return NewToken(from, to, promote), nil
}

func (t Token) From() position.Pos {
	return position.Pos(t >> tokenFromShift & tokenSquareMask)
}

func (t Token) To() position.Pos {
	return position.Pos(t >> tokenToShift & tokenSquareMask)
}

func (t Token) Promote() Piece {
	return Piece(t >> tokenPromoteShift & tokenPromoteMask)
}

func (t Token) UCI() string {
	return t.From().Notation() + t.To().Notation() + t.Promote().SymbolAlgebra(SideBlack)
}

func (t Token) String() string {
	return t.UCI()
}
