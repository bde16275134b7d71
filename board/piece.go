package board

type Piece uint8

const (
	PieceUnknown Piece = iota
	PiecePawn
	PieceBishop
	PieceKnight
	PieceRook
	PieceQueen
	PieceKing
)

// PawnPromoteCandidates represents the candidates for pawn promotion.
var PawnPromoteCandidates = [4]Piece{PieceKnight, PieceBishop, PieceRook, PieceQueen}

func (p Piece) String() string {
	return p.Name()
}

func (p Piece) Name() string {
	switch p {
	case PiecePawn:
		return "Pawn"
	case PieceBishop:
		return "Bishop"
	case PieceKnight:
		return "Knight"
	case PieceRook:
		return "Rook"
	case PieceQueen:
		return "Queen"
	case PieceKing:
		return "King"
	default:
		return ""
	}
}

func (p Piece) SymbolAlgebra(s Side) string {
	if p == PiecePawn {
		return ""
	}
	return p.SymbolFEN(s)
}

func (p Piece) SymbolFEN(s Side) string {
	var sym rune
	switch p {
	case PiecePawn:
		sym = 'P'
	case PieceBishop:
		sym = 'B'
	case PieceKnight:
		sym = 'N'
	case PieceRook:
		sym = 'R'
	case PieceQueen:
		sym = 'Q'
	case PieceKing:
		sym = 'K'
	default:
		return ""
	}
	if s == SideBlack {
		sym |= 0x20 // lowercase is +32 uppercase
	}
	return string(sym)
}

func (p Piece) SymbolUnicode(s Side, invert bool) string {
	if invert {
		s = s.Opposite()
	}
	switch s {
	case SideWhite:
		switch p {
		case PiecePawn:
			return "♙"
		case PieceBishop:
			return "♗"
		case PieceKnight:
			return "♘"
		case PieceRook:
			return "♖"
		case PieceQueen:
			return "♕"
		case PieceKing:
			return "♔"
		default:
			return ""
		}
	case SideBlack:
		switch p {
		case PiecePawn:
			return "♟"
		case PieceBishop:
			return "♝"
		case PieceKnight:
			return "♞"
		case PieceRook:
			return "♜"
		case PieceQueen:
			return "♛"
		case PieceKing:
			return "♚"
		default:
			return ""
		}
	default:
		return ""
	}
}

// PieceFromSymbol parses a FEN piece letter.
func PieceFromSymbol(r rune) (Side, Piece) {
	s := SideWhite
	if r >= 'a' && r <= 'z' {
		s = SideBlack
		r &^= 0x20
	}
	switch r {
	case 'P':
		return s, PiecePawn
	case 'B':
		return s, PieceBishop
	case 'N':
		return s, PieceKnight
	case 'R':
		return s, PieceRook
	case 'Q':
		return s, PieceQueen
	case 'K':
		return s, PieceKing
	default:
		return SideUnknown, PieceUnknown
	}
}

// Cell is the content of a single mailbox slot: side in the high nibble,
// piece in the low nibble. The zero Cell is an empty square.
type Cell uint8

const CellEmpty Cell = 0

func NewCell(s Side, p Piece) Cell {
	if s == SideUnknown || p == PieceUnknown {
		return CellEmpty
	}
	return Cell(uint8(s)<<4 | uint8(p))
}

func (c Cell) Side() Side {
	return Side(c >> 4)
}

func (c Cell) Piece() Piece {
	return Piece(c & 0x0f)
}

func (c Cell) IsEmpty() bool {
	return c == CellEmpty
}

func (c Cell) String() string {
	if c.IsEmpty() {
		return "."
	}
	return c.Piece().SymbolFEN(c.Side())
}
