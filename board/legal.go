package board

import (
	"math"

	"github.com/daystram/arbiter/position"
)

// IsAttacked reports whether any piece of side by could capture on pos. It
// casts rays outward from pos instead of generating moves for by, so it is
// safe to call while generating moves (e.g. king adjacency).
func (b *Board) IsAttacked(pos position.Pos, by Side) bool {
	if !pos.IsValid() {
		return false
	}
	return b.isSquareAttacked(pos.To0x88(), by)
}

func (b *Board) isSquareAttacked(sq uint8, by Side) bool {
	// a pawn of side by attacks sq from sq-pawnCapture[by]
	pawn := NewCell(by, PiecePawn)
	for _, offset := range pawnCapture[by] {
		if from, ok := step(sq, -offset); ok && b.cells[from] == pawn {
			return true
		}
	}

	knight := NewCell(by, PieceKnight)
	for _, offset := range offsetKnight {
		if from, ok := step(sq, offset); ok && b.cells[from] == knight {
			return true
		}
	}

	king := NewCell(by, PieceKing)
	for _, offset := range offsetKing {
		if from, ok := step(sq, offset); ok && b.cells[from] == king {
			return true
		}
	}

	bishop, rook, queen := NewCell(by, PieceBishop), NewCell(by, PieceRook), NewCell(by, PieceQueen)
	for _, offset := range offsetDiagonal {
		if c := b.firstOnRay(sq, offset); c == bishop || c == queen {
			return true
		}
	}
	for _, offset := range offsetLateral {
		if c := b.firstOnRay(sq, offset); c == rook || c == queen {
			return true
		}
	}
	return false
}

func (b *Board) firstOnRay(sq uint8, offset int8) Cell {
	for to, ok := step(sq, offset); ok; to, ok = step(to, offset) {
		if c := b.cells[to]; !c.IsEmpty() {
			return c
		}
	}
	return CellEmpty
}

// IsChecked reports whether the king of s is attacked.
func (b *Board) IsChecked(s Side) bool {
	king := b.kings[s]
	if king == position.Invalid {
		return false
	}
	return b.isSquareAttacked(king.To0x88(), s.Opposite())
}

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool {
	return b.IsChecked(b.turn)
}

// GenerateMoves returns the legal moves of the side to move.
func (b *Board) GenerateMoves() []Move {
	return b.AppendMoves(make([]Move, 0, 64))
}

// AppendMoves appends the legal moves of the side to move to dst. Every
// pseudo-legal move is made on the board, tested for self-check and unmade;
// the board is left exactly as it was.
func (b *Board) AppendMoves(dst []Move) []Move {
	start := len(dst)
	dst = b.AppendPseudoLegalMoves(dst)
	legal := dst[:start]
	for _, mv := range dst[start:] {
		if b.isLegalPseudo(mv) {
			legal = append(legal, mv)
		}
	}
	return legal
}

// HasLegalMoves stops at the first legal move found.
func (b *Board) HasLegalMoves() bool {
	for _, mv := range b.GeneratePseudoLegalMoves() {
		if b.isLegalPseudo(mv) {
			return true
		}
	}
	return false
}

// IsLegal reports whether mv is one of the legal moves of the position.
func (b *Board) IsLegal(mv Move) bool {
	if mv.IsTurn != b.turn {
		return false
	}
	for _, pseudo := range b.GeneratePseudoLegalMoves() {
		if pseudo == mv {
			return b.isLegalPseudo(mv)
		}
	}
	return false
}

func (b *Board) isLegalPseudo(mv Move) bool {
	if d := mv.IsCastle(); d != CastleDirectionUnknown {
		// re-validated here so the filter alone decides castling legality
		if !b.canCastle(d, mv.IsTurn) {
			return false
		}
	}
	meta := b.Meta()
	b.Apply(mv)
	ok := !b.IsChecked(mv.IsTurn)
	b.Revert(mv, meta)
	return ok
}

// Apply makes mv on the board without any legality check. The caller keeps
// the Meta taken before the call to Revert it.
func (b *Board) Apply(mv Move) {
	s := mv.IsTurn
	from, to := mv.From.To0x88(), mv.To.To0x88()

	if b.enPassant != position.Invalid {
		b.hash ^= zobristConstantEnPassant[b.enPassant]
	}
	b.hash ^= zobristConstantCastleRights[b.castleRights]

	switch mv.Flag {
	case MoveFlagCastleRight, MoveFlagCastleLeft:
		hops := posCastling[mv.IsCastle()]
		king := b.remove(from)
		rook := b.remove(hops.rook.To0x88())
		b.place(to, king)
		b.place(hops.rookTo.To0x88(), rook)
	case MoveFlagEnPassant:
		b.remove(enPassantVictim(mv))
		b.place(to, b.remove(from))
	default:
		if mv.IsCapture() {
			b.remove(to)
		}
		b.remove(from)
		if mv.IsPromote != PieceUnknown {
			b.place(to, NewCell(s, mv.IsPromote))
		} else {
			b.place(to, NewCell(s, mv.Piece))
		}
	}

	b.enPassant = position.Invalid
	if mv.Flag == MoveFlagDoublePush {
		b.enPassant = (mv.From + mv.To) / 2
		b.hash ^= zobristConstantEnPassant[b.enPassant]
	}

	b.castleRights &= keepCastleRights[mv.From] & keepCastleRights[mv.To]
	b.hash ^= zobristConstantCastleRights[b.castleRights]

	// clocks saturate; Revert restores them from Meta
	if mv.Piece == PiecePawn || mv.IsCapture() {
		b.halfMoveClock = 0
	} else if b.halfMoveClock < math.MaxUint16 {
		b.halfMoveClock++
	}
	if s == SideBlack && b.fullMoveClock < math.MaxUint16 {
		b.fullMoveClock++
	}

	b.turn = s.Opposite()
	b.hash ^= zobristConstantSideWhite
}

// Revert undoes mv, which must be the last move applied, and restores meta.
func (b *Board) Revert(mv Move, meta Meta) {
	s := mv.IsTurn
	from, to := mv.From.To0x88(), mv.To.To0x88()

	switch mv.Flag {
	case MoveFlagCastleRight, MoveFlagCastleLeft:
		hops := posCastling[mv.IsCastle()]
		king := b.remove(to)
		rook := b.remove(hops.rookTo.To0x88())
		b.place(from, king)
		b.place(hops.rook.To0x88(), rook)
	case MoveFlagEnPassant:
		b.place(from, b.remove(to))
		b.place(enPassantVictim(mv), NewCell(s.Opposite(), PiecePawn))
	default:
		b.remove(to)
		b.place(from, NewCell(s, mv.Piece))
		if mv.IsCapture() {
			b.place(to, NewCell(s.Opposite(), mv.Captured))
		}
	}

	b.turn = s
	b.restore(meta)
}

// enPassantVictim is the square of the pawn removed by an en passant capture:
// beside the capturing pawn, behind the destination.
func enPassantVictim(mv Move) uint8 {
	return position.Pos(mv.From.Y()*Width + mv.To.X()).To0x88()
}
