package board

import (
	"github.com/daystram/arbiter/position"
)

// moveGenerator appends the pseudo-legal moves of the piece on sq.
type moveGenerator func(b *Board, dst []Move, sq uint8, s Side) []Move

var moveGenerators [6 + 1]moveGenerator

func init() {
	moveGenerators = [6 + 1]moveGenerator{
		PiecePawn:   appendPawnMoves,
		PieceBishop: appendBishopMoves,
		PieceKnight: appendKnightMoves,
		PieceRook:   appendRookMoves,
		PieceQueen:  appendQueenMoves,
		PieceKing:   appendKingMoves,
	}
}

// GeneratePseudoLegalMoves returns the moves of the side to move that respect
// movement and blocking but may leave its own king in check. Castling is the
// exception: it is only generated when the king does not cross attacked
// squares.
func (b *Board) GeneratePseudoLegalMoves() []Move {
	return b.AppendPseudoLegalMoves(make([]Move, 0, 64))
}

func (b *Board) AppendPseudoLegalMoves(dst []Move) []Move {
	s := b.turn
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		sq := pos.To0x88()
		c := b.cells[sq]
		if c.IsEmpty() || c.Side() != s {
			continue
		}
		dst = moveGenerators[c.Piece()](b, dst, sq, s)
	}
	return b.appendCastleMoves(dst, s)
}

func appendPawnMoves(b *Board, dst []Move, sq uint8, s Side) []Move {
	from := position.From0x88(sq)

	if one, ok := step(sq, pawnPush[s]); ok && b.cells[one].IsEmpty() {
		dst = appendPawnAdvance(dst, s, from, position.From0x88(one), PieceUnknown)
		if from.Y() == pawnStart[s] {
			if two, ok := step(one, pawnPush[s]); ok && b.cells[two].IsEmpty() {
				dst = append(dst, Move{
					From:   from,
					To:     position.From0x88(two),
					Piece:  PiecePawn,
					IsTurn: s,
					Flag:   MoveFlagDoublePush,
				})
			}
		}
	}

	for _, offset := range pawnCapture[s] {
		to, ok := step(sq, offset)
		if !ok {
			continue
		}
		target := b.cells[to]
		toPos := position.From0x88(to)
		switch {
		case !target.IsEmpty() && target.Side() != s:
			dst = appendPawnAdvance(dst, s, from, toPos, target.Piece())
		case target.IsEmpty() && toPos == b.enPassant:
			dst = append(dst, Move{
				From:     from,
				To:       toPos,
				Piece:    PiecePawn,
				IsTurn:   s,
				Captured: PiecePawn,
				Flag:     MoveFlagEnPassant,
			})
		}
	}
	return dst
}

// appendPawnAdvance expands a pawn reaching the last rank into one move per
// promotion candidate.
func appendPawnAdvance(dst []Move, s Side, from, to position.Pos, captured Piece) []Move {
	if to.Y() != pawnPromote[s] {
		return append(dst, Move{From: from, To: to, Piece: PiecePawn, IsTurn: s, Captured: captured})
	}
	for _, prom := range PawnPromoteCandidates {
		dst = append(dst, Move{
			From:      from,
			To:        to,
			Piece:     PiecePawn,
			IsTurn:    s,
			Captured:  captured,
			Flag:      MoveFlagPromote,
			IsPromote: prom,
		})
	}
	return dst
}

func appendBishopMoves(b *Board, dst []Move, sq uint8, s Side) []Move {
	return b.appendRays(dst, sq, s, PieceBishop, offsetDiagonal[:])
}

func appendRookMoves(b *Board, dst []Move, sq uint8, s Side) []Move {
	return b.appendRays(dst, sq, s, PieceRook, offsetLateral[:])
}

func appendQueenMoves(b *Board, dst []Move, sq uint8, s Side) []Move {
	dst = b.appendRays(dst, sq, s, PieceQueen, offsetDiagonal[:])
	return b.appendRays(dst, sq, s, PieceQueen, offsetLateral[:])
}

func appendKnightMoves(b *Board, dst []Move, sq uint8, s Side) []Move {
	return b.appendSteps(dst, sq, s, PieceKnight, offsetKnight[:])
}

func appendKingMoves(b *Board, dst []Move, sq uint8, s Side) []Move {
	return b.appendSteps(dst, sq, s, PieceKing, offsetKing[:])
}

// appendRays walks each ray until the edge or a piece; an enemy piece is
// included as a capture, a friendly one is not.
func (b *Board) appendRays(dst []Move, sq uint8, s Side, p Piece, offsets []int8) []Move {
	from := position.From0x88(sq)
	for _, offset := range offsets {
		for to, ok := step(sq, offset); ok; to, ok = step(to, offset) {
			target := b.cells[to]
			if target.IsEmpty() {
				dst = append(dst, Move{From: from, To: position.From0x88(to), Piece: p, IsTurn: s})
				continue
			}
			if target.Side() != s {
				dst = append(dst, Move{From: from, To: position.From0x88(to), Piece: p, IsTurn: s, Captured: target.Piece()})
			}
			break
		}
	}
	return dst
}

func (b *Board) appendSteps(dst []Move, sq uint8, s Side, p Piece, offsets []int8) []Move {
	from := position.From0x88(sq)
	for _, offset := range offsets {
		to, ok := step(sq, offset)
		if !ok {
			continue
		}
		target := b.cells[to]
		if !target.IsEmpty() && target.Side() == s {
			continue
		}
		dst = append(dst, Move{From: from, To: position.From0x88(to), Piece: p, IsTurn: s, Captured: target.Piece()})
	}
	return dst
}

func (b *Board) appendCastleMoves(dst []Move, s Side) []Move {
	if !b.castleRights.IsSideAllowed(s) {
		return dst
	}
	for i, d := range CastleDirections(s) {
		if !b.canCastle(d, s) {
			continue
		}
		flag := MoveFlagCastleRight
		if i == 1 {
			flag = MoveFlagCastleLeft
		}
		hops := posCastling[d]
		dst = append(dst, Move{
			From:   hops.king,
			To:     hops.kingTo,
			Piece:  PieceKing,
			IsTurn: s,
			Flag:   flag,
		})
	}
	return dst
}

// canCastle checks the right, the pieces on their home squares, the empty
// squares between them and that the king never stands on an attacked square.
func (b *Board) canCastle(d CastleDirection, s Side) bool {
	if !b.castleRights.IsAllowed(d) {
		return false
	}
	hops := posCastling[d]
	if b.cells[hops.king.To0x88()] != NewCell(s, PieceKing) || b.cells[hops.rook.To0x88()] != NewCell(s, PieceRook) {
		return false
	}
	for _, pos := range hops.empty {
		if !b.cells[pos.To0x88()].IsEmpty() {
			return false
		}
	}
	for _, pos := range hops.path {
		if b.IsAttacked(pos, s.Opposite()) {
			return false
		}
	}
	return true
}
