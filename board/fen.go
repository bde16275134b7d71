package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/daystram/arbiter/position"
)

// UnmarshalFEN loads fen into b, which is reset first. The clock fields may be
// omitted, in which case they default to "0 1". Positions that could never be
// reached are rejected: a missing or extra king, pawns on a back rank, an en
// passant target with no pawn that just double pushed, castling rights whose
// king or rook left home, or the side not to move standing in check.
func UnmarshalFEN(fen string, b *Board) error {
	if b == nil {
		return fmt.Errorf("%w: nil board", ErrInvalidFEN)
	}
	*b = *newEmptyBoard()

	segments := strings.Fields(fen)
	if len(segments) != 6 && len(segments) != 4 {
		return fmt.Errorf("%w: incorrect number of segments", ErrInvalidFEN)
	}

	rows := strings.Split(segments[0], "/")
	if len(rows) != int(Height) {
		return fmt.Errorf("%w: invalid board configuration", ErrInvalidFEN)
	}
	var kings [2 + 1]int
	for i, row := range rows {
		y := Height - 1 - position.Pos(i)
		x := position.Pos(0)
		for _, cell := range row {
			if cell >= '1' && cell <= '8' {
				x += position.Pos(cell - '0')
				if x > Width {
					return fmt.Errorf("%w: skip out of bounds", ErrInvalidFEN)
				}
				continue
			}
			s, p := PieceFromSymbol(cell)
			if p == PieceUnknown {
				return fmt.Errorf("%w: unknown symbol '%s'", ErrInvalidFEN, string(cell))
			}
			if x >= Width {
				return fmt.Errorf("%w: too many cells on rank %d", ErrInvalidFEN, y+1)
			}
			if p == PiecePawn && (y == position.Rank1 || y == position.Rank8) {
				return fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
			}
			if p == PieceKing {
				kings[s]++
			}
			b.place((y*Width + x).To0x88(), NewCell(s, p))
			x++
		}
		if x != Width {
			return fmt.Errorf("%w: missing cells", ErrInvalidFEN)
		}
	}
	if kings[SideWhite] != 1 || kings[SideBlack] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}

	switch segments[1] {
	case "w":
		b.turn = SideWhite
	case "b":
		b.turn = SideBlack
	default:
		return fmt.Errorf("%w: invalid turn", ErrInvalidFEN)
	}

	if err := b.unmarshalCastleRights(segments[2]); err != nil {
		return err
	}

	if segments[3] != "-" {
		pos, err := position.NewPosFromNotation(segments[3])
		if err != nil {
			return fmt.Errorf("%w: invalid enpassant position: %v", ErrInvalidFEN, err)
		}
		if !b.isEnPassantTarget(pos) {
			return fmt.Errorf("%w: impossible enpassant position %s", ErrInvalidFEN, pos)
		}
		b.enPassant = pos
	}

	if len(segments) == 6 {
		halfMoveClock, err := strconv.ParseUint(segments[4], 10, 16)
		if err != nil {
			return fmt.Errorf("%w: invalid half move clock", ErrInvalidFEN)
		}
		b.halfMoveClock = uint16(halfMoveClock)

		fullMoveClock, err := strconv.ParseUint(segments[5], 10, 16)
		if err != nil || fullMoveClock == 0 {
			return fmt.Errorf("%w: invalid full move clock", ErrInvalidFEN)
		}
		b.fullMoveClock = uint16(fullMoveClock)
	}

	if b.IsChecked(b.turn.Opposite()) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}

	b.hash = b.computeHash()
	return nil
}

func (b *Board) unmarshalCastleRights(segment string) error {
	if segment == "-" {
		return nil
	}
	if len(segment) > 4 {
		return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
	}
	for _, e := range segment {
		var d CastleDirection
		switch e {
		case 'K':
			d = CastleDirectionWhiteRight
		case 'Q':
			d = CastleDirectionWhiteLeft
		case 'k':
			d = CastleDirectionBlackRight
		case 'q':
			d = CastleDirectionBlackLeft
		default:
			return fmt.Errorf("%w: invalid castling rights", ErrInvalidFEN)
		}
		if b.castleRights.IsAllowed(d) {
			return fmt.Errorf("%w: duplicate castling right %c", ErrInvalidFEN, e)
		}
		s := SideWhite
		if !d.IsWhite() {
			s = SideBlack
		}
		hops := posCastling[d]
		if b.CellAt(hops.king) != NewCell(s, PieceKing) || b.CellAt(hops.rook) != NewCell(s, PieceRook) {
			return fmt.Errorf("%w: castling right %c without king and rook at home", ErrInvalidFEN, e)
		}
		b.castleRights.Set(d, true)
	}
	return nil
}

// isEnPassantTarget checks that pos is empty and sits right behind a pawn of
// the side not to move that could have just double pushed.
func (b *Board) isEnPassantTarget(pos position.Pos) bool {
	mover := b.turn.Opposite()
	wantRank := position.Rank3
	if mover == SideBlack {
		wantRank = position.Rank6
	}
	if pos.Y() != wantRank || !b.CellAt(pos).IsEmpty() {
		return false
	}
	pawn, ok := step(pos.To0x88(), pawnPush[mover])
	return ok && b.cells[pawn] == NewCell(mover, PiecePawn)
}

func MarshalFEN(b *Board) string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		skip := 0
		for x := position.Pos(0); x < Width; x++ {
			c := b.cells[(y*Width + x).To0x88()]
			if c.IsEmpty() {
				skip++
				continue
			}
			if skip != 0 {
				_, _ = builder.WriteString(strconv.Itoa(skip))
				skip = 0
			}
			_, _ = builder.WriteString(c.String())
		}
		if skip != 0 {
			_, _ = builder.WriteString(strconv.Itoa(skip))
		}
		if y > 0 {
			_, _ = builder.WriteRune('/')
		}
	}

	_, _ = builder.WriteRune(' ')
	_, _ = builder.WriteString(b.turn.Symbol())
	_, _ = builder.WriteRune(' ')

	_, _ = builder.WriteString(b.castleRights.String())
	_, _ = builder.WriteRune(' ')

	if b.enPassant == position.Invalid {
		_, _ = builder.WriteRune('-')
	} else {
		_, _ = builder.WriteString(b.enPassant.Notation())
	}

	_, _ = builder.WriteString(fmt.Sprintf(" %d %d", b.halfMoveClock, b.fullMoveClock))
	return builder.String()
}

func (b *Board) FEN() string {
	return MarshalFEN(b)
}
