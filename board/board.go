package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/daystram/arbiter/position"
)

var (
	ErrInvalidFEN = errors.New("invalid fen")
)

// Board is a 0x88 mailbox: one slot per square, most of them empty. It holds
// no references, so a plain assignment is a full copy and two boards can be
// compared with ==.
type Board struct {
	cells [totalSlots]Cell
	kings [2 + 1]position.Pos

	turn          Side
	castleRights  CastleRights
	enPassant     position.Pos
	halfMoveClock uint16
	fullMoveClock uint16
	hash          uint64
}

// Meta is the ancillary state needed to invert a move: everything except
// piece placement and side to move.
type Meta struct {
	castleRights  CastleRights
	enPassant     position.Pos
	halfMoveClock uint16
	fullMoveClock uint16
	hash          uint64
}

func (m Meta) CastleRights() CastleRights {
	return m.castleRights
}

func (m Meta) EnPassant() position.Pos {
	return m.enPassant
}

func (m Meta) HalfMoveClock() uint16 {
	return m.halfMoveClock
}

type boardConfig struct {
	fen string
}

type BoardOption func(*boardConfig)

func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{
		fen: DefaultStartingPositionFEN,
	}
	for _, f := range opts {
		f(cfg)
	}

	b := newEmptyBoard()
	if err := UnmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	return b, nil
}

func newEmptyBoard() *Board {
	return &Board{
		kings:         [2 + 1]position.Pos{position.Invalid, position.Invalid, position.Invalid},
		enPassant:     position.Invalid,
		fullMoveClock: 1,
	}
}

// ======================================================= storage

// CellAt returns the content of pos, CellEmpty for an empty or invalid square.
func (b *Board) CellAt(pos position.Pos) Cell {
	if !pos.IsValid() {
		return CellEmpty
	}
	return b.cells[pos.To0x88()]
}

func (b *Board) PieceAt(pos position.Pos) (Side, Piece) {
	c := b.CellAt(pos)
	return c.Side(), c.Piece()
}

// Set overwrites pos with c, keeping the hash and king cache in sync. It does
// not check legality.
func (b *Board) Set(pos position.Pos, c Cell) {
	if !pos.IsValid() {
		return
	}
	sq := pos.To0x88()
	b.remove(sq)
	if !c.IsEmpty() {
		b.place(sq, c)
	}
}

func (b *Board) KingPos(s Side) position.Pos {
	return b.kings[s]
}

func (b *Board) place(sq uint8, c Cell) {
	pos := position.From0x88(sq)
	b.cells[sq] = c
	b.hash ^= zobristConstantPiece[c.Side()][c.Piece()][pos]
	if c.Piece() == PieceKing {
		b.kings[c.Side()] = pos
	}
}

func (b *Board) remove(sq uint8) Cell {
	c := b.cells[sq]
	if c.IsEmpty() {
		return c
	}
	pos := position.From0x88(sq)
	b.cells[sq] = CellEmpty
	b.hash ^= zobristConstantPiece[c.Side()][c.Piece()][pos]
	if c.Piece() == PieceKing && b.kings[c.Side()] == pos {
		b.kings[c.Side()] = position.Invalid
	}
	return c
}

// ======================================================= meta

func (b *Board) Turn() Side {
	return b.turn
}

func (b *Board) CastleRights() CastleRights {
	return b.castleRights
}

func (b *Board) EnPassant() (position.Pos, bool) {
	return b.enPassant, b.enPassant != position.Invalid
}

func (b *Board) HalfMoveClock() uint16 {
	return b.halfMoveClock
}

func (b *Board) FullMoveClock() uint16 {
	return b.fullMoveClock
}

// Hash is the Zobrist key of the position: placement, side to move, castling
// rights and en passant target.
func (b *Board) Hash() uint64 {
	return b.hash
}

// PositionKey identifies the position for repetition detection; clocks are
// not part of it.
func (b *Board) PositionKey() uint64 {
	return b.hash
}

func (b *Board) Meta() Meta {
	return Meta{
		castleRights:  b.castleRights,
		enPassant:     b.enPassant,
		halfMoveClock: b.halfMoveClock,
		fullMoveClock: b.fullMoveClock,
		hash:          b.hash,
	}
}

func (b *Board) restore(m Meta) {
	b.castleRights = m.castleRights
	b.enPassant = m.enPassant
	b.halfMoveClock = m.halfMoveClock
	b.fullMoveClock = m.fullMoveClock
	b.hash = m.hash
}

func (b *Board) computeHash() uint64 {
	var h uint64
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		if c := b.cells[pos.To0x88()]; !c.IsEmpty() {
			h ^= zobristConstantPiece[c.Side()][c.Piece()][pos]
		}
	}
	if b.turn == SideWhite {
		h ^= zobristConstantSideWhite
	}
	h ^= zobristConstantCastleRights[b.castleRights]
	if b.enPassant != position.Invalid {
		h ^= zobristConstantEnPassant[b.enPassant]
	}
	return h
}

// InsufficientMaterial reports positions where neither side can mate: bare
// kings, a single minor piece, or bishops that all stand on one square color.
func (b *Board) InsufficientMaterial() bool {
	var minors, knights int
	bishopColors := [2]bool{}
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		switch b.cells[pos.To0x88()].Piece() {
		case PiecePawn, PieceRook, PieceQueen:
			return false
		case PieceKnight:
			minors++
			knights++
		case PieceBishop:
			minors++
			bishopColors[(pos.X()+pos.Y())%2] = true
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && !(bishopColors[0] && bishopColors[1])
}

// ======================================================= DEBUG

func (b *Board) Clone() *Board {
	bb := *b
	return &bb
}

func (b *Board) Dump() string {
	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n")
		_, _ = builder.WriteString(fmt.Sprintf(" %d |", y+1))
		for x := position.Pos(0); x < Width; x++ {
			s, p := b.PieceAt(y*Width + x)
			sym := p.SymbolFEN(s)
			if s == SideUnknown {
				sym = " "
			}
			_, _ = builder.WriteString(fmt.Sprintf(" %s |", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   +---+---+---+---+---+---+---+---+\n   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(fmt.Sprintf("  %s ", x.NotationComponentX()))
	}
	return builder.String()
}

var (
	drawLight = color.New(color.FgBlack, color.BgHiGreen)
	drawDark  = color.New(color.FgBlack, color.BgGreen)
	drawLabel = color.New(color.Bold)
)

// Draw renders the board with colored squares, highlighting the given
// positions (e.g. the destinations of a selected piece).
func (b *Board) Draw(highlight ...position.Pos) string {
	marked := [TotalCells]bool{}
	for _, pos := range highlight {
		if pos.IsValid() {
			marked[pos] = true
		}
	}

	builder := strings.Builder{}
	for y := position.Pos(Height) - 1; y >= 0; y-- {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %d ", y+1))
		for x := position.Pos(0); x < Width; x++ {
			s, p := b.PieceAt(y*Width + x)
			sym := p.SymbolUnicode(s, false)
			if p == PieceUnknown {
				sym = " "
				if marked[y*Width+x] {
					sym = "·"
				}
			}
			cell := drawDark
			if (x+y)%2 == 1 {
				cell = drawLight
			}
			_, _ = builder.WriteString(cell.Sprintf(" %s ", sym))
		}
		_, _ = builder.WriteString("\n")
	}
	_, _ = builder.WriteString("   ")
	for x := position.Pos(0); x < Width; x++ {
		_, _ = builder.WriteString(drawLabel.Sprintf(" %s ", x.NotationComponentX()))
	}
	return builder.String()
}

func (b *Board) DebugString() string {
	ep := "-"
	if b.enPassant != position.Invalid {
		ep = b.enPassant.Notation()
	}
	return fmt.Sprintf("cast: %s\nenps: %s\nhalf: %4d\nfull: %4d\nhash: %016x", b.castleRights, ep, b.halfMoveClock, b.fullMoveClock, b.hash)
}
