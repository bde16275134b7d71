package board

import (
	"github.com/daystram/arbiter/position"
)

const (
	Width      = position.MaxComponentScalar
	Height     = position.MaxComponentScalar
	TotalCells = Width * Height

	// cells are laid out 0x88: rank in the high nibble, file in the low one.
	// Any index with a bit of offBoard set lies outside the board.
	totalSlots = 128
	offBoard   = 0x88

	zobristSeed = 0x9E3779B97F4A7C15
)

var (
	DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// 0x88 offsets, added with uint8 wrap-around and checked against offBoard
	offsetDiagonal = [4]int8{0x0f, 0x11, -0x0f, -0x11}
	offsetLateral  = [4]int8{0x10, -0x10, 0x01, -0x01}
	offsetKnight   = [8]int8{0x21, 0x1f, 0x12, 0x0e, -0x0e, -0x12, -0x1f, -0x21}
	offsetKing     = [8]int8{0x10, 0x11, 0x01, -0x0f, -0x10, -0x11, -0x01, 0x0f}

	// pawnPush and pawnCapture are per side; a pawn of side s on sq attacks
	// sq+pawnCapture[s][i].
	pawnPush    = [2 + 1]int8{SideWhite: 0x10, SideBlack: -0x10}
	pawnCapture = [2 + 1][2]int8{SideWhite: {0x0f, 0x11}, SideBlack: {-0x11, -0x0f}}
	pawnStart   = [2 + 1]position.Pos{SideWhite: position.Rank2, SideBlack: position.Rank7}
	pawnPromote = [2 + 1]position.Pos{SideWhite: position.Rank8, SideBlack: position.Rank1}

	zobristConstantPiece        [2 + 1][6 + 1][TotalCells]uint64
	zobristConstantEnPassant    [TotalCells]uint64
	zobristConstantCastleRights [16]uint64
	zobristConstantSideWhite    uint64
)

func init() {
	initZobrist()
}

func initZobrist() {
	r := NewPseudoRand()
	r.Seed(zobristSeed)
	for _, s := range []Side{SideWhite, SideBlack} {
		for _, p := range []Piece{PiecePawn, PieceBishop, PieceKnight, PieceRook, PieceQueen, PieceKing} {
			for pos := position.Pos(0); pos < TotalCells; pos++ {
				zobristConstantPiece[s][p][pos] = r.Uint64()
			}
		}
	}
	for pos := position.Pos(0); pos < TotalCells; pos++ {
		zobristConstantEnPassant[pos] = r.Uint64()
	}
	for i := range zobristConstantCastleRights {
		zobristConstantCastleRights[i] = r.Uint64()
	}
	zobristConstantSideWhite = r.Uint64()
}

func step(sq uint8, offset int8) (uint8, bool) {
	to := sq + uint8(offset)
	return to, to&offBoard == 0
}
