package game

import (
	"errors"
	"testing"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/position"
)

func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		tok, err := board.ParseToken(m)
		if err != nil {
			t.Fatal("unexpected error:", err)
		}
		if _, err := g.ApplyToken(tok); err != nil {
			t.Fatalf("unexpected error playing %s: %v", m, err)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	g := New()
	if g.State() != StateInProgress {
		t.Errorf("unexpected state: got=%s want=%s", g.State(), StateInProgress)
	}
	if got := len(g.LegalMoves()); got != 20 {
		t.Errorf("unexpected move count: got=%d want=%d", got, 20)
	}
	if got := len(g.LegalMovesFrom(position.E2)); got != 2 {
		t.Errorf("unexpected move count from e2: got=%d want=%d", got, 2)
	}
	if g.Turn() != board.SideWhite {
		t.Errorf("unexpected turn: got=%s want=%s", g.Turn(), board.SideWhite)
	}
	if g.FEN() != board.DefaultStartingPositionFEN {
		t.Errorf("unexpected FEN: got=%s want=%s", g.FEN(), board.DefaultStartingPositionFEN)
	}
}

func TestImport(t *testing.T) {
	t.Parallel()
	_, err := Import("8/8/8/8/8/8/8/8 w - - 0 1")
	if !errors.Is(err, ErrImport) || !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrImport)
	}
}

func TestGame_State(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		fen        string
		opts       []Option
		moves      []string
		want       State
		wantReason DrawReason
	}{
		{
			name:  "fool's mate",
			fen:   board.DefaultStartingPositionFEN,
			moves: []string{"f2f3", "e7e5", "g2g4", "d8h4"},
			want:  StateCheckmate,
		},
		{
			name:  "check",
			fen:   board.DefaultStartingPositionFEN,
			moves: []string{"e2e4", "f7f6", "d1h5"},
			want:  StateCheck,
		},
		{
			name:  "stalemate",
			fen:   "7k/8/8/6K1/8/8/5Q2/8 w - - 0 1",
			moves: []string{"f2f7"},
			want:  StateStalemate,
		},
		{
			name:       "fifty move",
			fen:        "4k3/8/8/8/8/8/8/R3K3 w - - 99 60",
			moves:      []string{"a1a2"},
			want:       StateDraw,
			wantReason: DrawReasonFiftyMove,
		},
		{
			name:  "fifty move disabled",
			fen:   "4k3/8/8/8/8/8/8/R3K3 w - - 99 60",
			opts:  []Option{WithFiftyMoveLimit(0)},
			moves: []string{"a1a2"},
			want:  StateInProgress,
		},
		{
			name:  "checkmate beats fifty move",
			fen:   "7k/8/6K1/8/8/8/8/R7 w - - 99 80",
			moves: []string{"a1a8"},
			want:  StateCheckmate,
		},
		{
			name:       "threefold repetition",
			fen:        board.DefaultStartingPositionFEN,
			moves:      []string{"g1f3", "g8f6", "f3g1", "f6g8", "g1f3", "g8f6", "f3g1", "f6g8"},
			want:       StateDraw,
			wantReason: DrawReasonRepetition,
		},
		{
			name:  "twofold repetition",
			fen:   board.DefaultStartingPositionFEN,
			moves: []string{"g1f3", "g8f6", "f3g1", "f6g8"},
			want:  StateInProgress,
		},
		{
			name:       "twofold repetition with lower limit",
			fen:        board.DefaultStartingPositionFEN,
			opts:       []Option{WithRepetitionLimit(2)},
			moves:      []string{"g1f3", "g8f6", "f3g1", "f6g8"},
			want:       StateDraw,
			wantReason: DrawReasonRepetition,
		},
		{
			name:       "insufficient material",
			fen:        "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1",
			moves:      []string{"e1d2"},
			want:       StateDraw,
			wantReason: DrawReasonInsufficientMaterial,
		},
		{
			name:  "insufficient material disabled",
			fen:   "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1",
			opts:  []Option{WithInsufficientMaterial(false)},
			moves: []string{"e1d2"},
			want:  StateInProgress,
		},
		{
			name:  "no draw rules",
			fen:   "4k3/8/8/8/8/8/8/4K3 w - - 120 90",
			opts:  []Option{WithoutDrawRules()},
			moves: []string{"e1e2"},
			want:  StateInProgress,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g, err := Import(tt.fen, tt.opts...)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			play(t, g, tt.moves...)
			if g.State() != tt.want {
				t.Errorf("unexpected state: got=%s want=%s", g.State(), tt.want)
			}
			if g.DrawReason() != tt.wantReason {
				t.Errorf("unexpected draw reason: got=%s want=%s", g.DrawReason(), tt.wantReason)
			}
			if g.State().IsTerminal() && len(g.LegalMoves()) != 0 {
				t.Errorf("unexpected legal moves after game end: %v", g.LegalMoves())
			}
		})
	}
}

func TestGame_GameOver(t *testing.T) {
	t.Parallel()
	g := New()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")
	fen, history := g.FEN(), len(g.History())

	err := g.Apply(board.Move{From: position.A2, To: position.A3, Piece: board.PiecePawn, IsTurn: board.SideWhite})
	if !errors.Is(err, ErrGameOver) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameOver)
	}
	tok, _ := board.ParseToken("a2a3")
	if _, err := g.ApplyToken(tok); !errors.Is(err, ErrGameOver) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrGameOver)
	}
	if g.FEN() != fen || len(g.History()) != history || g.State() != StateCheckmate {
		t.Errorf("game mutated after game over: got=%s want=%s", g.FEN(), fen)
	}

	if err := g.Undo(); err != nil {
		t.Fatal("unexpected error:", err)
	}
	if g.State() != StateInProgress {
		t.Errorf("unexpected state after undo: got=%s want=%s", g.State(), StateInProgress)
	}
}

func TestGame_IllegalMove(t *testing.T) {
	t.Parallel()
	g := New()
	fen := g.FEN()
	tests := []board.Move{
		{From: position.E2, To: position.E5, Piece: board.PiecePawn, IsTurn: board.SideWhite},
		{From: position.E7, To: position.E5, Piece: board.PiecePawn, IsTurn: board.SideBlack, Flag: board.MoveFlagDoublePush},
		{From: position.E1, To: position.G1, Piece: board.PieceKing, IsTurn: board.SideWhite, Flag: board.MoveFlagCastleRight},
		// a legal move with a wrong capture tag is still rejected
		{From: position.E2, To: position.E4, Piece: board.PiecePawn, IsTurn: board.SideWhite, Captured: board.PieceKnight},
	}
	for _, mv := range tests {
		if err := g.Apply(mv); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("unexpected error for %s: got=%v want=%v", mv.UCI(), err, ErrIllegalMove)
		}
	}
	if g.FEN() != fen {
		t.Errorf("game mutated by illegal move: got=%s want=%s", g.FEN(), fen)
	}
}

func TestGame_Undo(t *testing.T) {
	t.Parallel()
	g := New()
	if err := g.Undo(); !errors.Is(err, ErrNoHistory) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrNoHistory)
	}

	fens := []string{
		board.DefaultStartingPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
	}
	for _, fen := range fens {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()
			g, err := Import(fen)
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			before, state := g.Board(), g.State()
			for _, mv := range g.LegalMoves() {
				if err := g.Apply(mv); err != nil {
					t.Fatalf("unexpected error applying %s: %v", mv.UCI(), err)
				}
				if err := g.Undo(); err != nil {
					t.Fatalf("unexpected error undoing %s: %v", mv.UCI(), err)
				}
				if after := g.Board(); *after != *before {
					t.Errorf("unexpected board after undoing %s: got=%s want=%s", mv.UCI(), after.FEN(), before.FEN())
				}
				if g.State() != state || len(g.History()) != 0 {
					t.Errorf("unexpected state after undoing %s: got=%s want=%s", mv.UCI(), g.State(), state)
				}
			}
		})
	}
}

func TestGame_EnPassantWindow(t *testing.T) {
	t.Parallel()
	capture, _ := board.ParseToken("e5d6")

	g := New()
	play(t, g, "e2e4", "a7a6", "e4e5", "d7d5")
	if ep, ok := g.Board().EnPassant(); !ok || ep != position.D6 {
		t.Errorf("unexpected en passant target: got=%s want=%s", ep, position.D6)
	}
	gg := g.Clone()
	mv, err := gg.ApplyToken(capture)
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !mv.IsEnPassant() {
		t.Errorf("unexpected move flag: got=%s want=%s", mv.Flag, board.MoveFlagEnPassant)
	}
	if _, p := gg.Board().PieceAt(position.D5); p != board.PieceUnknown {
		t.Errorf("captured pawn left on d5: got=%s", p)
	}

	play(t, g, "b1c3", "b8c6")
	if _, ok := g.Board().EnPassant(); ok {
		t.Error("en passant target not cleared")
	}
	if _, err := g.ApplyToken(capture); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrIllegalMove)
	}
}

func TestGame_CastleRightsNeverRestored(t *testing.T) {
	t.Parallel()
	g, err := Import("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	play(t, g, "h1g1", "a8b8", "g1h1", "b8a8")

	rights := g.Board().CastleRights()
	if rights.IsAllowed(board.CastleDirectionWhiteRight) || rights.IsAllowed(board.CastleDirectionBlackLeft) {
		t.Errorf("unexpected castle rights: got=%s want=Qk", rights)
	}
	if got := rights.String(); got != "Qk" {
		t.Errorf("unexpected castle rights: got=%s want=Qk", got)
	}
	tok, _ := board.ParseToken("e1g1")
	if _, err := g.ApplyToken(tok); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrIllegalMove)
	}
	tok, _ = board.ParseToken("e1c1")
	if _, err := g.ApplyToken(tok); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGame_Playout(t *testing.T) {
	t.Parallel()
	r := board.NewPseudoRand()
	r.Seed(0x5eed)
	for round := 0; round < 20; round++ {
		g := New(WithoutDrawRules())
		for ply := 0; ply < 200 && !g.State().IsTerminal(); ply++ {
			moves := g.LegalMoves()
			for _, mv := range moves {
				b := g.Board()
				b.Apply(mv)
				if b.IsChecked(mv.IsTurn) {
					t.Fatalf("legal move %s leaves king in check in %s", mv.UCI(), g.FEN())
				}
			}
			if err := g.Apply(r.Pick(moves)); err != nil {
				t.Fatal("unexpected error:", err)
			}
		}
		for len(g.History()) > 0 {
			if err := g.Undo(); err != nil {
				t.Fatal("unexpected error:", err)
			}
		}
		if g.FEN() != board.DefaultStartingPositionFEN {
			t.Errorf("unexpected FEN after undoing playout: got=%s want=%s", g.FEN(), board.DefaultStartingPositionFEN)
		}
	}
}

func TestGame_Clone(t *testing.T) {
	t.Parallel()
	g := New()
	gg := g.Clone()
	play(t, gg, "e2e4")
	if g.FEN() != board.DefaultStartingPositionFEN || len(g.History()) != 0 {
		t.Errorf("clone shares state: got=%s", g.FEN())
	}
	if len(gg.History()) != 1 {
		t.Errorf("unexpected history: got=%d want=%d", len(gg.History()), 1)
	}
}
