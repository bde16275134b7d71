package uci

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	if err := NewInterface().WithIO(in, &out).Run(); err != nil {
		t.Fatal("unexpected error:", err)
	}
	return out.String()
}

func TestInterface_Run(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		script  []string
		want    []string
		notWant []string
	}{
		{
			name:   "handshake",
			script: []string{"uci", "isready", "quit"},
			want:   []string{"id name Arbiter", "uciok", "readyok"},
		},
		{
			name:   "position with moves",
			script: []string{"position startpos moves e2e4 e7e5 g1f3", "d"},
			want:   []string{"fen: rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", "state: InProgress"},
		},
		{
			name:   "position fen with moves",
			script: []string{"position fen 4k3/8/8/8/8/8/8/R3K3 w Q - 0 1 moves e1c1", "d"},
			want:   []string{"fen: 4k3/8/8/8/8/8/8/2KR4 b - - 1 1"},
		},
		{
			name:   "illegal move keeps previous position",
			script: []string{"position startpos moves e2e4", "position startpos moves e2e5", "d"},
			want:   []string{"fen: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		},
		{
			name:   "checkmate",
			script: []string{"position startpos moves f2f3 e7e5 g2g4 d8h4", "d", "moves"},
			want:   []string{"state: Checkmate"},
		},
		{
			name:   "undo",
			script: []string{"position startpos moves e2e4 e7e5", "undo", "d"},
			want:   []string{"fen: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		},
		{
			name:   "legal moves",
			script: []string{"position fen 7k/8/8/8/8/8/8/K5R1 w - - 0 1", "moves"},
			want:   []string{"a1b1", "a1a2", "a1b2", "g1g8"},
		},
		{
			name:    "no legal moves after draw",
			script:  []string{"position fen 7k/8/8/8/8/8/8/K7 w - - 0 1", "d", "moves"},
			want:    []string{"state: Draw"},
			notWant: []string{"a1b1", "a1a2", "a1b2"},
		},
		{
			name:    "perft",
			script:  []string{"position startpos", "go perft 2"},
			want:    []string{"d=2 nodes=400"},
			notWant: []string{"e2e4: 20"},
		},
		{
			name:    "perft sequential",
			script:  []string{"setoption name ParallelPerft value false", "position startpos", "go perft 2"},
			want:    []string{"d=2 nodes=400"},
			notWant: []string{"e2e4: 20"},
		},
		{
			name:   "perft divide in debug",
			script: []string{"setoption name Debug value true", "position startpos", "go perft 2"},
			want:   []string{"e2e4: 20", "g1f3: 20", "d=2 nodes=400"},
		},
		{
			name:    "search is ignored",
			script:  []string{"go depth 5", "go"},
			notWant: []string{"bestmove"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := run(t, tt.script...)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("missing output: want=%q got=%q", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("unexpected output: %q in %q", w, got)
				}
			}
		})
	}
}
