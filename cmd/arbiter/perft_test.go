package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/oracle"
)

func TestPerft(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen      string
		depth    int
		parallel bool
		divide   bool
		stats    bool
		wantErr  bool
	}{
		{fen: board.DefaultStartingPositionFEN, depth: 2, parallel: true},
		{fen: board.DefaultStartingPositionFEN, depth: 2, divide: true},
		{fen: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", depth: 2, stats: true},
		{fen: "8/8/8/8 w - - 0 1", depth: 1, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("perft(%d): %s", tt.depth, tt.fen), func(t *testing.T) {
			t.Parallel()
			err := perft(tt.depth, tt.fen, tt.parallel, tt.divide, tt.stats)
			if (err != nil) != tt.wantErr {
				t.Errorf("unexpected error: got=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	t.Parallel()
	for _, name := range oracle.Names() {
		name := name
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if err := verify(2, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", name); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}

	if err := verify(1, board.DefaultStartingPositionFEN, "stockfish"); !errors.Is(err, oracle.ErrUnknownReference) {
		t.Errorf("unexpected error: got=%v want=%v", err, oracle.ErrUnknownReference)
	}
}
