package main

import (
	"fmt"
	"log"
	"time"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/game"
)

// step plays random legal moves from fen until the game ends, timing move
// generation and application.
func step(fen string, seed uint64, limit int) error {
	log.Println("============ step")
	var (
		timesGenerateMoves []time.Duration
		timesApply         []time.Duration
	)
	g, err := game.Import(fen)
	if err != nil {
		return err
	}
	r := board.NewPseudoRand()
	r.Seed(seed)

	for ply := 0; ply < limit && g.State().IsRunning(); ply++ {
		t1 := time.Now()
		mvs := g.Board().GenerateMoves()
		timesGenerateMoves = append(timesGenerateMoves, time.Since(t1))
		if len(mvs) == 0 {
			return fmt.Errorf("unexpected move exhaustion: state=%s", g.State())
		}
		mv := r.Pick(mvs)

		t1 = time.Now()
		if err := g.Apply(mv); err != nil {
			return err
		}
		timesApply = append(timesApply, time.Since(t1))

		fmt.Printf("\n===== [#%d] %s: %s\n", ply/2+1, mv.IsTurn, mv)
		fmt.Println(g.Board().Draw(mv.From, mv.To))
		fmt.Println(g.FEN())
	}

	avg := func(ds []time.Duration) time.Duration {
		if len(ds) == 0 {
			return 0
		}
		var s time.Duration
		for _, d := range ds {
			s += d
		}
		return s / time.Duration(len(ds))
	}

	fmt.Println()
	fmt.Println(g.State(), g.DrawReason())
	fmt.Println("genmv:", avg(timesGenerateMoves))
	fmt.Println("apply:", avg(timesApply))
	return nil
}
