package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/game"
)

func movegen(fen string, draw bool) error {
	log.Println("============ movegen")
	g, err := game.Import(fen)
	if err != nil {
		return err
	}
	b := g.Board()
	fmt.Println("to move:", b.Turn())
	fmt.Println(b.Dump())
	fmt.Println(b.Draw())
	fmt.Println(g.State())
	dumpMoves(g.LegalMoves())

	if draw {
		for _, mv := range g.LegalMoves() {
			meta := b.Meta()
			b.Apply(mv)
			fmt.Println(mv)
			fmt.Println(b.Draw(mv.From, mv.To))
			fmt.Println(b.FEN())
			b.Revert(mv, meta)
		}
	}
	return nil
}

func dumpMoves(mvs []board.Move) {
	for i, mv := range mvs {
		fmt.Printf("option %*d: [%s] [%s] %s %s %s => %s (cap=%v) (enp=%v) (cas=%s) (pro=%s)\n",
			len(strconv.Itoa(len(mvs))), i+1, mv.UCI(), mv.Algebra(), mv.IsTurn, mv.Piece, mv.From, mv.To, mv.IsCapture(), mv.IsEnPassant(), mv.IsCastle(), mv.IsPromote)
	}
}
