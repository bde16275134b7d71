package main

import (
	"fmt"
	"log"

	"github.com/daystram/arbiter/bench"
	"github.com/daystram/arbiter/game"
	"github.com/daystram/arbiter/oracle"
)

func perft(depth int, fen string, parallel, divide, stats bool) error {
	log.Printf("============ perft(%d): %s\n", depth, fen)

	out := make(chan string, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for s := range out {
			log.Println(s)
		}
	}()

	var err error
	if stats {
		err = bench.RunStats(depth, fen, out)
	} else {
		err = bench.Run(depth, fen, parallel, divide, out)
	}
	close(out)
	<-done
	return err
}

func verify(depth int, fen, name string) error {
	if depth < 1 {
		depth = 1
	}
	ref, err := oracle.Lookup(name)
	if err != nil {
		return err
	}
	log.Printf("============ verify(%d) against %s: %s\n", depth, ref.Name(), fen)

	g, err := game.Import(fen, game.WithoutDrawRules())
	if err != nil {
		return err
	}
	mismatches, err := oracle.Compare(g, depth, ref)
	if err != nil {
		return err
	}
	for _, m := range mismatches {
		log.Println(m)
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d root moves disagree with %s", len(mismatches), ref.Name())
	}
	log.Println("ok")
	return nil
}
