package main

import "github.com/daystram/arbiter/uci"

func runUCI() error {
	return uci.NewInterface().Run()
}
