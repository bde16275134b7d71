package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/daystram/arbiter/board"
	"github.com/daystram/arbiter/game"
	"github.com/daystram/arbiter/position"
)

var (
	playBanner = color.New(color.FgCyan, color.Bold)
	playError  = color.New(color.FgRed)
	playResult = color.New(color.FgYellow, color.Bold)
)

var playCompleter = readline.NewPrefixCompleter(
	readline.PcItem("move"),
	readline.PcItem("moves"),
	readline.PcItem("undo"),
	readline.PcItem("fen"),
	readline.PcItem("history"),
	readline.PcItem("new"),
	readline.PcItem("help"),
	readline.PcItem("quit"),
)

// play runs a two-player game on the console, starting from fen.
func play(fen string) error {
	g, err := game.Import(fen)
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "arbiter> ",
		HistoryFile:     ".arbiter_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
		AutoComplete:    playCompleter,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	playBanner.Println("Arbiter console")
	fmt.Println("Type 'help' for commands")
	printGame(g)

	for {
		rl.SetPrompt(fmt.Sprintf("%s> ", strings.ToLower(g.Turn().String())))
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			continue
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "quit", "exit":
			return nil
		case "help":
			fmt.Println("move <uci>    play a move, e.g. e2e4 or e7e8q (the keyword is optional)")
			fmt.Println("moves [sq]    list legal moves, optionally from one square")
			fmt.Println("undo          take back the last move")
			fmt.Println("fen           print the current position")
			fmt.Println("history       print the moves played so far")
			fmt.Println("new [fen]     start over")
		case "moves":
			listMoves(g, args[1:])
		case "undo":
			if err := g.Undo(); err != nil {
				playError.Println(err)
				continue
			}
			printGame(g)
		case "fen":
			fmt.Println(g.FEN())
		case "history":
			var played []string
			for _, mv := range g.History() {
				played = append(played, mv.UCI())
			}
			fmt.Println(strings.Join(played, " "))
		case "new":
			next := board.DefaultStartingPositionFEN
			if len(args) > 1 {
				next = strings.Join(args[1:], " ")
			}
			ng, err := game.Import(next)
			if err != nil {
				playError.Println(err)
				continue
			}
			g = ng
			printGame(g)
		case "move":
			if len(args) < 2 {
				playError.Println("usage: move <uci>")
				continue
			}
			playMove(g, args[1])
		default:
			playMove(g, args[0])
		}
	}
}

func playMove(g *game.Game, s string) {
	tok, err := board.ParseToken(s)
	if err != nil {
		playError.Println(err)
		return
	}
	if _, err := g.ApplyToken(tok); err != nil {
		playError.Println(err)
		return
	}
	printGame(g)
}

func listMoves(g *game.Game, args []string) {
	mvs := g.LegalMoves()
	if len(args) > 0 {
		pos, err := position.NewPosFromNotation(args[0])
		if err != nil {
			playError.Println(err)
			return
		}
		mvs = g.LegalMovesFrom(pos)
	}
	var uci []string
	for _, mv := range mvs {
		uci = append(uci, mv.UCI())
	}
	fmt.Println(strings.Join(uci, " "))
}

func printGame(g *game.Game) {
	var highlight []position.Pos
	if history := g.History(); len(history) > 0 {
		last := history[len(history)-1]
		highlight = append(highlight, last.From, last.To)
	}
	fmt.Println(g.Board().Draw(highlight...))
	switch st := g.State(); {
	case st == game.StateDraw:
		playResult.Printf("%s (%s)\n", st, g.DrawReason())
	case st.IsTerminal():
		playResult.Println(st)
	case st.IsCheck():
		playResult.Printf("%s to move, in check\n", g.Turn())
	default:
		fmt.Printf("%s to move\n", g.Turn())
	}
}
