package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/cardroomlabs/holdem/internal/deck"
	"github.com/cardroomlabs/holdem/internal/display"
	"github.com/cardroomlabs/holdem/internal/evaluator"
)

type CLI struct {
	Hand       string `arg:"" help:"Hole cards, e.g. 'AhKh'"`
	Board      string `short:"b" help:"Community cards dealt so far, e.g. 'Td7s8h'"`
	Opponents  int    `short:"o" default:"1" help:"Number of opponents holding random cards"`
	Iterations int    `short:"i" default:"100000" help:"Number of Monte Carlo deals"`
	Seed       int64  `help:"Random seed (0 for random)"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	hole, err := deck.ParseCards(cli.Hand)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing hand: %v\n", err)
		ctx.Exit(1)
	}
	if len(hole) != 2 {
		fmt.Fprintf(os.Stderr, "a hand is exactly 2 cards, got %d\n", len(hole))
		ctx.Exit(1)
	}

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error parsing board: %v\n", err)
			ctx.Exit(1)
		}
	}

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	startTime := time.Now()
	equity, err := evaluator.Equity(context.Background(), hole, board, cli.Opponents, cli.Iterations, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		ctx.Exit(1)
	}
	duration := time.Since(startTime)

	fmt.Printf("%s %s\n", headerStyle.Render("hand:"), display.Cards(hole))
	if len(board) > 0 {
		fmt.Println(display.Board(board))
	}
	fmt.Printf("%s %s vs %d opponent(s)\n",
		headerStyle.Render("equity:"),
		winStyle.Render(fmt.Sprintf("%.1f%%", equity*100)),
		cli.Opponents)
	fmt.Printf("%d deals in %s\n", cli.Iterations, duration.Round(time.Millisecond))

	ctx.Exit(0)
}
