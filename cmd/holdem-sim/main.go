package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdem/internal/config"
	"github.com/cardroomlabs/holdem/internal/dealer"
	"github.com/cardroomlabs/holdem/internal/display"
	"github.com/cardroomlabs/holdem/internal/fileutil"
	"github.com/cardroomlabs/holdem/internal/game"
	"github.com/cardroomlabs/holdem/internal/randutil"
	"github.com/cardroomlabs/holdem/internal/statistics"
)

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#1A7A4C")).
		Padding(0, 1).
		Bold(true)

	headerStyle = lipgloss.NewStyle().Bold(true)
)

type CLI struct {
	Hands   int    `default:"10000" help:"Number of hands to simulate"`
	Config  string `short:"c" default:"holdem-sim.hcl" help:"Path to HCL config file"`
	Output  string `short:"o" help:"Write a plain-text results report to this file"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	var logger *log.Logger
	if cli.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	} else {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Fatal("failed to load config", "path", cli.Config, "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", "path", cli.Config, "error", err)
	}

	seed := cli.Seed
	if seed == 0 {
		seed = cfg.Table.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Print(titleStyle.Render(" ♠ ♥ holdem-sim ♦ ♣ "))
	fmt.Println()
	fmt.Printf("Simulating %d hands at %d/%d with %d seats (seed: %d)\n\n",
		cli.Hands, cfg.Table.SmallBlind, cfg.Table.BigBlind, len(cfg.Seats), seed)

	startTime := time.Now()
	run, last, err := simulate(cli.Hands, seed, cfg, logger)
	if err != nil {
		logger.Fatal("simulation failed", "error", err)
	}
	duration := time.Since(startTime)
	printResults(run, last, duration)

	if cli.Output != "" {
		if err := writeReport(cli.Output, run, duration); err != nil {
			logger.Fatal("failed to write report", "path", cli.Output, "error", err)
		}
		fmt.Printf("\nReport written to %s\n", cli.Output)
	}

	ctx.Exit(0)
}

func simulate(hands int, seed int64, cfg *config.SimConfig, logger *log.Logger) (*statistics.Run, *dealer.HandResult, error) {
	rng := randutil.New(seed)

	seats := make([]game.SeatConfig, len(cfg.Seats))
	for i, seat := range cfg.Seats {
		seats[i] = game.SeatConfig{
			ID:    game.PlayerID(seat.Name),
			Name:  seat.Name,
			Chips: seat.Chips,
		}
	}
	table, err := game.NewTable(seats, cfg.Table.SmallBlind, cfg.Table.BigBlind, rng)
	if err != nil {
		return nil, nil, err
	}

	engine := game.NewHandEngine(table)
	timeout := time.Duration(cfg.Table.ActionTimeoutMS) * time.Millisecond
	d := dealer.NewDealer(engine, logger, timeout, nil)
	for _, seat := range cfg.Seats {
		agent, err := dealer.ForStrategy(seat.Strategy, rng, logger)
		if err != nil {
			return nil, nil, err
		}
		d.Seat(game.PlayerID(seat.Name), agent)
	}

	run := statistics.NewRun(cfg.Table.BigBlind)
	progressEvery := 10000
	startTime := time.Now()

	var last *dealer.HandResult
	for hand := 0; hand < hands; hand++ {
		result, err := d.RunHand(context.Background())
		if err != nil {
			return nil, nil, fmt.Errorf("hand %d: %w", hand+1, err)
		}
		last = result

		run.Record(statistics.HandOutcome{
			HandID:         result.ID,
			PotChips:       result.PotChips,
			WentToShowdown: result.WentToShowdown,
			NetChips:       result.NetChips,
		})

		// Restore stacks so every hand is played at the configured depth.
		for i, seat := range cfg.Seats {
			table.Players[i].Chips = seat.Chips
		}

		if (hand+1)%progressEvery == 0 {
			elapsed := time.Since(startTime)
			handsPerSec := float64(hand+1) / elapsed.Seconds()
			fmt.Printf("Hand %d: %.0f hands/sec, %.1f%% to showdown\n",
				hand+1, handsPerSec, run.ShowdownRate()*100)
		}
	}

	if err := run.Validate(); err != nil {
		return nil, nil, fmt.Errorf("statistics validation: %w", err)
	}
	return run, last, nil
}

func printResults(run *statistics.Run, last *dealer.HandResult, duration time.Duration) {
	fmt.Println()
	fmt.Println(headerStyle.Render("=== SIMULATION RESULTS ==="))
	fmt.Printf("Hands: %d in %s (%.0f hands/sec)\n",
		run.Hands, duration.Round(time.Millisecond), float64(run.Hands)/duration.Seconds())
	fmt.Printf("Showdown rate: %.1f%%\n", run.ShowdownRate()*100)
	fmt.Printf("Largest pot: %d chips, big pots (50bb+): %d\n\n", run.MaxPotChips, run.BigPots)

	fmt.Println(headerStyle.Render("Per-player results (bb/hand):"))
	for _, id := range run.PlayerIDs() {
		sample := run.Player(id)
		low, high := sample.ConfidenceInterval95()
		fmt.Printf("  %-12s %+.4f ± %.4f SE  95%% CI [%+.4f, %+.4f]  median %+.2f\n",
			id, sample.Mean(), sample.StdError(), low, high, sample.Median())
	}

	if last != nil {
		fmt.Println()
		fmt.Printf("Last hand %s: %s\n", last.ID, display.Board(last.Board))
	}
}

// writeReport saves the run summary so long simulations survive a closed
// terminal. The write is atomic; a crash never leaves a half-written report.
func writeReport(path string, run *statistics.Run, duration time.Duration) error {
	var b strings.Builder
	fmt.Fprintf(&b, "hands: %d\n", run.Hands)
	fmt.Fprintf(&b, "duration: %s\n", duration.Round(time.Millisecond))
	fmt.Fprintf(&b, "showdown_rate: %.4f\n", run.ShowdownRate())
	fmt.Fprintf(&b, "max_pot_chips: %d\n", run.MaxPotChips)
	fmt.Fprintf(&b, "big_pots: %d\n\n", run.BigPots)

	for _, id := range run.PlayerIDs() {
		sample := run.Player(id)
		low, high := sample.ConfidenceInterval95()
		fmt.Fprintf(&b, "%s: mean=%+.4f se=%.4f ci95=[%+.4f,%+.4f] hands=%d\n",
			id, sample.Mean(), sample.StdError(), low, high, sample.Count)
	}

	return fileutil.WriteFileAtomic(path, []byte(b.String()), 0o644)
}
