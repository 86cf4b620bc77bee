package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-engine/internal/equity"
	"github.com/lox/holdem-engine/internal/evaluator"
	"github.com/lox/holdem-engine/internal/randutil"
	"github.com/lox/holdem-engine/poker"
)

type CLI struct {
	Hand      string `arg:"" help:"Hole cards in run notation, e.g. 'AcKd'" required:""`
	Board     string `short:"b" help:"Community cards, e.g. 'Td7s8h'"`
	Opponents int    `short:"o" default:"1" help:"Number of opponents"`
	Samples   int    `short:"n" default:"100000" help:"Number of Monte Carlo samples"`
	Seed      *int64 `help:"Random seed for reproducible results"`
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	var seed int64
	if cli.Seed != nil {
		seed = *cli.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	hole, err := poker.ParseCards(cli.Hand)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing hand: %v\n", err)
		ctx.Exit(1)
	}
	if len(hole) != 2 {
		fmt.Fprintf(os.Stderr, "Exactly two hole cards required, got %d\n", len(hole))
		ctx.Exit(1)
	}

	var board []poker.Card
	if cli.Board != "" {
		board, err = poker.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing board: %v\n", err)
			ctx.Exit(1)
		}
		if len(board) > 5 {
			fmt.Fprintf(os.Stderr, "Board cannot have more than 5 cards\n")
			ctx.Exit(1)
		}
	}
	if overlaps(hole, board) {
		fmt.Fprintf(os.Stderr, "Board repeats a hole card\n")
		ctx.Exit(1)
	}

	if cli.Opponents < 1 || cli.Opponents > 9 {
		fmt.Fprintf(os.Stderr, "Opponents must be between 1 and 9\n")
		ctx.Exit(1)
	}

	rng := randutil.New(seed)
	estimator := equity.New(rng, cli.Samples)
	win := estimator.WinProbability(hole, board, cli.Opponents)

	fmt.Println(headerStyle.Render("Equity Estimate"))

	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintf(w, "Hand:\t%s\n", handStyle.Render(cardString(hole)))
	if len(board) > 0 {
		fmt.Fprintf(w, "Board:\t%s\n", handStyle.Render(cardString(board)))
	}
	fmt.Fprintf(w, "Opponents:\t%d\n", cli.Opponents)
	fmt.Fprintf(w, "Samples:\t%d (seed %d)\n", cli.Samples, seed)
	fmt.Fprintf(w, "Win:\t%s\n", winStyle.Render(fmt.Sprintf("%.2f%%", win*100)))

	// With a full five cards on board we can also name the made hand
	if len(hole)+len(board) >= 5 {
		cards := append(append([]poker.Card{}, hole...), board...)
		if eval, err := evaluator.Evaluate(cards); err == nil {
			fmt.Fprintf(w, "Made hand:\t%s\n", categoryStyle.Render(eval.Description))
		}
	}
	w.Flush()

	ctx.Exit(0)
}

func cardString(cards []poker.Card) string {
	out := ""
	for i, c := range cards {
		if i > 0 {
			out += " "
		}
		out += c.String()
	}
	return out
}

func overlaps(hole, board []poker.Card) bool {
	for _, h := range hole {
		for _, b := range board {
			if h == b {
				return true
			}
		}
	}
	return false
}
