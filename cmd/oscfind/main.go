// Command oscfind searches for periodic oscillators and still lifes
// in two-state outer-totalistic cellular automata.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conwaylife-dev/ofind/internal/config"
	"github.com/conwaylife-dev/ofind/internal/logging"
	"github.com/conwaylife-dev/ofind/internal/printer"
	"github.com/conwaylife-dev/ofind/internal/search"
)

var (
	cfgFile  string
	cfg      = config.Default()
	seedRows []string
	verbose  bool

	rootCmd = &cobra.Command{
		Use:   "oscfind",
		Short: "Search for oscillators and still lifes in a two-state CA rule",
		Long: `oscfind performs a breadth-first search over partial row
histories for a periodic oscillator (or still life, period 1) of the
given outer-totalistic rule, printing the first nontrivial pattern
found or the deepest partial pattern reached. max-deepen bounds how far
past the search frontier compaction will speculate before giving up on
a branch and shrinking the rotor to make room.`,
		RunE: runSearch,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "optional YAML configuration file")
	flags.StringVar(&cfg.Rule, "rule", cfg.Rule, "CA rule in Bxxx/Syyy notation")
	flags.IntVar(&cfg.Period, "period", cfg.Period, "oscillation period (1 = still life)")
	flags.StringVar(&cfg.Symmetry, "symmetry", cfg.Symmetry, "row symmetry: none, odd, or even")
	flags.BoolVar(&cfg.AllowRowSym, "allow-row-sym", cfg.AllowRowSym, "allow row-symmetric wrap termination")
	flags.IntVar(&cfg.RotorWidth, "rotor-width", cfg.RotorWidth, "rotor width in columns (still-life width when period=1)")
	flags.IntVar(&cfg.LeftStatorWidth, "left-stator-width", cfg.LeftStatorWidth, "left stator width in columns")
	flags.IntVar(&cfg.RightStatorWidth, "right-stator-width", cfg.RightStatorWidth, "right stator width in columns")
	flags.BoolVar(&cfg.ZeroLotLine, "zero-lot-line", cfg.ZeroLotLine, "disallow stator rows from exceeding the search width")
	flags.IntVar(&cfg.MaxDeepen, "max-deepen", cfg.MaxDeepen, "iterative-deepening depth limit (0 = unlimited)")
	flags.IntVar(&cfg.SparkLevel, "spark-level", cfg.SparkLevel, "spark relaxation level (0, 1, or 2)")
	flags.StringArrayVar(&seedRows, "seed-row", nil, "initial history row as a .../o string (repeatable, max 2)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if len(seedRows) > 0 {
		cfg.SeedRows = seedRows
	}

	params, err := cfg.ToParams()
	if err != nil {
		return err
	}

	log := logging.New(verbose)
	out := printer.New(os.Stdout)

	engine, err := search.New(params, search.OnCompact(func(e *search.Engine, depth, deepening, usedRows, capRows int) {
		out.StatusLine(e, depth, deepening, usedRows, capRows)
	}))
	if err != nil {
		log.Fatal("search.New failed", map[string]any{"error": err.Error()})
		return err
	}

	result, err := engine.Run()
	if err != nil {
		log.Fatal("search aborted", map[string]any{
			"error":         err.Error(),
			"deepest_depth": engine.LastDeepenDepth(),
		})
		out.NoPatterns(engine)
		return nil
	}

	if result.Found {
		out.Pattern(engine, result)
		return nil
	}
	out.NoPatterns(engine)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0) // spec.md §6: success and exhaustion share exit code 0
	}
}
