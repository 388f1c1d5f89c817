// Package config loads and validates the search configuration record
// (spec.md §6), from an optional YAML file and CLI flags, before
// handing an immutable search.Params to the core. The core never
// re-validates; every rejection happens here (spec.md §7
// "Configuration rejection").
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/conwaylife-dev/ofind/internal/rule"
	"github.com/conwaylife-dev/ofind/internal/search"
)

// Config is the YAML/flag-facing record; field names match spec.md §6
// exactly except for the textual rule and seed rows, which need a
// parse step before they reach search.Params.
type Config struct {
	Rule             string   `yaml:"rule"`
	Period           int      `yaml:"period"`
	Symmetry         string   `yaml:"symmetry"`
	AllowRowSym      bool     `yaml:"allow_row_sym"`
	RotorWidth       int      `yaml:"rotor_width"`
	LeftStatorWidth  int      `yaml:"left_stator_width"`
	RightStatorWidth int      `yaml:"right_stator_width"`
	ZeroLotLine      bool     `yaml:"zero_lot_line"`
	MaxDeepen        int      `yaml:"max_deepen"`
	SparkLevel       int      `yaml:"spark_level"`
	SeedRows         []string `yaml:"seed_rows"`
}

// Default returns the record's defaults: Conway's Life, period 2,
// a 3-wide rotor, no stator, no symmetry.
func Default() Config {
	return Config{
		Rule:       "B3/S23",
		Period:     2,
		Symmetry:   "none",
		RotorWidth: 3,
		SparkLevel: 0,
	}
}

// Load reads and parses a YAML config file, starting from Default()
// so an omitted field keeps its default rather than zeroing out.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return c, nil
}

// parseSymmetry converts the config's textual symmetry to search.Symmetry.
func parseSymmetry(s string) (search.Symmetry, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return search.SymNone, nil
	case "odd":
		return search.SymOdd, nil
	case "even":
		return search.SymEven, nil
	default:
		return search.SymNone, fmt.Errorf("config: symmetry %q must be one of none, odd, even", s)
	}
}

// parseRow converts a `.`/`o` string into a search.Row, validating it
// is no wider than width.
func parseRow(s string, width int) (search.Row, error) {
	if len(s) > width {
		return 0, fmt.Errorf("config: seed row %q wider than total width %d", s, width)
	}
	var r search.Row
	for i, ch := range s {
		col := len(s) - 1 - i
		switch ch {
		case 'o', 'O':
			r |= 1 << uint(col)
		case '.':
			// dead, no bit set
		default:
			return 0, fmt.Errorf("config: seed row %q has unexpected character %q", s, ch)
		}
	}
	return r, nil
}

// Validate checks every field's range, per spec.md §6's configuration
// record contract. It does not parse the rule text or seed rows (that
// happens in ToParams, since it needs the validated width to bound
// seed-row length).
func (c Config) Validate() error {
	if c.Period < 1 || c.Period >= search.MaxPeriod {
		return fmt.Errorf("config: period %d out of range [1,%d)", c.Period, search.MaxPeriod)
	}
	if _, err := parseSymmetry(c.Symmetry); err != nil {
		return err
	}
	if c.RotorWidth < 1 || c.RotorWidth > 32 {
		return fmt.Errorf("config: rotor_width %d out of range [1,32]", c.RotorWidth)
	}
	if c.LeftStatorWidth < 0 || c.RightStatorWidth < 0 {
		return fmt.Errorf("config: stator widths must be non-negative")
	}
	total := c.RotorWidth + c.LeftStatorWidth + c.RightStatorWidth
	if total > 32 {
		return fmt.Errorf("config: total width %d exceeds 32", total)
	}
	if c.MaxDeepen < 0 {
		return fmt.Errorf("config: max_deepen %d must be >= 0", c.MaxDeepen)
	}
	if c.SparkLevel < 0 || c.SparkLevel > 2 {
		return fmt.Errorf("config: spark_level %d out of range [0,2]", c.SparkLevel)
	}
	if len(c.SeedRows) > 2 {
		return fmt.Errorf("config: at most 2 seed rows, got %d", len(c.SeedRows))
	}
	for _, s := range c.SeedRows {
		if _, err := parseRow(s, total); err != nil {
			return err
		}
	}
	if _, err := rule.Parse(c.Rule); err != nil {
		return err
	}
	return nil
}

// ToParams validates c and converts it into an immutable search.Params.
func (c Config) ToParams() (search.Params, error) {
	if err := c.Validate(); err != nil {
		return search.Params{}, err
	}
	r, err := rule.Parse(c.Rule)
	if err != nil {
		return search.Params{}, err
	}
	sym, err := parseSymmetry(c.Symmetry)
	if err != nil {
		return search.Params{}, err
	}
	width := c.RotorWidth + c.LeftStatorWidth + c.RightStatorWidth
	seeds := make([]search.Row, 0, len(c.SeedRows))
	for _, s := range c.SeedRows {
		row, err := parseRow(s, width)
		if err != nil {
			return search.Params{}, err
		}
		seeds = append(seeds, row)
	}
	return search.Params{
		Rule:             uint32(r),
		Period:           c.Period,
		Symmetry:         sym,
		AllowRowSym:      c.AllowRowSym,
		RotorWidth:       c.RotorWidth,
		LeftStatorWidth:  c.LeftStatorWidth,
		RightStatorWidth: c.RightStatorWidth,
		ZeroLotLine:      c.ZeroLotLine,
		MaxDeepen:        c.MaxDeepen,
		SparkLevel:       c.SparkLevel,
		SeedRows:         seeds,
	}, nil
}
