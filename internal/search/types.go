// Package search implements the core oscillator/still-life search: the
// rule and transition tables (A), the row-extension enumerator (B), the
// state arena and duplicate hash (C), the compatibility/reachability
// graph (D), the termination detector (E) and the BFS/IDDFS search
// driver (F). Everything here is single-threaded and side-effect free
// except through the explicit *Engine receiver, per the "one owning
// context" design note.
package search

import "fmt"

// MaxPeriod bounds the period field; periods 1..MaxPeriod-1 are valid,
// matching the historical MAXPERIOD sentinel (an exclusive bound).
const MaxPeriod = 20

// Row is a packed bitmap of one row of cells; bit i is cell i. Only
// consistency of bit ordering across the engine matters, not which end
// is "left" on screen (the printer decides that).
type Row uint32

// Symmetry selects how a row's leftmost cells are constrained: mirrored
// about a boundary between two cells (Even), mirrored about a boundary
// cell shared by both halves (Odd), or unconstrained (None).
type Symmetry int

const (
	SymNone Symmetry = iota
	SymOdd
	SymEven
)

func (s Symmetry) String() string {
	switch s {
	case SymNone:
		return "none"
	case SymOdd:
		return "odd"
	case SymEven:
		return "even"
	default:
		return fmt.Sprintf("Symmetry(%d)", int(s))
	}
}

// Params is the fully validated configuration record handed to the
// core (spec.md §6 "Configuration record"). The core never re-validates
// it; validation is entirely the config layer's job.
type Params struct {
	Rule            uint32 // 18-bit outer-totalistic mask
	Period          int    // 1..MaxPeriod-1
	Symmetry        Symmetry
	AllowRowSym     bool
	RotorWidth      int
	LeftStatorWidth int
	RightStatorWidth int
	ZeroLotLine     bool
	MaxDeepen       int // 0 = unlimited
	SparkLevel      int // 0, 1 or 2
	SeedRows        []Row // up to 2, oldest first
}

// TotalWidth is rotor + left stator + right stator, the pattern's total
// column count for the main search (before any stator-completion
// extension columns are appended).
func (p Params) TotalWidth() int {
	return p.RotorWidth + p.LeftStatorWidth + p.RightStatorWidth
}

// StatorMask isolates the stator bits within a Row of TotalWidth()
// columns: the low LeftStatorWidth bits and the high RightStatorWidth
// bits. The complement is the rotor.
func (p Params) StatorMask() Row {
	left := Row(1)<<uint(p.LeftStatorWidth) - 1
	right := (Row(1)<<uint(p.RightStatorWidth) - 1) << uint(p.RotorWidth+p.LeftStatorWidth)
	return left | right
}
