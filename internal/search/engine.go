package search

import "fmt"

// Engine is the single owning context for a search run: the rule-derived
// tables (A), the current Params (which §4.6 compaction may shrink),
// the state arena (C) and the cooperative-yield hook (§5). Passing one
// *Engine explicitly through B/C/D/E/F replaces the original's
// process-wide globals, per the "global mutable state" design note.
type Engine struct {
	tables *Tables
	params Params
	arena  *Arena

	niceFn    func()
	onCompact func(e *Engine, frontierDepth, deepening, usedRows, capRows int)

	rowCap        int
	compatCap     int
	reachCap      int
	arenaCapacity int

	lastDepth int // compaction's accepted-ancestry-depth watermark, see driver.go
}

// ErrBadRule flags a rule that fails the tcompatible(0,2,0)==false
// sanity check spec.md §4.1 requires of every valid rule.
var ErrBadRule = fmt.Errorf("search: rule failed tcompatible(0,2,0) sanity check")

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithNice installs the cooperative-yield callback invoked from the
// hot loops of A, B and D (spec.md §5). A nil hook is a no-op, the
// correct default on any preemptively scheduled host.
func WithNice(fn func()) Option {
	return func(e *Engine) { e.niceFn = fn }
}

// WithCaps overrides the row/compatibility/reachability arena caps
// (defaults mirror the historical NROWS/NCOMPAT sizes) — mainly used by
// tests exercising the "capacity exceeded" fatal path (S6-style).
func WithCaps(rowCap, compatCap, reachCap int) Option {
	return func(e *Engine) {
		e.rowCap = rowCap
		e.compatCap = compatCap
		e.reachCap = reachCap
	}
}

// ArenaCapacity overrides the state arena's slot capacity (also mainly
// for forcing compaction in tests, S6).
func ArenaCapacity(n int) Option { return func(e *Engine) { e.arenaCapacity = n } }

// OnCompact installs a callback invoked after each compaction round,
// letting a caller render spec.md §6's periodic "Queue full" status
// line (internal/printer.StatusLine) without internal/search importing
// internal/printer.
func OnCompact(fn func(e *Engine, frontierDepth, deepening, usedRows, capRows int)) Option {
	return func(e *Engine) { e.onCompact = fn }
}

// New builds an Engine ready to search: it precomputes every rule
// table and installs the sentinel root plus any seed rows in params.
func New(params Params, opts ...Option) (*Engine, error) {
	e := &Engine{
		params:        params,
		rowCap:        MaxRows,
		compatCap:     1 << 21,
		reachCap:      1 << 21,
		arenaCapacity: 1 << 20,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.niceFn == nil {
		e.niceFn = func() {}
	}

	e.tables = BuildTables(params.Rule, params.ZeroLotLine, e.niceFn)
	if !e.tables.SanityCheck() {
		return nil, ErrBadRule
	}

	e.arena = NewArena(params.Period, e.arenaCapacity, 1<<21)
	for _, seedRows := range seedHistories(params) {
		if _, err := e.arena.SeedAncestor(seedRows); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *Engine) nice() { e.niceFn() }

// Params returns the Engine's search configuration.
func (e *Engine) Params() Params { return e.params }

// ArenaRow exposes row `phase` of arena state s, for the printer.
func (e *Engine) ArenaRow(s, phase int) Row { return e.arena.Row(s, phase) }

// ArenaParent exposes s's parent index, for the printer.
func (e *Engine) ArenaParent(s int) int { return e.arena.Parent(s) }

// AncestorChain returns s and every ancestor up to and including the
// root, deepest first — the line order spec.md §6's output stream
// prints on success or give-up.
func (e *Engine) AncestorChain(s int) []int {
	var chain []int
	for {
		chain = append(chain, s)
		if e.arena.IsRoot(s) {
			return chain
		}
		s = e.arena.Parent(s)
	}
}

// DeepestState is the slot immediately before the unprocessed cursor,
// the "deepest partial pattern" spec.md §7 prints on any fatal or
// give-up path.
func (e *Engine) DeepestState() int {
	s := e.arena.Unprocessed() - 1
	if s < 0 {
		s = 0
	}
	return s
}

// ArenaLen and ArenaCapacity back the "Queue full" status line.
func (e *Engine) ArenaLen() int        { return e.arena.Len() }
func (e *Engine) ArenaCapacity() int   { return e.arenaCapacity }
func (e *Engine) LastDeepenDepth() int { return e.lastDepth }

// seedHistories splits params.SeedRows (each a full P-row snapshot is
// not what's stored; per spec.md §6 up to two seed *rows*, meaning two
// extra ancestor states each carrying one row value replicated by the
// caller into a full phase vector) into the per-ancestor row vectors
// SeedAncestor expects. Ancestors are installed oldest first.
func seedHistories(p Params) [][]Row {
	out := make([][]Row, 0, len(p.SeedRows))
	for _, r := range p.SeedRows {
		rows := make([]Row, p.Period)
		for i := range rows {
			rows[i] = r
		}
		out = append(out, rows)
	}
	return out
}
