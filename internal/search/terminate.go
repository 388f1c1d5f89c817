package search

import "strings"

// RowSymmetry describes a successful row-symmetric wrap completion
// (spec.md §4.5(a)).
type RowSymmetry struct {
	Found  bool
	Sym    Symmetry
	Offset int
}

// TermResult is what Terminal reports about a state: whether it is
// terminal at all, and if so, whether a row-symmetric wrap closed it.
// When Terminal is true but RowSym.Found is false, the cheap column
// sweep only says a stator completion is *possible*; CompleteStator
// still has to run the full DP to confirm it and find the actual
// border cells, exactly as ofind.c's success() re-checks with
// terminate() whenever row_symmetry came back none.
type TermResult struct {
	Terminal bool
	RowSym   RowSymmetry
}

func oddExt(r Row) Row  { return (r << 1) | ((r >> 1) & 1) }
func evenExt(r Row) Row { return (r << 1) | (r & 1) }

func (t *Tables) nextTerm(term uint16, row, parentRow, succRow Row, col int) uint16 {
	r := int(row>>uint(col)) & 7
	pr := t.count[int(parentRow>>uint(col))&7]
	sr := int(succRow>>uint(col+1)) & 1
	idx := int(term) | (r << 19) | int(pr) | (sr << 16)
	return t.nxTerm[idx]
}

// Terminal tests whether state s can conclude the search: either a
// row-symmetric wrap (a) or the cheap column sweep saying a still-life
// stator might cap the pattern (b), per spec.md §4.5. This mirrors
// ofind.c's terminal() exactly, including that it is only a
// pre-filter for (b) — the authoritative check is CompleteStator.
func (e *Engine) Terminal(s int) TermResult {
	var res TermResult
	ps := e.arena.Parent(s)
	if ps == s {
		return res // the initial state is never terminal
	}
	period := e.params.Period

	if e.params.AllowRowSym {
		pps := e.arena.Parent(ps)

		if same(e.arena, s, ps, period, 0) {
			res.Terminal = true
			res.RowSym = RowSymmetry{Found: true, Sym: SymEven, Offset: 0}
			return res
		}
		if same(e.arena, s, pps, period, 0) {
			res.Terminal = true
			res.RowSym = RowSymmetry{Found: true, Sym: SymOdd, Offset: 0}
			return res
		}
		if period%2 == 0 {
			offset := period / 2
			if same(e.arena, s, ps, period, offset) {
				res.Terminal = true
				res.RowSym = RowSymmetry{Found: true, Sym: SymEven, Offset: offset}
				return res
			}
			if same(e.arena, s, pps, period, offset) {
				res.Terminal = true
				res.RowSym = RowSymmetry{Found: true, Sym: SymOdd, Offset: offset}
				return res
			}
		}
	}

	width := e.params.TotalWidth()
	term := e.tables.InitialTermState
	for col := width - 1; col >= 0; col-- {
		if term == 0 {
			return res
		}
		var next uint16 = 0xffff
		for phase := 0; phase < period; phase++ {
			row := e.arena.Row(s, phase)
			prow := e.arena.Row(ps, phase)
			srow := e.arena.Row(s, (phase+1)%period)
			next &= e.tables.nextTerm(term, row, prow, srow, col)
		}
		term = next
	}

	var next uint16 = 0xffff
	switch e.params.Symmetry {
	case SymOdd:
		for phase := 0; phase < period; phase++ {
			row := e.arena.Row(s, phase)
			prow := e.arena.Row(ps, phase)
			srow := e.arena.Row(s, (phase+1)%period)
			next &= e.tables.nextTerm(term, oddExt(row), oddExt(prow), srow<<1, 0)
		}
		if e.tables.revTerm[next]&term != 0 {
			res.Terminal = true
		}
	case SymEven:
		for phase := 0; phase < period; phase++ {
			row := e.arena.Row(s, phase)
			prow := e.arena.Row(ps, phase)
			srow := e.arena.Row(s, (phase+1)%period)
			next &= e.tables.nextTerm(term, evenExt(row), evenExt(prow), srow<<1, 0)
		}
		if e.tables.revTerm[next]&next != 0 {
			res.Terminal = true
		}
	case SymNone:
		for phase := 0; phase < period; phase++ {
			row := e.arena.Row(s, phase)
			prow := e.arena.Row(ps, phase)
			srow := e.arena.Row(s, (phase+1)%period)
			next &= e.tables.nextTerm(term, row<<1, prow<<1, srow<<1, 0)
		}
		term = next
		next = 0xffff
		for phase := 0; phase < period; phase++ {
			row := e.arena.Row(s, phase)
			prow := e.arena.Row(ps, phase)
			srow := e.arena.Row(s, (phase+1)%period)
			next &= e.tables.nextTerm(term, row<<2, prow<<2, srow<<2, 0)
		}
		if e.tables.revTerm[next]&e.tables.InitialTermState != 0 {
			res.Terminal = true
		}
	}
	return res
}

// same tests rowOfState(s,phase) == rowOfState(other,(phase+offset)%period)
// for every phase, the row-symmetric wrap test.
func same(a *Arena, s, other, period, offset int) bool {
	for phase := 0; phase < period; phase++ {
		if a.Row(s, phase) != a.Row(other, (phase+offset)%period) {
			return false
		}
	}
	return true
}

// Aperiodic reports whether state s's own P-row sequence has no proper
// divisor period — the failure-function check of spec.md §4.5. For
// P==1 it instead reports non-emptiness (a still life "wants nonempty
// rather than aperiodic").
func (e *Engine) Aperiodic(s int) bool {
	period := e.params.Period
	if period == 1 {
		return e.arena.Row(s, 0) != 0
	}
	fail := make([]int, period)
	fail[0] = -1
	for i := 1; i < period; i++ {
		fail[i] = fail[i-1] + 1
		for e.arena.Row(s, fail[i]) != e.arena.Row(s, i) {
			if fail[i] == 0 {
				fail[i] = -1
				break
			}
			fail[i] = fail[fail[i]-1] + 1
		}
	}
	shortest := period - (fail[period-1] + 1)
	return shortest == period || period%shortest != 0
}

// Nontrivial reports whether some ancestor of s is aperiodic (spec.md
// §4.5's final acceptance gate).
func (e *Engine) Nontrivial(s int) bool {
	for e.arena.Parent(s) != s {
		if e.Aperiodic(s) {
			return true
		}
		s = e.arena.Parent(s)
	}
	return false
}

// termDP holds one CompleteStator call's transient min-live-cell DP
// state: ofind.c's bestTerm/predTerm, indexed the same way (BT/PT
// macros) but allocated per call rather than as a reused global, since
// Go has no equivalent of a function-local static array reused across
// calls without a package-level var. The (col+2)<<10 addressing this
// inherits from ofind.c implicitly assumes col+2 < 64, i.e.
// totalWidth+addlStatorCols stays under roughly 60 columns; the same
// assumption is implicit (unchecked) in the original.
type termDP struct {
	best []int16
	pred []int8
}

func newTermDP() *termDP {
	best := make([]int16, 1<<16)
	for i := range best {
		best[i] = -1
	}
	return &termDP{best: best, pred: make([]int8, 1<<16)}
}

func termIdx(col, i, j int) int { return ((col + 2) << 10) | (i << 5) | j }

func (d *termDP) bt(col, i, j int) int16      { return d.best[termIdx(col, i, j)] }
func (d *termDP) setBT(col, i, j int, v int16) { d.best[termIdx(col, i, j)] = v }
func (d *termDP) pt(col, i, j int) int8        { return d.pred[termIdx(col, i, j)] }
func (d *termDP) setPT(col, i, j int, v int8)  { d.pred[termIdx(col, i, j)] = v }

// stabilizes reports whether a candidate stator column triple (i,j,k)
// is consistent with the rule across every phase of s, either at a
// concrete column (col >= 0, reading s's real row data) or at the
// symmetric/asymmetric boundary (col < 0), per ofind.c's stabilizes().
func (e *Engine) stabilizes(i, j, k, s, col int) bool {
	ijk := ((i & 3) << 11) | ((j & 3) << 9) | ((k & 3) << 7)
	period := e.params.Period
	ps := e.arena.Parent(s)
	for phase := 0; phase < period; phase++ {
		r := e.arena.Row(s, phase)
		pr := e.arena.Row(ps, phase)
		sr := e.arena.Row(s, (phase+1)%period)
		if col >= 0 {
			r >>= uint(col)
			pr >>= uint(col)
			sr >>= uint(col)
		} else {
			switch e.params.Symmetry {
			case SymOdd:
				r, pr, sr = oddExt(r), oddExt(pr), oddExt(sr)
			case SymEven:
				r, pr, sr = evenExt(r), evenExt(pr), evenExt(sr)
			case SymNone:
				r <<= uint(-col)
				pr <<= uint(-col)
				sr <<= uint(-col)
			}
		}
		idx := ijk | (int(r&7) << 4) | (int(pr&7) << 1) | (int(sr>>1) & 1)
		if !e.tables.stabtab[idx] {
			return false
		}
	}
	return true
}

// terminateCols picks the (backBest, fwdBest) pair minimizing total
// live cells across the two DP columns already filled by the main
// sweep, per ofind.c's terminateCols().
func (d *termDP) terminateCols(t *Tables, backCol, fwdCol int) (backBest, fwdBest int, ok bool) {
	best := 0x7fff
	for i := 0; i < 32; i++ {
		for j := 0; j < 32; j++ {
			bi := d.bt(backCol, i, j)
			bj := d.bt(fwdCol, j, i)
			if bi < 0 || bj < 0 {
				continue
			}
			tot := int(bi) + int(bj) - t.bitCount[i] - t.bitCount[j]
			if tot < best {
				best = tot
				backBest = i
				fwdBest = j
			}
		}
	}
	return backBest, fwdBest, best < 0x7fff
}

// terminate runs the full min-live-cell column DP over
// tcompatible/stabtab/bitCount (ofind.c's terminate()) that finds the
// cheapest still-life stator completing state s. It returns the DP
// table (needed to walk PT for rendering) and the (back, fwd) boundary
// pair terminateCols settled on; ok is false if no completion exists
// at all, in which case s is not really terminal despite Terminal
// having said the cheap sweep allows it.
func (e *Engine) terminate(s int) (d *termDP, back, fwd int, ok bool) {
	width := e.params.TotalWidth()
	full := width + e.tables.AddlStatorCols
	lastCol := -1
	if e.params.Symmetry == SymNone {
		lastCol = -2
	}
	col := full
	if col > 63 {
		col = 63
	}

	d = newTermDP()
	d.setBT(col, 0, 0, 0)
	d.setPT(col, 0, 0, 0)

	for col > lastCol {
		foundAny := false
		col--
		for i := 0; i < 32; i++ {
			for j := 0; j < 32; j++ {
				prev := d.bt(col+1, i, j)
				if prev < 0 {
					continue
				}
				for k := 0; k < 32; k++ {
					if !e.tables.tcompatible[tcompatIdx(i, j, k)] {
						continue
					}
					cost := prev + int16(e.tables.bitCount[k])
					if existing := d.bt(col, j, k); existing >= 0 && cost >= existing {
						continue
					}
					if !e.stabilizes(i, j, k, s, col) {
						continue
					}
					d.setBT(col, j, k, cost)
					d.setPT(col, j, k, int8(i))
					foundAny = true
				}
			}
		}
		if !foundAny {
			return d, 0, 0, false
		}
	}

	switch e.params.Symmetry {
	case SymEven:
		back, fwd, ok = d.terminateCols(e.tables, -1, -1)
	case SymOdd:
		back, fwd, ok = d.terminateCols(e.tables, -1, 0)
	default: // SymNone
		back, fwd, ok = d.terminateCols(e.tables, width, -2)
	}
	return d, back, fwd, ok
}

// putStator walks the DP's predecessor chain outward from the meeting
// column, a direct port of ofind.c's recursive putStator: visualRow
// selects which of the five bit-planes packed into each DP state (i
// or j) is this printed row's cell, and reversed/skip control whether
// the cell is emitted before or after descending further, which is
// what lets two complementary calls assemble one row in the right
// left-to-right order.
func (d *termDP) putStator(w *strings.Builder, width, addl, visualRow, col, i, j int, reversed bool, skip int) {
	if skip <= 0 && reversed {
		putStatorCell(w, j, visualRow)
	}
	if col < width+addl-1 {
		d.putStator(w, width, addl, visualRow, col+1, int(d.pt(col, i, j)), i, reversed, skip-1)
	}
	if skip <= 0 && !reversed {
		putStatorCell(w, j, visualRow)
	}
}

func putStatorCell(w *strings.Builder, j, visualRow int) {
	if j&(1<<uint(visualRow)) != 0 {
		w.WriteByte('o')
	} else {
		w.WriteByte('.')
	}
}

// renderStatorRows reproduces success()'s five putStator-driven output
// lines for whichever symmetry closed the pattern.
func (e *Engine) renderStatorRows(d *termDP, back, fwd int) [5]string {
	width := e.params.TotalWidth()
	addl := e.tables.AddlStatorCols
	var rows [5]string
	for row := 0; row < 5; row++ {
		var b strings.Builder
		switch e.params.Symmetry {
		case SymOdd:
			d.putStator(&b, width, addl, row, 0, fwd, back, false, 1)
			d.putStator(&b, width, addl, row, -1, back, fwd, true, 1)
		case SymEven:
			d.putStator(&b, width, addl, row, -1, fwd, back, false, 1)
			d.putStator(&b, width, addl, row, -1, back, fwd, true, 1)
		default: // SymNone
			d.putStator(&b, width, addl, row, width, back, fwd, false, 1)
			d.putStator(&b, width, addl, row, -2, fwd, back, true, 1)
		}
		rows[row] = b.String()
	}
	return rows
}

// StatorCompletion is the minimal-cost still-life border terminate()'s
// DP found for a state whose row-symmetric wrap check failed, per
// spec.md §4.5 step 4. Rows holds the five text lines ofind.c's
// putStator emits, already resolved to '.'/'o'.
type StatorCompletion struct {
	Columns int
	Rows    [5]string
}

// CompleteStator runs the full DP terminal()'s cheap sweep only
// approximates and renders the border it finds. ok is false if no
// completion actually exists, matching ofind.c's success() falling
// through to keep searching rather than accepting an unfinishable
// state as a pattern.
func (e *Engine) CompleteStator(s int) (StatorCompletion, bool) {
	d, back, fwd, ok := e.terminate(s)
	if !ok {
		return StatorCompletion{}, false
	}
	return StatorCompletion{
		Columns: e.tables.AddlStatorCols,
		Rows:    e.renderStatorRows(d, back, fwd),
	}, true
}
