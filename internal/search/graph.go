package search

import (
	"fmt"
	"sort"
)

// ErrCompatOverflow/ErrReachOverflow mirror the original's
// "Compatibility/Reachability block space exceeded" fatal paths.
var (
	ErrCompatOverflow = fmt.Errorf("search: compatibility bitmap capacity exceeded")
	ErrReachOverflow  = fmt.Errorf("search: reachability bitmap capacity exceeded")
)

// expand computes every child of state s (component D, driving B),
// grouping candidate rows by shared stator before building the
// compatibility/reachability graph, and enqueues every completed cycle
// through the arena. It returns the number of children enqueued.
func (e *Engine) expand(s int) (int, error) {
	p := e.params
	period := p.Period
	width := p.TotalWidth()
	sparkMask := e.sparkMaskFor(s)

	phaseRows := make([][]Row, period)
	for phase := 0; phase < period; phase++ {
		a := e.arena.Row(s, phase)
		b := e.arena.Row(e.arena.Parent(s), phase)
		c := e.arena.Row(s, (phase+1)%period)
		rows, err := e.listRows(a, b, c, sparkMask, width, nil, e.rowCap)
		if err != nil {
			return 0, err
		}
		if len(rows) == 0 {
			return 0, nil // no possible extension in this phase
		}
		phaseRows[phase] = rows
	}

	statMask := p.StatorMask()
	if statMask == 0 {
		return e.processGroup(s, phaseRows)
	}
	return e.processStatorGroups(s, phaseRows, statMask)
}

// processStatorGroups partitions each phase's row list into
// stator-homogeneous slices (spec.md §4.4 step 2: "stator groups") and
// runs the compatibility/reachability search independently within each
// group, since rows from different stator groups can never be
// compatible (their stator bits differ by construction).
func (e *Engine) processStatorGroups(s int, phaseRows [][]Row, statMask Row) (int, error) {
	period := len(phaseRows)
	for phase := 0; phase < period; phase++ {
		rows := phaseRows[phase]
		sort.Slice(rows, func(i, j int) bool {
			si, sj := rows[i]&statMask, rows[j]&statMask
			if si != sj {
				return si < sj
			}
			return rows[i] < rows[j]
		})
	}

	seen := map[Row]bool{}
	var stators []Row
	for _, r := range phaseRows[0] {
		st := r & statMask
		if !seen[st] {
			seen[st] = true
			stators = append(stators, st)
		}
	}
	sort.Slice(stators, func(i, j int) bool { return stators[i] < stators[j] })

	total := 0
	for _, stator := range stators {
		group := make([][]Row, period)
		complete := true
		for phase := 0; phase < period; phase++ {
			rows := phaseRows[phase]
			lo := sort.Search(len(rows), func(i int) bool { return rows[i]&statMask >= stator })
			hi := sort.Search(len(rows), func(i int) bool { return rows[i]&statMask > stator })
			if lo >= hi {
				complete = false
				break
			}
			group[phase] = rows[lo:hi]
		}
		if !complete {
			continue
		}
		n, err := e.processGroup(s, group)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// testCompatible reports whether candidate prevRow (phase prevPhase)
// evolves, given the context row already fixed at s's same phase, into
// candidate curRow at the next phase — spec.md §4.4 step 3.
func (e *Engine) testCompatible(s, prevPhase int, prevRow, curRow Row) bool {
	statMask := e.params.StatorMask()
	if statMask != 0 && (prevRow&statMask) != (curRow&statMask) {
		return false
	}
	width := e.params.TotalWidth()
	context := e.arena.Row(s, prevPhase)
	extensions := e.setupExtensions(prevRow, context, curRow, -1, width)
	return extensions[width-1]&0o3 != 0
}

// processGroup builds the compatibility and reachability bitmaps for
// one stator group and backtracks over every consistent P-tuple,
// enqueueing a child state for each completed cycle (spec.md §4.4
// steps 3–5).
func (e *Engine) processGroup(s int, rows [][]Row) (int, error) {
	period := len(rows)
	n := make([]int, period)
	for k := range rows {
		n[k] = len(rows[k])
	}

	compat := make([][]bitset, period)
	cells := 0
	for k := 0; k < period; k++ {
		prev := (k - 1 + period) % period
		compat[k] = make([]bitset, n[k])
		for j := 0; j < n[k]; j++ {
			bs := newBitset(n[prev])
			for i := 0; i < n[prev]; i++ {
				cells++
				if cells > e.compatCap {
					return 0, ErrCompatOverflow
				}
				if e.testCompatible(s, prev, rows[prev][i], rows[k][j]) {
					bs.set(i)
				}
			}
			compat[k][j] = bs
		}
		e.nice()
	}

	reach := make([][]bitset, period)
	reach[period-1] = make([]bitset, n[period-1])
	rcells := 0
	for j := 0; j < n[period-1]; j++ {
		bs := newBitset(n[0])
		for a := 0; a < n[0]; a++ {
			rcells++
			if rcells > e.reachCap {
				return 0, ErrReachOverflow
			}
			if compat[0][a].get(j) {
				bs.set(a)
			}
		}
		reach[period-1][j] = bs
	}
	for phase := period - 2; phase >= 0; phase-- {
		reach[phase] = make([]bitset, n[phase])
		for i := 0; i < n[phase]; i++ {
			bs := newBitset(n[0])
			for j := 0; j < n[phase+1]; j++ {
				if compat[phase+1][j].get(i) {
					bs.or(reach[phase+1][j])
				}
			}
			reach[phase][i] = bs
		}
		e.nice()
	}

	idx := make([]int, period)
	for i := range idx {
		idx[i] = -1
	}
	total := 0
	phase := -1
	for {
		e.nice()
		phase++
		for idx[phase] == n[phase]-1 {
			idx[phase] = -1
			phase--
			if phase < 0 {
				return total, nil
			}
		}
		idx[phase]++

		if !reach[phase][idx[phase]].get(idx[0]) {
			phase--
			continue
		}
		if phase > 0 && !compat[phase][idx[phase]].get(idx[phase-1]) {
			phase--
			continue
		}
		if phase == period-1 {
			if compat[0][idx[0]].get(idx[phase]) {
				tuple := make([]Row, period)
				for k := 0; k < period; k++ {
					tuple[k] = rows[k][idx[k]]
				}
				_, added, err := e.arena.Enqueue(s, tuple, e.arena.Hashing())
				if err != nil {
					return total, err
				}
				if added {
					total++
				}
			}
			phase--
		}
	}
}
