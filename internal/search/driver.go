package search

// Outcome reports what Run found: either a terminal, nontrivial state
// (a genuine oscillator or still life) or nothing before the queue ran
// dry (spec.md §4.6, "No patterns found").
type Outcome struct {
	Found  bool
	State  int
	Term   TermResult
	Stator StatorCompletion
}

// Run drives the search to completion with the single breadth-first
// sweep of spec.md §4.6: pull the next unprocessed state, test it for
// termination, and otherwise expand it into the queue. MaxDeepen never
// switches the top-level algorithm — ofind.c's breadthFirst() is
// always BFS — it only shapes what compact does once the queue fills
// (bounded dead-branch pruning, then optional rotor contraction). A
// success can also surface from inside compact's speculative probing,
// exactly as ofind.c's process() can call success() from deep inside
// depthFirst(), so Run checks for that too.
func (e *Engine) Run() (Outcome, error) {
	a := e.arena
	for a.HasWork() {
		if a.QueueFull() {
			found, err := e.compact()
			if err != nil {
				return Outcome{}, err
			}
			if found != nil {
				return *found, nil
			}
		}
		s := a.Unprocessed()
		a.AdvanceUnprocessed()
		e.nice()

		found, err := e.checkSuccess(s)
		if err != nil {
			return Outcome{}, err
		}
		if found != nil {
			return *found, nil
		}
		if _, err := e.expand(s); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{}, nil
}

// checkSuccess is ofind.c's "if (terminal(s) && nontrivial(s))
// success(s)" check, made to return the Outcome instead of printing
// and exiting: a terminal, nontrivial state is only a genuine success
// once a row-symmetric wrap resolved it, or CompleteStator's full DP
// confirms a stator border exists. Otherwise it reports nil, nil so
// the caller falls through and expands s normally, matching
// success()'s "incomplete success" early return.
func (e *Engine) checkSuccess(s int) (*Outcome, error) {
	term := e.Terminal(s)
	if !term.Terminal || !e.Nontrivial(s) {
		return nil, nil
	}
	if term.RowSym.Found {
		return &Outcome{Found: true, State: s, Term: term}, nil
	}
	if completion, ok := e.CompleteStator(s); ok {
		return &Outcome{Found: true, State: s, Term: term, Stator: completion}, nil
	}
	return nil, nil
}

// compact ports ofind.c's compact(): raise the accepted ancestry depth
// by one round, optionally shrink the rotor if deepening has run too
// far past MaxDeepen, dead-mark any unprocessed state whose subtree
// can't reach the new bound, then physically reclaim and rehash the
// arena. It returns a non-nil Outcome if deepenMark's speculative
// probing itself turns up a genuine success.
func (e *Engine) compact() (*Outcome, error) {
	a := e.arena
	frontierDepth := a.Depth(a.Unprocessed())
	if frontierDepth > e.lastDepth {
		e.lastDepth = frontierDepth
	}
	e.lastDepth++
	deepening := e.lastDepth - frontierDepth

	if e.params.MaxDeepen > 0 && e.params.RotorWidth > 0 && deepening > e.params.MaxDeepen {
		e.params.RotorWidth--
		e.params.RightStatorWidth++
		if e.params.LeftStatorWidth > 0 && e.params.RotorWidth > 0 {
			e.params.LeftStatorWidth++
			e.params.RotorWidth--
		}
		e.lastDepth = frontierDepth + 1
		deepening = e.lastDepth - frontierDepth
	}

	usedRows, capRows := a.Len(), e.arenaCapacity

	found, err := e.deepenMark(deepening)
	if err != nil || found != nil {
		return found, err
	}
	a.Compact()
	if e.onCompact != nil {
		e.onCompact(e, frontierDepth, deepening, usedRows, capRows)
	}
	return nil, nil
}

// deepenMark speculatively expands every currently unprocessed state
// down to bound further levels, discarding everything it generates
// immediately afterward, and dead-marks any state whose subtree
// carries no surviving descendant within that bound so Compact can
// reclaim it — ofind.c's deepen(), including its "hashing off"
// suspension of duplicate checking, since none of this throwaway work
// should land in the real duplicate table. If the speculative probing
// stumbles onto a genuine success (ofind.c's process(), called from
// inside depthFirst(), can itself call success()), that Outcome is
// returned immediately and the arena is left as-is.
func (e *Engine) deepenMark(bound int) (*Outcome, error) {
	a := e.arena
	a.SetHashing(false)
	defer a.SetHashing(true)

	end := a.Len()
	for s := a.Unprocessed(); s < end; s++ {
		ok, found, err := e.depthFirst(s, bound)
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
		if !ok {
			a.markDead(s)
		}
	}
	return nil, nil
}

// depthFirst answers whether s has some descendant reachable within
// numLevels further expansions, ofind.c's depthFirst(): every state it
// generates while probing is rolled back before returning, unless the
// probe itself turns up a genuine success, in which case the arena is
// left untouched (the accepted state and its ancestors must stay live
// for printing, the same way ofind.c's success() never restores
// firstFreeState before exiting).
func (e *Engine) depthFirst(s, numLevels int) (alive bool, found *Outcome, err error) {
	e.nice()
	if numLevels == 0 {
		return true, nil, nil
	}
	found, err = e.checkSuccess(s)
	if err != nil || found != nil {
		return true, found, err
	}
	mark := e.arena.Len()
	if _, err := e.expand(s); err != nil {
		return false, nil, err
	}
	for e.arena.Len() > mark {
		child := e.arena.Len() - 1
		ok, found, err := e.depthFirst(child, numLevels-1)
		if err != nil {
			return false, nil, err
		}
		if found != nil {
			return true, found, nil
		}
		if ok {
			e.arena.Truncate(mark)
			return true, nil, nil
		}
		e.arena.Truncate(child)
	}
	e.arena.Truncate(mark)
	return false, nil, nil
}

// sparkMaskFor computes the extension-index mask for s, per the
// original's process(). level is 0 when s's grandparent is the root, 1
// when the grandparent's parent is, and 2 otherwise. While
// level+1 < SparkLevel the mask clears the a, b and c context bits of
// the index; at level+1 == SparkLevel it clears only the b bits; once
// level reaches SparkLevel it is -1 (no masking).
func (e *Engine) sparkMaskFor(s int) int {
	if e.params.SparkLevel == 0 {
		return -1
	}
	a := e.arena
	p := a.Parent(a.Parent(s))
	level := 0
	if !a.IsRoot(p) {
		level = 1
		pp := a.Parent(p)
		if !a.IsRoot(pp) {
			level = 2
		}
	}
	if e.params.SparkLevel <= level {
		return -1
	}
	if e.params.SparkLevel > level+1 {
		return ^extIdx(0, -1, -1, -1)
	}
	return ^extIdx(0, 0, -1, 0)
}
