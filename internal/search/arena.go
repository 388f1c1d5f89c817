package search

import "fmt"

// ErrArenaFull is returned by Enqueue when the arena's fixed capacity
// (spec.md §5, "exceeding any cap is fatal") would be exceeded.
var ErrArenaFull = fmt.Errorf("search: state arena capacity exceeded")

// stateRecord is one arena slot: a parent back-link plus one row per
// phase. Go's slice-of-struct arena plays the role of the flat strided
// buffer in spec.md §3 ("slot size = P+1 machine words") without needing
// manual index arithmetic over a single backing array.
type stateRecord struct {
	parent int
	rows   []Row
}

// deadParent marks a slot as pruned during compaction's mark phase; no
// live state can have deadParent as its actual parent index.
const deadParent = -1

// Arena is the append-only queue of P-phase states (component C).
// Index 0 is always the sentinel root: its own parent, all-zero rows.
type Arena struct {
	period      int
	records     []stateRecord
	capacity    int
	unprocessed int
	free        int
	hash        *dupHash
	hashing     bool
}

// NewArena allocates an arena with room for capacity states (including
// the root) and installs the sentinel root at slot 0.
func NewArena(period, capacity int, hashSize int) *Arena {
	a := &Arena{
		period:   period,
		records:  make([]stateRecord, 1, capacity),
		capacity: capacity,
		hash:     newDupHash(hashSize, period),
		hashing:  true,
	}
	a.records[0] = stateRecord{parent: 0, rows: make([]Row, period)}
	a.free = 1
	a.unprocessed = 0
	return a
}

// Root is the sentinel state index.
func (a *Arena) Root() int { return 0 }

// Len is the number of live slots currently allocated (free pointer).
func (a *Arena) Len() int { return a.free }

// Unprocessed is the next state due for expansion by the search driver.
func (a *Arena) Unprocessed() int { return a.unprocessed }

// AdvanceUnprocessed moves the unprocessed cursor to the next slot.
func (a *Arena) AdvanceUnprocessed() { a.unprocessed++ }

// HasWork reports whether there remain unprocessed states.
func (a *Arena) HasWork() bool { return a.unprocessed < a.free }

// Parent returns s's parent index.
func (a *Arena) Parent(s int) int { return a.records[s].parent }

// Row returns row `phase` of state s.
func (a *Arena) Row(s, phase int) Row { return a.records[s].rows[phase] }

// IsRoot reports whether s is its own parent (the sentinel root).
func (a *Arena) IsRoot(s int) bool { return a.records[s].parent == s || s == 0 }

// Depth returns s's distance to the root along parent links.
func (a *Arena) Depth(s int) int {
	d := 0
	for s != a.records[s].parent {
		s = a.records[s].parent
		d++
	}
	return d
}

// SeedAncestor installs an extra history state above the root, whose
// rows are given directly by the caller (used for up to two
// user-specified seed rows, spec.md §6). Each call chains off the
// current unprocessed frontier, deepest-last.
func (a *Arena) SeedAncestor(rows []Row) (int, error) {
	if a.free >= a.capacity {
		return 0, ErrArenaFull
	}
	s := a.free
	cp := make([]Row, a.period)
	copy(cp, rows)
	a.records = append(a.records, stateRecord{parent: a.unprocessed, rows: cp})
	a.free++
	a.unprocessed = s
	return s, nil
}

// Enqueue validates the parent index and appends a new state as its
// child. It returns (0, false, nil) if the new state is a duplicate of
// one already hashed, in which case the caller must discard it (its
// slot is reclaimed immediately, matching the original's "abort new
// state" behaviour).
func (a *Arena) Enqueue(parent int, rows []Row, hashing bool) (int, bool, error) {
	if parent < 0 || parent >= a.free {
		return 0, false, fmt.Errorf("search: enqueue: parent %d out of range [0,%d)", parent, a.free)
	}
	if a.free >= a.capacity {
		return 0, false, ErrArenaFull
	}
	s := a.free
	cp := make([]Row, a.period)
	copy(cp, rows)
	a.records = append(a.records, stateRecord{parent: parent, rows: cp})
	a.free++

	if a.IsRoot(parent) {
		nonzero := false
		for _, r := range cp {
			if r != 0 {
				nonzero = true
				break
			}
		}
		if !nonzero {
			a.free = s
			a.records = a.records[:s]
			return 0, false, nil
		}
	}

	if hashing && a.hash.isDuplicate(a, s) {
		// isDuplicate already recorded s at the first empty probe when
		// it isn't a duplicate; inserting again here would double-file
		// it under a second slot.
		a.free = s
		a.records = a.records[:s]
		return 0, false, nil
	}
	return s, true, nil
}

// QueueFull reports whether the free pointer has reached half of arena
// capacity, the trigger for compaction (spec.md §4.3).
func (a *Arena) QueueFull() bool { return a.free >= a.capacity/2 }

// SetHashing toggles the flag Hashing reports, which processGroup
// passes to Enqueue to decide whether it performs/records duplicate-hash
// lookups. It is switched off for the duration of a speculative
// expansion probe (driver.go's deepenMark), mirroring ofind.c's global
// hashing flag being suspended around deepen(), since none of that
// throwaway work should land in the real duplicate table.
func (a *Arena) SetHashing(on bool) { a.hashing = on }

// Hashing reports the current duplicate-hash toggle.
func (a *Arena) Hashing() bool { return a.hashing }

// Truncate discards every state at index >= n, rolling the free
// pointer back without touching the duplicate hash. Callers doing
// this are expected to have hashing disabled already.
func (a *Arena) Truncate(n int) {
	a.records = a.records[:n]
	a.free = n
}

// markDead flags a slot as pruned.
func (a *Arena) markDead(s int) { a.records[s].parent = deadParent }

func (a *Arena) isDead(s int) bool { return a.records[s].parent == deadParent }

// Compact reclaims every slot other than the root and the
// still-unprocessed states not dead-marked by a prior deepenMark pass
// together with their ancestors, then rewrites every surviving parent link to its new index
// and rebuilds the duplicate hash from the surviving states (spec.md
// §4.3's mark/compact/rewrite/rehash procedure, ported from the
// original's three-pass compaction with the dead-marking pass itself
// run beforehand by driver.go's deepenMark rather than folded in here).
func (a *Arena) Compact() {
	keep := make([]bool, a.free)
	keep[0] = true
	for s := a.unprocessed; s < a.free; s++ {
		if a.isDead(s) {
			continue
		}
		for cur := s; !keep[cur]; cur = a.records[cur].parent {
			keep[cur] = true
			if a.records[cur].parent == cur {
				break
			}
		}
	}

	oldUnprocessed, oldFree := a.unprocessed, a.free
	newIndex := make([]int, a.free)
	records := make([]stateRecord, 0, a.free)
	for s := 0; s < a.free; s++ {
		if keep[s] {
			newIndex[s] = len(records)
			records = append(records, a.records[s])
		} else {
			newIndex[s] = -1
		}
	}
	for i := range records {
		records[i].parent = newIndex[records[i].parent]
	}

	newUnprocessed := len(records)
	for s := oldUnprocessed; s < oldFree; s++ {
		if keep[s] {
			newUnprocessed = newIndex[s]
			break
		}
	}

	a.unprocessed = newUnprocessed
	a.records = records
	a.free = len(records)

	a.hash.clear()
	for s := 1; s < a.free; s++ {
		if a.records[s].parent != s {
			a.hash.insert(a, s)
		}
	}
}
