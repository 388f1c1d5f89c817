package search

import "math/rand"

// dupHash is the power-of-two open-addressed duplicate filter from
// spec.md §4.3. table[key]==0 means empty; a stored value is the state
// index plus one, so the real root index 0 never collides with "empty".
type dupHash struct {
	table  []int
	mask   uint64
	period int
	hVal   [][4]uint64 // [phase][byte] -> one mixing constant, self row
	hPrime [][4]uint64 // same, parent row
	seed   *rand.Rand
}

const hashProbes = 3

func newDupHash(size, period int) *dupHash {
	// round size up to a power of two
	n := 1
	for n < size {
		n <<= 1
	}
	h := &dupHash{
		table:  make([]int, n),
		mask:   uint64(n - 1),
		period: period,
		seed:   rand.New(rand.NewSource(0xC0FFEE)),
	}
	h.hVal = make([][4]uint64, period)
	h.hPrime = make([][4]uint64, period)
	for p := 0; p < period; p++ {
		for b := 0; b < 4; b++ {
			h.hVal[p][b] = h.randTable()
			h.hPrime[p][b] = h.randTable()
		}
	}
	return h
}

// randTable returns one random odd mixing constant for a (phase,byte)
// pair. key() multiplies it by the byte value instead of looking up a
// separate random constant per (phase,byte,value) triple, which keeps
// the table much smaller while preserving the "sum of per-byte
// contributions from self and parent rows" structure spec.md §4.3
// describes.
func (h *dupHash) randTable() uint64 {
	return h.seed.Uint64() | 1
}

func byteAt(r Row, b int) uint64 {
	return uint64((r >> uint(8*b)) & 0xff)
}

func (h *dupHash) key(a *Arena, s int) uint64 {
	var key uint64
	parent := a.Parent(s)
	for p := 0; p < h.period; p++ {
		row := a.Row(s, p)
		prow := a.Row(parent, p)
		for b := 0; b < 4; b++ {
			key += h.hVal[p][b] * byteAt(row, b)
			key += h.hPrime[p][b] * byteAt(prow, b)
		}
	}
	return key
}

func (h *dupHash) isDuplicateAt(a *Arena, s, candidate int) bool {
	ps := a.Parent(s)
	pc := a.Parent(candidate)
	for phase := 0; phase < h.period; phase++ {
		if a.Row(s, phase) != a.Row(candidate, phase) {
			return false
		}
		if a.Row(ps, phase) != a.Row(pc, phase) {
			return false
		}
	}
	return true
}

// isDuplicate hashes s, returning true if an equal state (itself and
// its parent's rows all match, across every phase) is already present.
// On a fresh slot it also inserts s.
func (h *dupHash) isDuplicate(a *Arena, s int) bool {
	key := h.key(a, s)
	for try := 0; try < hashProbes; try++ {
		slot := key & h.mask
		if h.table[slot] == 0 {
			h.table[slot] = s + 1
			return false
		}
		if h.isDuplicateAt(a, s, h.table[slot]-1) {
			return true
		}
		key += key >> 16
	}
	return false
}

// insert records s in the table without a duplicate check, used when
// the caller has already confirmed s is not a duplicate through some
// other path (e.g. after compaction's rehash pass).
func (h *dupHash) insert(a *Arena, s int) {
	key := h.key(a, s)
	for try := 0; try < hashProbes; try++ {
		slot := key & h.mask
		if h.table[slot] == 0 {
			h.table[slot] = s + 1
			return
		}
		key += key >> 16
	}
}

func (h *dupHash) clear() {
	for i := range h.table {
		h.table[i] = 0
	}
}
