package search

import "errors"

// ErrRowOverflow is returned when the row arena's cap (spec.md §4.2,
// "up to 2^20 entries; overflow is fatal") would be exceeded.
var ErrRowOverflow = errors.New("search: row arena capacity exceeded")

// MaxRows is the row arena's cap, matching NROWS in the original.
const MaxRows = 1 << 20

const (
	loBitMask = 0o125 // cells where the middle bit of each triple is 0
	hiBitMask = 0o252 // cells where the middle bit of each triple is 1
)

// setupExtensions builds, per column, the subset of the 8-way
// three-cell-window alphabet still consistent with rows a (two phases
// back), b (one phase back) and c (current phase) under the rule, for
// every column of width columns. Column 0 is the leftmost column of the
// symmetry-seeded state; extensions[i] narrows as more of row a/b/c is
// consumed while shifting right.
//
// sparkMask is applied at the full index level (see Tables.maskedExtension)
// and defaults to -1 (no relaxation) when sparks are not in play.
func (e *Engine) setupExtensions(a, b, c Row, sparkMask int, columns int) []int {
	t := e.tables
	ai, bi, ci := int(a), int(b), int(c)
	var x int

	switch e.params.Symmetry {
	case SymNone:
		x = 1
		x = t.maskedExtension(x, ai<<2, bi<<2, ci<<2, sparkMask)
		x = t.maskedExtension(x, ai<<1, bi<<1, ci<<1, sparkMask)
	case SymOdd:
		x = 0o377
		x = t.maskedExtension(x, (ai<<1)|((ai&2)>>1), (bi<<1)|((bi&2)>>1), ci<<1, sparkMask)
		x &= 0o245 // keep symmetric states only
	case SymEven:
		x = 0o303 // start with symmetric states only
		x = t.maskedExtension(x, (ai<<1)|(ai&1), (bi<<1)|(bi&1), ci<<1, sparkMask)
	}

	extensions := make([]int, columns)
	for i := 0; i < columns; i++ {
		x = t.maskedExtension(x, ai, bi, ci, sparkMask)
		extensions[i] = x
		ai >>= 1
		bi >>= 1
		ci >>= 1
	}
	return extensions
}

// listRows enumerates every Row r of the given width such that
// evolving b under (a, b, c) is consistent with r being the next
// phase's row, appending them to out. It returns ErrRowOverflow if the
// combined row arena budget maxTotal would be exceeded.
func (e *Engine) listRows(a, b, c Row, sparkMask int, width int, out []Row, maxTotal int) ([]Row, error) {
	extensions := e.setupExtensions(a, b, c, sparkMask, width)
	var overflow error
	var recurse func(partial Row, bit int, extension int)
	recurse = func(partial Row, bit int, extension int) {
		if overflow != nil || extension == 0 {
			return
		}
		e.nice()
		if bit < 0 {
			out = append(out, partial)
			if len(out) > maxTotal {
				overflow = ErrRowOverflow
			}
			return
		}
		extension &= extensions[bit]
		recurse(partial, bit-1, e.tables.downShift(extension&loBitMask))
		recurse(partial+(1<<uint(bit)), bit-1, e.tables.downShift(extension&hiBitMask))
	}
	recurse(0, width-1, 0o3)
	if overflow != nil {
		return out, overflow
	}
	return out, nil
}
