package search

import "github.com/conwaylife-dev/ofind/internal/rule"

// refGridSize bounds the independent reference simulator used by the
// rule-consistency property test. It only needs to comfortably hold a
// TotalWidth()-wide pattern plus a one-cell dead border on each side.
const refGridSize = 40

// refGrid is a general-rule reimplementation of the cell-counting
// evolve step from shipsearch.go's Universe.iterate(), generalized
// from Conway's Life's hardcoded birth/survival counts to an arbitrary
// rule.Rule, and coded independently of extTab/downShifts.
// reference_test.go checks it against hand-computed cases only; no test
// compares it with the extension tables' output.
type refGrid struct {
	cells [refGridSize][refGridSize]int
}

// set marks cell (x,y) live; x,y must stay clear of the border so
// iterate's neighbour reads never go out of bounds.
func (self *refGrid) set(x, y int) { self.cells[x][y] = 1 }

func (self *refGrid) get(x, y int) int { return self.cells[x][y] }

// iterate evolves the grid one generation under r, mirroring
// shipsearch.go's Universe.iterate() but with the survive/birth test
// generalized from Life's literal count==2||3 / count==3.
func (self *refGrid) iterate(r rule.Rule) {
	var next [refGridSize][refGridSize]int
	for x := 1; x < refGridSize-1; x++ {
		for y := 1; y < refGridSize-1; y++ {
			count := self.cells[x-1][y-1] + self.cells[x-1][y] + self.cells[x-1][y+1] +
				self.cells[x][y-1] + self.cells[x][y+1] +
				self.cells[x+1][y-1] + self.cells[x+1][y] + self.cells[x+1][y+1]

			if self.cells[x][y] != 0 {
				if r.Survives(count) {
					next[x][y] = 1
				}
			} else if r.Born(count) {
				next[x][y] = 1
			}
		}
	}
	self.cells = next
}

// referenceEvolve evolves one row (three-row window a,b,c centred on
// the row being produced) one generation under r across width
// columns, column-by-column, using refGrid instead of the extension
// tables.
func referenceEvolve(r rule.Rule, a, b, c Row, width int) Row {
	var g refGrid
	originX := refGridSize/2 - width/2
	originY := refGridSize / 2
	for col := 0; col < width; col++ {
		bit := width - 1 - col
		if a&(1<<uint(bit)) != 0 {
			g.set(originX+col, originY-1)
		}
		if b&(1<<uint(bit)) != 0 {
			g.set(originX+col, originY)
		}
		if c&(1<<uint(bit)) != 0 {
			g.set(originX+col, originY+1)
		}
	}
	g.iterate(r)

	var out Row
	for col := 0; col < width; col++ {
		bit := width - 1 - col
		if g.get(originX+col, originY) != 0 {
			out |= 1 << uint(bit)
		}
	}
	return out
}
