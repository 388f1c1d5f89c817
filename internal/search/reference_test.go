package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conwaylife-dev/ofind/internal/rule"
)

func TestReferenceEvolveIsolatedCellDies(t *testing.T) {
	// A single live cell in the middle row, nothing above or below or
	// beside it: zero neighbours, dies under B3/S23.
	self := Row(0b010)
	got := referenceEvolve(rule.Rule(rule.Life), 0, self, 0, 3)
	assert.Zero(t, got)
}

func TestReferenceEvolveBlockRowSurvives(t *testing.T) {
	// Top half of a 2x2 still-life block: the row above mirrors this
	// row exactly, the row below is empty. Each live cell has exactly
	// 3 neighbours (its horizontal partner plus the two cells directly
	// above), so both survive unchanged.
	row := Row(0b11)
	got := referenceEvolve(rule.Rule(rule.Life), row, row, 0, 2)
	assert.Equal(t, row, got)
}

func TestReferenceEvolveEmptyStaysEmpty(t *testing.T) {
	got := referenceEvolve(rule.Rule(rule.Life), 0, 0, 0, 5)
	assert.Zero(t, got)
}
