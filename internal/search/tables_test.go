package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conwaylife-dev/ofind/internal/rule"
)

func TestSanityCheck(t *testing.T) {
	tab := BuildTables(uint32(rule.Life), false, func() {})
	assert.True(t, tab.SanityCheck(), "tcompatible(0,2,0) must be false for a valid rule")
}

func TestDownShiftsOpenQuestion(t *testing.T) {
	tab := BuildTables(uint32(rule.Life), false, func() {})
	assert.Zero(t, tab.downShifts[255], "downShifts[255] is left unbuilt, per DESIGN.md's open question resolutions")
	assert.Zero(t, tab.downShifts[0])
}

func TestRevTermRoundTrip(t *testing.T) {
	tab := BuildTables(uint32(rule.Life), false, func() {})
	for x := 0; x < revTermSize; x += 37 {
		got := tab.revTerm[tab.revTerm[x]]
		assert.Equal(t, uint16(x), got, "revTerm must be an involution")
	}
	// exact boundary cases
	assert.Equal(t, uint16(0), tab.revTerm[0])
}

func TestInitialTermStateFixpoint(t *testing.T) {
	tab := BuildTables(uint32(rule.Life), false, func() {})
	next := tab.nxTerm[tab.InitialTermState]
	assert.Equal(t, tab.InitialTermState, next, "InitialTermState must be a fixpoint of nxTerm")
}

func TestZeroLotLineSkipsInitialTermState(t *testing.T) {
	tab := BuildTables(uint32(rule.Life), true, func() {})
	assert.Equal(t, uint16(1), tab.InitialTermState)
	assert.Equal(t, 0, tab.AddlStatorCols)
}
