package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conwaylife-dev/ofind/internal/rule"
)

func lifeParams(period, rotor int, sym Symmetry, allowRowSym bool) Params {
	return Params{
		Rule:        uint32(rule.Life),
		Period:      period,
		Symmetry:    sym,
		AllowRowSym: allowRowSym,
		RotorWidth:  rotor,
	}
}

func TestNewBuildsUsableEngine(t *testing.T) {
	e, err := New(lifeParams(2, 3, SymNone, false))
	require.NoError(t, err)
	assert.Equal(t, 0, e.arena.Root())
	assert.True(t, e.tables.SanityCheck())
}

func TestRunSmallSearchStaysConsistent(t *testing.T) {
	e, err := New(
		lifeParams(2, 1, SymNone, true),
		WithCaps(1<<12, 1<<12, 1<<12),
		ArenaCapacity(1<<10),
	)
	require.NoError(t, err)

	_, err = e.Run()
	require.NoError(t, err, "a bounded search must terminate cleanly, found or not")

	for s := 1; s < e.arena.Len(); s++ {
		if e.arena.isDead(s) {
			continue
		}
		p := e.arena.Parent(s)
		assert.Less(t, p, s, "arena ordering invariant: parent(s) < s")
		stm := e.params.StatorMask()
		if stm != 0 {
			for k := 1; k < e.params.Period; k++ {
				assert.Equal(t, e.arena.Row(s, k)&stm, e.arena.Row(s, k-1)&stm,
					"stator bits must be identical across adjacent phases of the same state")
			}
		}
	}
}

// TestRunDeepeningModeStaysConsistent checks that setting MaxDeepen
// (which only affects what compact does once the queue fills, not the
// top-level search algorithm) doesn't break a small run that never
// actually reaches QueueFull.
func TestRunDeepeningModeStaysConsistent(t *testing.T) {
	e, err := New(
		lifeParams(2, 1, SymNone, true),
		WithCaps(1<<12, 1<<12, 1<<12),
		ArenaCapacity(1<<10),
	)
	require.NoError(t, err)
	e.params.MaxDeepen = 3

	_, err = e.Run()
	require.NoError(t, err)
}
