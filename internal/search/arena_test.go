package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaRootIsSelfParent(t *testing.T) {
	a := NewArena(2, 16, 8)
	assert.True(t, a.IsRoot(a.Root()))
	assert.Equal(t, a.Root(), a.Parent(a.Root()))
	assert.Equal(t, Row(0), a.Row(a.Root(), 0))
	assert.Equal(t, Row(0), a.Row(a.Root(), 1))
}

func TestArenaOrderingInvariant(t *testing.T) {
	a := NewArena(2, 16, 8)
	s1, added, err := a.Enqueue(a.Root(), []Row{1, 2}, true)
	require.NoError(t, err)
	require.True(t, added)
	assert.Less(t, a.Parent(s1), s1)

	s2, added, err := a.Enqueue(s1, []Row{3, 4}, true)
	require.NoError(t, err)
	require.True(t, added)
	assert.Less(t, a.Parent(s2), s2)
	assert.Equal(t, s1, a.Parent(s2))
}

func TestArenaDedupSoundness(t *testing.T) {
	a := NewArena(2, 16, 8)
	_, added, err := a.Enqueue(a.Root(), []Row{1, 2}, true)
	require.NoError(t, err)
	require.True(t, added)

	before := a.Len()
	_, added, err = a.Enqueue(a.Root(), []Row{1, 2}, true)
	require.NoError(t, err)
	assert.False(t, added, "an identical (parent, rows) pair must be rejected as a duplicate")
	assert.Equal(t, before, a.Len(), "a rejected duplicate must not grow the arena")
}

func TestArenaRejectsZeroChildOfRoot(t *testing.T) {
	a := NewArena(2, 16, 8)
	before := a.Len()
	_, added, err := a.Enqueue(a.Root(), []Row{0, 0}, true)
	require.NoError(t, err)
	assert.False(t, added, "an all-zero child of the root is a phantom successor state, not a real one")
	assert.Equal(t, before, a.Len())
}

func TestArenaCapacityExceeded(t *testing.T) {
	a := NewArena(1, 2, 4)
	_, added, err := a.Enqueue(a.Root(), []Row{1}, true)
	require.NoError(t, err)
	require.True(t, added)

	_, _, err = a.Enqueue(a.Root(), []Row{2}, true)
	assert.ErrorIs(t, err, ErrArenaFull)
}

func TestArenaCompactPreservesLiveRows(t *testing.T) {
	a := NewArena(1, 16, 8)
	s1, _, err := a.Enqueue(a.Root(), []Row{1}, true)
	require.NoError(t, err)
	s2, _, err := a.Enqueue(s1, []Row{2}, true)
	require.NoError(t, err)
	a.AdvanceUnprocessed() // root processed
	a.AdvanceUnprocessed() // s1 processed; s2 remains the unprocessed frontier

	wantRows := map[Row]bool{a.Row(s1, 0): true, a.Row(s2, 0): true}
	a.Compact()

	seen := map[Row]bool{}
	for s := 0; s < a.Len(); s++ {
		seen[a.Row(s, 0)] = true
		assert.LessOrEqual(t, a.Parent(s), s, "arena ordering invariant must survive compaction")
	}
	for r := range wantRows {
		assert.True(t, seen[r], "compaction must not drop a live state's row")
	}
}
