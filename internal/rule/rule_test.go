package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLife(t *testing.T) {
	r, err := Parse("B3/S23")
	require.NoError(t, err)
	assert.Equal(t, Rule(Life), r)

	born, survives := r.Digits()
	assert.Equal(t, []int{3}, born)
	assert.Equal(t, []int{2, 3}, survives)
}

func TestParseEmptyIsLife(t *testing.T) {
	r, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Rule(Life), r)
}

func TestParseOrderIndependent(t *testing.T) {
	a, err := Parse("B3/S23")
	require.NoError(t, err)
	b, err := Parse("S23/B3")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseCaseInsensitive(t *testing.T) {
	a, err := Parse("b3/s23")
	require.NoError(t, err)
	b, err := Parse("B3/S23")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseRejectsDigitNine(t *testing.T) {
	_, err := Parse("B9/S23")
	assert.Error(t, err)
}

func TestParseRejectsMissingGroup(t *testing.T) {
	_, err := Parse("B3")
	assert.Error(t, err)
}

func TestParseRejectsUnknownChar(t *testing.T) {
	_, err := Parse("B3/S23x")
	assert.Error(t, err)
}

func TestStringRoundTrip(t *testing.T) {
	r, err := Parse("B36/S23")
	require.NoError(t, err)
	assert.Equal(t, "B36/S23", r.String())

	r2, err := Parse(r.String())
	require.NoError(t, err)
	assert.Equal(t, r, r2)
}

func TestSurvivesAndBorn(t *testing.T) {
	r := Rule(Life)
	assert.True(t, r.Survives(2))
	assert.True(t, r.Survives(3))
	assert.False(t, r.Survives(1))
	assert.True(t, r.Born(3))
	assert.False(t, r.Born(2))
}
