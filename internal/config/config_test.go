package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conwaylife-dev/ofind/internal/search"
)

func TestDefaultValidates(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Validate())
}

func TestValidateRejectsBadPeriod(t *testing.T) {
	c := Default()
	c.Period = 0
	assert.Error(t, c.Validate())

	c.Period = search.MaxPeriod
	assert.Error(t, c.Validate())
}

func TestValidateRejectsBadSymmetry(t *testing.T) {
	c := Default()
	c.Symmetry = "diagonal"
	assert.Error(t, c.Validate())
}

func TestValidateRejectsOversizedWidth(t *testing.T) {
	c := Default()
	c.RotorWidth = 20
	c.LeftStatorWidth = 10
	c.RightStatorWidth = 10
	assert.Error(t, c.Validate())
}

func TestValidateRejectsTooManySeedRows(t *testing.T) {
	c := Default()
	c.SeedRows = []string{"o..", ".o.", "..o"}
	assert.Error(t, c.Validate())
}

func TestValidateRejectsBadRule(t *testing.T) {
	c := Default()
	c.Rule = "not a rule"
	assert.Error(t, c.Validate())
}

func TestToParams(t *testing.T) {
	c := Default()
	c.RotorWidth = 3
	c.SeedRows = []string{"o.o"}
	p, err := c.ToParams()
	require.NoError(t, err)
	assert.Equal(t, 3, p.RotorWidth)
	require.Len(t, p.SeedRows, 1)
	assert.Equal(t, search.Row(0b101), p.SeedRows[0])
}

func TestToParamsRejectsSeedRowWiderThanWidth(t *testing.T) {
	c := Default()
	c.RotorWidth = 2
	c.SeedRows = []string{"o.o"}
	_, err := c.ToParams()
	assert.Error(t, err)
}
