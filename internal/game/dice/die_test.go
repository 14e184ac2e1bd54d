package dice

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollIsDeterministicForSeed(t *testing.T) {
	a, err := New(6)
	require.NoError(t, err)
	b, err := New(6)
	require.NoError(t, err)

	rngA := rand.New(rand.NewSource(42))
	rngB := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Roll(rngA), b.Roll(rngB))
	}
	assert.Len(t, a.History, 50)
}

func TestRollStaysInStateSpace(t *testing.T) {
	d, err := New(6)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		face := d.Roll(rng)
		assert.GreaterOrEqual(t, face, 1)
		assert.LessOrEqual(t, face, 6)
	}
}

func TestBiasedDieOnlyRollsWeightedFaces(t *testing.T) {
	d := &Die{StateSpace: []int{1, 2, 3}, Distribution: Biased, Weights: []int{0, 0, 5}}
	require.NoError(t, d.Validate())
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		assert.Equal(t, 3, d.Roll(rng))
	}
}

func TestValidate(t *testing.T) {
	_, err := New(0)
	assert.ErrorIs(t, err, ErrEmptyStateSpace)

	d := &Die{StateSpace: []int{1, 2}, Distribution: Biased, Weights: []int{1}}
	assert.ErrorIs(t, d.Validate(), ErrInvalidWeights)

	d = &Die{StateSpace: []int{1, 2}, Distribution: Biased, Weights: []int{0, 0}}
	assert.ErrorIs(t, d.Validate(), ErrInvalidWeights)
}

func TestDoublesAndSum(t *testing.T) {
	assert.True(t, IsDoubles([]int{3, 3}))
	assert.False(t, IsDoubles([]int{3, 4}))
	assert.False(t, IsDoubles([]int{3}))
	assert.Equal(t, 7, Sum([]int{3, 4}))
}

func TestCloneIsIndependent(t *testing.T) {
	d, err := New(6)
	require.NoError(t, err)
	d.Roll(rand.New(rand.NewSource(3)))

	c := d.Clone()
	c.History = append(c.History, 6)
	assert.Len(t, d.History, 1)
	assert.Equal(t, d.Last(), c.History[0])
}
