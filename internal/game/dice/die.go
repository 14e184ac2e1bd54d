// Package dice provides seeded die rolling for the simulation engine.
//
// Rolls are deterministic with respect to the *rand.Rand passed in: a game
// seeded with the same value rolls the same sequence of faces.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
)

// Distribution names how a die picks a face.
type Distribution string

const (
	Uniform Distribution = "uniform"
	Biased  Distribution = "biased"
)

var (
	// ErrEmptyStateSpace is returned when a die has no faces.
	ErrEmptyStateSpace = errors.New("die has no faces")
	// ErrInvalidWeights is returned when biased weights do not match the faces.
	ErrInvalidWeights = errors.New("die weights do not match faces")
)

// Die is a single die with an explicit face list.
type Die struct {
	StateSpace   []int
	Distribution Distribution
	// Weights are only consulted for biased dice; one per face.
	Weights []int
	// History holds every face rolled by this die, oldest first.
	History []int
}

// New creates a uniform die with faces 1..sides.
func New(sides int) (*Die, error) {
	if sides <= 0 {
		return nil, fmt.Errorf("new die with %d sides: %w", sides, ErrEmptyStateSpace)
	}
	faces := make([]int, sides)
	for i := range faces {
		faces[i] = i + 1
	}
	return &Die{StateSpace: faces, Distribution: Uniform}, nil
}

// Validate checks the die configuration.
func (d *Die) Validate() error {
	if len(d.StateSpace) == 0 {
		return ErrEmptyStateSpace
	}
	if d.Distribution == Biased {
		if len(d.Weights) != len(d.StateSpace) {
			return ErrInvalidWeights
		}
		total := 0
		for _, w := range d.Weights {
			if w < 0 {
				return ErrInvalidWeights
			}
			total += w
		}
		if total == 0 {
			return ErrInvalidWeights
		}
	}
	return nil
}

// Roll picks a face with rng and appends it to the die history.
func (d *Die) Roll(rng *rand.Rand) int {
	var face int
	if d.Distribution == Biased {
		face = d.rollBiased(rng)
	} else {
		face = d.StateSpace[rng.Intn(len(d.StateSpace))]
	}
	d.History = append(d.History, face)
	return face
}

func (d *Die) rollBiased(rng *rand.Rand) int {
	total := 0
	for _, w := range d.Weights {
		total += w
	}
	pick := rng.Intn(total)
	for i, w := range d.Weights {
		if pick < w {
			return d.StateSpace[i]
		}
		pick -= w
	}
	return d.StateSpace[len(d.StateSpace)-1]
}

// Last returns the most recent face, or 0 when the die was never rolled.
func (d *Die) Last() int {
	if len(d.History) == 0 {
		return 0
	}
	return d.History[len(d.History)-1]
}

// Clone returns a deep copy of the die.
func (d *Die) Clone() *Die {
	return &Die{
		StateSpace:   append([]int(nil), d.StateSpace...),
		Distribution: d.Distribution,
		Weights:      append([]int(nil), d.Weights...),
		History:      append([]int(nil), d.History...),
	}
}

// RollAll rolls every die and returns the faces in die order.
func RollAll(rng *rand.Rand, dice []*Die) []int {
	faces := make([]int, len(dice))
	for i, d := range dice {
		faces[i] = d.Roll(rng)
	}
	return faces
}

// IsDoubles reports whether every face in a multi-die roll is equal.
func IsDoubles(faces []int) bool {
	if len(faces) < 2 {
		return false
	}
	for _, f := range faces[1:] {
		if f != faces[0] {
			return false
		}
	}
	return true
}

// Sum totals a roll.
func Sum(faces []int) int {
	total := 0
	for _, f := range faces {
		total += f
	}
	return total
}
