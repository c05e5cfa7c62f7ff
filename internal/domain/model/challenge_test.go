package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyPoints(t *testing.T) {
	assert.Equal(t, 10, DifficultyEasy.Points())
	assert.Equal(t, 20, DifficultyMedium.Points())
	assert.Equal(t, 40, DifficultyHard.Points())

	// Anything unrecognized is worth the hard rate.
	assert.Equal(t, 40, ChallengeDifficulty("Impossible").Points())
}
