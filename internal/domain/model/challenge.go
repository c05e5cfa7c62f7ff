package model

import (
	"time"
)

type ChallengeDifficulty string

const (
	DifficultyEasy   ChallengeDifficulty = "Easy"
	DifficultyMedium ChallengeDifficulty = "Medium"
	DifficultyHard   ChallengeDifficulty = "Hard"
)

// Points returns the score/reward credit for an accepted first-time solve.
// Anything that is not Easy or Medium counts as Hard.
func (d ChallengeDifficulty) Points() int {
	switch d {
	case DifficultyEasy:
		return 10
	case DifficultyMedium:
		return 20
	default:
		return 40
	}
}

type Challenge struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Slug           string              `json:"slug"`
	Description    string              `json:"description"`
	Input          string              `json:"input"`
	ExpectedOutput string              `json:"expected_output"`
	Difficulty     ChallengeDifficulty `json:"difficulty"`
	Language       string              `json:"language"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Tags           []Tag               `json:"tags,omitempty"`
}
