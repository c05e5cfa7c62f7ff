package model

import "time"

type Badge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"` // Unique
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// BeginnerBadgeTitle is granted on a user's first accepted submission.
const BeginnerBadgeTitle = "Beginner Badge"
