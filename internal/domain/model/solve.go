package model

import "time"

// SolveRecord permanently marks a challenge as solved by a user and retains
// the accepted solution verbatim. At most one record per (user, challenge)
// pair; the composite primary key is the conflict signal.
type SolveRecord struct {
	UserID      string    `json:"user_id"`
	ChallengeID string    `json:"challenge_id"`
	Solution    string    `json:"solution"`
	SolvedAt    time.Time `json:"solved_at"`
}
