package model

// LikeTarget identifies which kind of entity a like points at.
type LikeTarget string

const (
	LikeTargetChallenge LikeTarget = "challenge"
	LikeTargetResource  LikeTarget = "resource"
	LikeTargetComment   LikeTarget = "comment"
)

type Like struct {
	UserID   string     `json:"user_id"`
	Target   LikeTarget `json:"target"`
	TargetID string     `json:"target_id"`
}

// LikeCount is an aggregate row: likes per target entity.
type LikeCount struct {
	TargetID string `json:"target_id"`
	Likes    int    `json:"likes"`
}

// ToggleOutcome reports which way a like toggle went.
type ToggleOutcome string

const (
	ToggleAdded   ToggleOutcome = "added"
	ToggleRemoved ToggleOutcome = "removed"
)
