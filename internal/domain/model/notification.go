package model

import "time"

type Notification struct {
	ID                 string    `json:"id"`
	RecipientID        string    `json:"recipient_id"`
	Message            string    `json:"message"`
	Link               string    `json:"link"`
	Read               bool      `json:"read"`
	ChallengerUsername string    `json:"challenger_username,omitempty"`
	ChallengeID        *string   `json:"challenge_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// ChallengeInvite records one user challenging another to solve a challenge.
type ChallengeInvite struct {
	ID          string       `json:"id"`
	SenderID    string       `json:"sender_id"`
	RecipientID string       `json:"recipient_id"`
	ChallengeID string       `json:"challenge_id"`
	Status      InviteStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
