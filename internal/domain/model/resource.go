package model

import "time"

type Resource struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"` // Unique
	Slug         string    `json:"slug"`
	Description  string    `json:"description"`
	RewardPoints int       `json:"reward_points"` // Cost; 0 means free
	CreatedAt    time.Time `json:"created_at"`
	Tags         []Tag     `json:"tags,omitempty"`
}
