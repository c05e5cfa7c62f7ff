package model

import "time"

type Purchase struct {
	UserID       string    `json:"user_id"`
	ResourceID   string    `json:"resource_id"`
	PurchaseDate time.Time `json:"purchase_date"`
}
