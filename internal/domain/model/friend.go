package model

// Friendship is an unordered user pair. Repositories store it normalized
// (UserID1 < UserID2) so the composite primary key rejects duplicates in
// either order.
type Friendship struct {
	UserID1 string `json:"user_id1"`
	UserID2 string `json:"user_id2"`
}
