package models

import "time"

// Solution is an answer to a post. Deleting a post or user leaves its
// solutions in place; foreign keys are not cascaded.
type Solution struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"not null" json:"text"`
	Rating    int       `gorm:"default:0" json:"rating"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
