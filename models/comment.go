package models

import "time"

// Comment belongs to a post, a user and a solution.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Text       string    `gorm:"not null" json:"text"`
	Rating     int       `gorm:"default:0" json:"rating"`
	PostID     uint      `json:"post_id"`
	UserID     uint      `json:"user_id"`
	SolutionID uint      `json:"solution_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
