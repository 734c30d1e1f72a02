// Package models contains the persisted record types for the PRODEA API.
package models

import "time"

// User owns posts, solutions and comments. The password column always holds
// a bcrypt hash and is never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Rating    int       `gorm:"default:0" json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}
