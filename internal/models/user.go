package models

import (
	"time"
)

// User is a registered account. Students log in with StudentID; exactly one
// seeded account carries IsAdmin.
type User struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
	StudentID  string      `gorm:"uniqueIndex;size:32;not null" json:"student_id"`
	Name       string      `gorm:"size:100;not null" json:"name"`
	Email      string      `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string      `gorm:"size:255;not null" json:"-"` // bcrypt hash, never exposed in JSON
	IsAdmin    bool        `gorm:"not null;default:false;index" json:"is_admin"`
	Complaints []Complaint `gorm:"foreignKey:UserID" json:"complaints,omitempty"`
}
