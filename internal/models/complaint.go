package models

import (
	"time"
)

// ComplaintStatus is the lifecycle state of a complaint.
type ComplaintStatus string

const (
	StatusOpen       ComplaintStatus = "open"
	StatusInProgress ComplaintStatus = "in_progress"
	StatusResolved   ComplaintStatus = "resolved"
	StatusRejected   ComplaintStatus = "rejected"
)

// Statuses lists every valid status in display order.
var Statuses = []ComplaintStatus{StatusOpen, StatusInProgress, StatusResolved, StatusRejected}

// Valid reports whether s belongs to the closed status set.
func (s ComplaintStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s ComplaintStatus) String() string { return string(s) }

// Complaint is a grievance filed by a student.
// Implements the Ownable interface for ownership-based authorization.
type Complaint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// UserID is the student who filed the complaint.
	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Title        string          `gorm:"size:200;not null" json:"title"`
	Description  string          `gorm:"type:text;not null" json:"description"`
	Category     string          `gorm:"size:50;not null;index" json:"category"`
	Status       ComplaintStatus `gorm:"size:20;not null;default:open;index" json:"status"`
	AdminRemarks string          `gorm:"type:text" json:"admin_remarks,omitempty"`
}

// GetUserID returns the owner's user ID (implements Ownable).
func (c *Complaint) GetUserID() uint {
	return c.UserID
}

// WasUpdated reports whether an admin has touched the complaint since it was filed.
func (c *Complaint) WasUpdated() bool {
	return c.UpdatedAt.After(c.CreatedAt)
}
