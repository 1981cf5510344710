package models

import (
	"testing"
	"time"
)

func TestComplaint_GetUserID(t *testing.T) {
	c := &Complaint{UserID: 42}
	if got := c.GetUserID(); got != 42 {
		t.Errorf("GetUserID() = %d, want 42", got)
	}
}

func TestComplaintStatus_Valid(t *testing.T) {
	tests := []struct {
		status ComplaintStatus
		want   bool
	}{
		{StatusOpen, true},
		{StatusInProgress, true},
		{StatusResolved, true},
		{StatusRejected, true},
		{"pending", false},
		{"", false},
		{"RESOLVED", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestComplaint_WasUpdated(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := &Complaint{CreatedAt: now, UpdatedAt: now}
	if c.WasUpdated() {
		t.Error("fresh complaint should not report an update")
	}
	c.UpdatedAt = now.Add(time.Minute)
	if !c.WasUpdated() {
		t.Error("expected WasUpdated after status change")
	}
}
