package services

import (
	"errors"
	"time"
)

var (
	ErrDuplicateStudentID = errors.New("student id already registered")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrComplaintNotFound  = errors.New("complaint not found")
	ErrInvalidStatus      = errors.New("invalid complaint status")
)

// Clock returns the current time; services take one so tests can pin timestamps.
type Clock func() time.Time
