package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/internal/db"
	"github.com/diewo77/go-complaints/internal/models"
	"gorm.io/gorm"
)

// Registration is the validated input of a sign-up.
type Registration struct {
	StudentID string
	Name      string
	Email     string
	Password  string
}

type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// Register creates a student account. Student id is checked before email, so a
// submission colliding on both reports ErrDuplicateStudentID.
func (s *AccountService) Register(ctx context.Context, reg Registration) (*models.User, error) {
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	tx := s.db.WithContext(ctx)

	if taken, err := s.exists(tx, "student_id = ?", reg.StudentID); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateStudentID
	}
	if taken, err := s.exists(tx, "email = ?", reg.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.User{
		StudentID: reg.StudentID,
		Name:      reg.Name,
		Email:     reg.Email,
		Password:  hash,
	}
	if err := tx.Create(u).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return nil, s.duplicateCause(tx, reg)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// duplicateCause maps a unique index violation lost to a concurrent sign-up
// back to the field that collided.
func (s *AccountService) duplicateCause(tx *gorm.DB, reg Registration) error {
	if taken, _ := s.exists(tx, "student_id = ?", reg.StudentID); taken {
		return ErrDuplicateStudentID
	}
	return ErrDuplicateEmail
}

func (s *AccountService) exists(tx *gorm.DB, query string, arg any) (bool, error) {
	var count int64
	if err := tx.Model(&models.User{}).Where(query, arg).Limit(1).Count(&count).Error; err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return count > 0, nil
}

// Authenticate verifies a student id and password pair.
func (s *AccountService) Authenticate(ctx context.Context, studentID, password string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("student_id = ?", studentID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if !auth.CheckPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// Get loads a user by id.
func (s *AccountService) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}
	return &u, nil
}

// Principal is the auth.Loader backed by this service.
func (s *AccountService) Principal(ctx context.Context, id uint) (auth.Principal, error) {
	u, err := s.Get(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return auth.Anonymous, fmt.Errorf("%w: %w", auth.ErrUnknownUser, err)
	}
	if err != nil {
		return auth.Anonymous, err
	}
	return PrincipalOf(u), nil
}

// PrincipalOf projects a user onto the session identity.
func PrincipalOf(u *models.User) auth.Principal {
	return auth.Principal{ID: u.ID, StudentID: u.StudentID, Name: u.Name, IsAdmin: u.IsAdmin}
}
