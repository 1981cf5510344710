package db

import (
	"context"
	"fmt"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/internal/config"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Seed initializes the database with required seed data.
// Should be called after Migrate.
func Seed(ctx context.Context, db *gorm.DB, admin config.AdminConfig) error {
	created, err := EnsureAdmin(ctx, db, admin)
	if err != nil {
		return err
	}
	if created {
		zerolog.Ctx(ctx).Info().Str("student_id", admin.StudentID).Msg("seeded administrator account")
	}
	return nil
}

// EnsureAdmin creates the administrator account unless some admin already exists.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, db *gorm.DB, admin config.AdminConfig) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	u := models.User{
		StudentID: admin.StudentID,
		Name:      admin.Name,
		Email:     admin.Email,
		Password:  hash,
		IsAdmin:   true,
	}
	if err := db.WithContext(ctx).Create(&u).Error; err != nil {
		if IsUniqueViolation(err) {
			// another instance seeded concurrently
			return false, nil
		}
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
