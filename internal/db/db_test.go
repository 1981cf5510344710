package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/internal/config"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
	d, err := Open(cfg, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(d))
	return d
}

var testAdmin = config.AdminConfig{
	StudentID: "admin001",
	Name:      "Administrator",
	Email:     "admin@college.edu",
	Password:  "admin123",
}

func TestSeedIdempotent(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, d, testAdmin))
	require.NoError(t, Seed(ctx, d, testAdmin))

	var admins []models.User
	require.NoError(t, d.Where("is_admin = ?", true).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin001", admins[0].StudentID)
	assert.True(t, auth.CheckPassword(admins[0].Password, "admin123"))
}

func TestEnsureAdmin_ExistingAdminKept(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, d.Create(&models.User{
		StudentID: "boss", Name: "Boss", Email: "boss@college.edu", Password: "x", IsAdmin: true,
	}).Error)

	created, err := EnsureAdmin(ctx, d, testAdmin)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	d.Model(&models.User{}).Where("student_id = ?", "admin001").Count(&count)
	assert.Zero(t, count)
}

func TestEnsureAdmin_StudentsDoNotCount(t *testing.T) {
	d := openTestDB(t)
	require.NoError(t, d.Create(&models.User{
		StudentID: "S1", Name: "Alice", Email: "a@x.com", Password: "x",
	}).Error)

	created, err := EnsureAdmin(context.Background(), d, testAdmin)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestIsUniqueViolation(t *testing.T) {
	d := openTestDB(t)
	u := models.User{StudentID: "S1", Name: "Alice", Email: "a@x.com", Password: "x"}
	require.NoError(t, d.Create(&u).Error)

	dup := models.User{StudentID: "S1", Name: "Other", Email: "b@x.com", Password: "x"}
	err := d.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(gorm.ErrRecordNotFound))
}

func TestPing(t *testing.T) {
	assert.NoError(t, Ping(openTestDB(t)))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrationFS.ReadDir("migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "complaints.db?_foreign_keys=on&_busy_timeout=5000", sqliteDSN("complaints.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on&_busy_timeout=5000", sqliteDSN("file:x?mode=memory"))
}

func TestSQLiteLowerFoldsUnicode(t *testing.T) {
	d := openTestDB(t)
	var got string
	require.NoError(t, d.Raw("SELECT lower(?)", "CAFÉ Ÿ ÉTÉ").Scan(&got).Error)
	assert.Equal(t, "café ÿ été", got)
}
