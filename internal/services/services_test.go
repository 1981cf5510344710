package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/diewo77/go-complaints/internal/config"
	"github.com/diewo77/go-complaints/internal/db"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	d, err := db.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Migrate(d))
	return d
}

// fakeClock hands out strictly increasing timestamps one minute apart.
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func register(t *testing.T, svc *AccountService, studentID, email string) *models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), Registration{
		StudentID: studentID, Name: "Student " + studentID, Email: email, Password: "pw1",
	})
	require.NoError(t, err)
	return u
}
