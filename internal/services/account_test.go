package services

import (
	"context"
	"testing"

	"github.com/diewo77/go-complaints/auth"
	"github.com/diewo77/go-complaints/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	d := setupDB(t)
	svc := NewAccountService(d)

	u := register(t, svc, "S1", "A@X.com")
	assert.NotZero(t, u.ID)
	assert.False(t, u.IsAdmin)
	assert.Equal(t, "a@x.com", u.Email)
	assert.NotEqual(t, "pw1", u.Password)
	assert.True(t, auth.CheckPassword(u.Password, "pw1"))
}

func TestRegister_DuplicateStudentID(t *testing.T) {
	d := setupDB(t)
	svc := NewAccountService(d)
	register(t, svc, "S1", "a@x.com")

	_, err := svc.Register(context.Background(), Registration{StudentID: "S1", Name: "B", Email: "b@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateStudentID)

	var count int64
	d.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	d := setupDB(t)
	svc := NewAccountService(d)
	register(t, svc, "S1", "a@x.com")

	_, err := svc.Register(context.Background(), Registration{StudentID: "S2", Name: "B", Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegister_StudentIDCheckedFirst(t *testing.T) {
	d := setupDB(t)
	svc := NewAccountService(d)
	register(t, svc, "S1", "a@x.com")

	_, err := svc.Register(context.Background(), Registration{StudentID: "S1", Name: "B", Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrDuplicateStudentID)
}

func TestRegister_PasswordTooLong(t *testing.T) {
	svc := NewAccountService(setupDB(t))
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'x'
	}
	_, err := svc.Register(context.Background(), Registration{StudentID: "S1", Name: "A", Email: "a@x.com", Password: string(long)})
	assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
}

func TestDuplicateCause(t *testing.T) {
	d := setupDB(t)
	svc := NewAccountService(d)
	register(t, svc, "S1", "a@x.com")

	assert.ErrorIs(t, svc.duplicateCause(d, Registration{StudentID: "S1", Email: "z@x.com"}), ErrDuplicateStudentID)
	assert.ErrorIs(t, svc.duplicateCause(d, Registration{StudentID: "S9", Email: "a@x.com"}), ErrDuplicateEmail)
}

func TestAuthenticate(t *testing.T) {
	d := setupDB(t)
	svc := NewAccountService(d)
	register(t, svc, "S1", "a@x.com")
	ctx := context.Background()

	u, err := svc.Authenticate(ctx, "S1", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "S1", u.StudentID)

	_, err = svc.Authenticate(ctx, "S1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody", "pw1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestPrincipal(t *testing.T) {
	d := setupDB(t)
	svc := NewAccountService(d)
	u := register(t, svc, "S1", "a@x.com")
	ctx := context.Background()

	p, err := svc.Principal(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.Principal{ID: u.ID, StudentID: "S1", Name: "Student S1"}, p)

	p, err = svc.Principal(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.ErrorIs(t, err, auth.ErrUnknownUser, "the session layer must see a deleted user as such")
	assert.Equal(t, auth.Anonymous, p)
}
