package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/session"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()

	db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	return &Directory{DB: db, Cost: bcrypt.MinCost}
}

func TestDirectory_RegisterThenAuthenticate(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()

	registered, err := d.Register(ctx, "Olivia", "olivia@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, registered.ID)
	assert.Equal(t, "Olivia", registered.Name)

	user, err := d.Authenticate(ctx, "olivia@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered, user)

	var stored models.Account
	require.NoError(t, d.DB.Where("email = ?", "olivia@example.com").First(&stored).Error)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
}

func TestDirectory_Register_Conflict(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.Register(ctx, "Olivia", "olivia@example.com", "secret1")
	require.NoError(t, err)

	_, err = d.Register(ctx, "Other", "olivia@example.com", "secret2")
	assert.ErrorIs(t, err, session.ErrConflict)
}

func TestDirectory_Authenticate_Rejects(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()

	_, err := d.Register(ctx, "Olivia", "olivia@example.com", "secret1")
	require.NoError(t, err)

	_, err = d.Authenticate(ctx, "olivia@example.com", "wrong-pass")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)

	_, err = d.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, session.ErrInvalidCredentials)
}

func TestDirectory_BacksSessionStore(t *testing.T) {
	d := newTestDirectory(t)
	ctx := context.Background()
	s := session.NewStore(d)

	require.Error(t, s.Login(ctx, "olivia@example.com", "secret1"))
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Register(ctx, "Olivia", "olivia@example.com", "secret1"))
	s.Logout()

	require.NoError(t, s.Login(ctx, "olivia@example.com", "secret1"))
	assert.True(t, s.IsAuthenticated())
}
