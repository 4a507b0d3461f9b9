package credstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/legacyvault/internal/client/client"
	"github.com/dmitrijs2005/legacyvault/internal/client/models"
	"github.com/dmitrijs2005/legacyvault/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/legacyvault/internal/common"
	"github.com/dmitrijs2005/legacyvault/internal/logging"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, secret string) (*SQLiteStore, *metadata.SQLiteRepository) {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "device.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewSQLiteStore(db, secret, logging.NewNop()), metadata.NewSQLiteRepository(db)
}

func testUser() *models.User {
	return &models.User{
		ID:        "u1",
		Email:     "ann@example.com",
		Username:  "ann",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_EmptyIsAbsent(t *testing.T) {
	s, _ := newStore(t, "")
	ctx := context.Background()

	require.Empty(t, s.GetToken(ctx))
	require.Nil(t, s.GetUserData(ctx))
	require.False(t, s.IsAuthenticated(ctx))
}

func TestSQLiteStore_TokenAndUserRoundTrip(t *testing.T) {
	s, _ := newStore(t, "")
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "tok-1"))
	require.NoError(t, s.SetUserData(ctx, testUser()))

	require.Equal(t, "tok-1", s.GetToken(ctx))
	require.Equal(t, testUser(), s.GetUserData(ctx))
	require.True(t, s.IsAuthenticated(ctx))
}

func TestSQLiteStore_TokenSealedAtRest(t *testing.T) {
	s, repo := newStore(t, "device-secret")
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "tok-secret"))

	raw, err := repo.Get(ctx, common.TokenStorageKey)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "tok-secret")

	require.Equal(t, "tok-secret", s.GetToken(ctx))
}

func TestSQLiteStore_WrongSecretTreatsTokenAsAbsent(t *testing.T) {
	s, _ := newStore(t, "secret-a")
	ctx := context.Background()
	require.NoError(t, s.SetToken(ctx, "tok"))

	other := NewSQLiteStore(s.db, "secret-b", logging.NewNop())
	require.Empty(t, other.GetToken(ctx))
	require.False(t, other.IsAuthenticated(ctx))
}

func TestSQLiteStore_SetSessionWritesBoth(t *testing.T) {
	s, _ := newStore(t, "device-secret")
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, testUser(), "tok-2"))

	require.Equal(t, "tok-2", s.GetToken(ctx))
	require.Equal(t, "u1", s.GetUserData(ctx).ID)
}

func TestSQLiteStore_ClearAuthRemovesBothKeepsSalt(t *testing.T) {
	s, repo := newStore(t, "device-secret")
	ctx := context.Background()

	require.NoError(t, s.SetSession(ctx, testUser(), "tok"))
	require.NoError(t, s.ClearAuth(ctx))

	require.Empty(t, s.GetToken(ctx))
	require.Nil(t, s.GetUserData(ctx))

	salt, err := repo.Get(ctx, saltStorageKey)
	require.NoError(t, err)
	require.NotEmpty(t, salt)
}

func TestSQLiteStore_CorruptUserDataIsAbsent(t *testing.T) {
	s, repo := newStore(t, "")
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, common.UserDataStorageKey, []byte("{not json")))
	require.Nil(t, s.GetUserData(ctx))
}

func TestSQLiteStore_ClosedDB(t *testing.T) {
	s, _ := newStore(t, "")
	ctx := context.Background()
	require.NoError(t, s.SetSession(ctx, testUser(), "tok"))
	require.NoError(t, s.db.Close())

	// reads degrade to absent
	require.Empty(t, s.GetToken(ctx))
	require.Nil(t, s.GetUserData(ctx))
	require.False(t, s.IsAuthenticated(ctx))

	// writes report the failure
	require.Error(t, s.SetToken(ctx, "x"))
	require.Error(t, s.SetUserData(ctx, testUser()))
	require.Error(t, s.SetSession(ctx, testUser(), "x"))
	require.Error(t, s.ClearAuth(ctx))
}
