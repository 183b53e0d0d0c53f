package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
	"github.com/aussiebroadwan/mutual/internal/match/store"
	"github.com/aussiebroadwan/mutual/internal/match/store/drivers/sqlite"
	"github.com/aussiebroadwan/mutual/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createUser(t *testing.T, s store.Store, username string) domain.User {
	t.Helper()
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "$argon2id$test",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func addInterest(t *testing.T, s store.Store, owner domain.User, target string) domain.Interest {
	t.Helper()
	i := domain.Interest{
		ID:         idx.New().String(),
		OwnerID:    owner.ID,
		TargetName: target,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, s.Interests().CreateInterest(context.Background(), i))
	return i
}

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.ApplyMigrations())

	version, dirty, err := s.MigrationVersion()
	require.NoError(t, err)
	require.False(t, dirty)
	require.EqualValues(t, 1, version)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	alice := createUser(t, s, "alice")

	t.Run("get by id", func(t *testing.T) {
		got, err := s.Users().GetUserByID(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, alice.Username, got.Username)
		require.Equal(t, alice.PasswordHash, got.PasswordHash)
		require.WithinDuration(t, alice.CreatedAt, got.CreatedAt, time.Second)
	})

	t.Run("get by username is case sensitive", func(t *testing.T) {
		got, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		_, err = s.Users().GetUserByUsername(ctx, "Alice")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, domain.User{
			ID:           idx.New().String(),
			Username:     "alice",
			PasswordHash: "x",
			CreatedAt:    time.Now(),
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("count", func(t *testing.T) {
		n, err := s.Users().CountUsers(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 1, n)
	})
}

func TestInterests(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	carol := createUser(t, s, "carol")

	t.Run("empty list is not nil", func(t *testing.T) {
		got, err := s.Interests().ListInterestsByOwner(ctx, carol.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	first := addInterest(t, s, alice, "bob")
	addInterest(t, s, alice, "dave")
	addInterest(t, s, alice, "bob")

	t.Run("insertion order with duplicates", func(t *testing.T) {
		got, err := s.Interests().ListInterestsByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, first.ID, got[0].ID)
		require.Equal(t, []string{"bob", "dave", "bob"}, []string{got[0].TargetName, got[1].TargetName, got[2].TargetName})
	})

	t.Run("no reciprocal yet", func(t *testing.T) {
		_, err := s.Interests().FindReciprocalInterest(ctx, alice.ID, "bob")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	back := addInterest(t, s, bob, "alice")

	t.Run("reciprocal found", func(t *testing.T) {
		got, err := s.Interests().FindReciprocalInterest(ctx, alice.ID, "bob")
		require.NoError(t, err)
		require.Equal(t, back.ID, got.ID)
		require.Equal(t, bob.ID, got.OwnerID)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := s.Interests().FindReciprocalInterest(ctx, alice.ID, "dave")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	addInterest(t, s, carol, "alice")
	addInterest(t, s, carol, "alice")

	t.Run("admirers are distinct", func(t *testing.T) {
		got, err := s.Interests().ListAdmirerUsernames(ctx, "alice")
		require.NoError(t, err)
		require.ElementsMatch(t, []string{"bob", "carol"}, got)
	})

	t.Run("no admirers", func(t *testing.T) {
		got, err := s.Interests().ListAdmirerUsernames(ctx, "nobody")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	boom := errors.New("boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		require.NoError(t, tx.Users().CreateUser(ctx, domain.User{
			ID: idx.New().String(), Username: "ghost", PasswordHash: "x", CreatedAt: time.Now(),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, domain.User{
			ID: idx.New().String(), Username: "real", PasswordHash: "x", CreatedAt: time.Now(),
		})
	}))

	_, err = s.Users().GetUserByUsername(ctx, "real")
	require.NoError(t, err)
}
