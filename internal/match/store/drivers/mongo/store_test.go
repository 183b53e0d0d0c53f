package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
	"github.com/aussiebroadwan/mutual/internal/match/store"
	"github.com/aussiebroadwan/mutual/internal/match/store/drivers/mongo"
	"github.com/aussiebroadwan/mutual/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupMongo starts a throwaway mongod and returns a migrated Store. The test
// is skipped when no container runtime is available.
func setupMongo(t *testing.T) *mongo.Store {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForListeningPort("27017/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	s, err := mongo.NewStore(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "mutual_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations(), "index creation must be repeatable")
	return s
}

func TestMongoStore(t *testing.T) {
	s := setupMongo(t)
	ctx := context.Background()

	newUser := func(name string) domain.User {
		u := domain.User{ID: idx.New().String(), Username: name, PasswordHash: "h", CreatedAt: time.Now().UTC()}
		require.NoError(t, s.Users().CreateUser(ctx, u))
		return u
	}
	addInterest := func(owner domain.User, target string) domain.Interest {
		i := domain.Interest{ID: idx.New().String(), OwnerID: owner.ID, TargetName: target, CreatedAt: time.Now().UTC()}
		require.NoError(t, s.Interests().CreateInterest(ctx, i))
		return i
	}

	alice := newUser("alice")
	bob := newUser("bob")
	carol := newUser("carol")

	t.Run("users", func(t *testing.T) {
		got, err := s.Users().GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		_, err = s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)

		err = s.Users().CreateUser(ctx, domain.User{ID: idx.New().String(), Username: "alice", PasswordHash: "h", CreatedAt: time.Now()})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		n, err := s.Users().CountUsers(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 3, n)
	})

	addInterest(alice, "bob")
	addInterest(alice, "zed")
	addInterest(alice, "bob")
	back := addInterest(bob, "alice")
	addInterest(carol, "alice")

	t.Run("list keeps insertion order", func(t *testing.T) {
		got, err := s.Interests().ListInterestsByOwner(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, got, 3)
		require.Equal(t, "bob", got[0].TargetName)
		require.Equal(t, "zed", got[1].TargetName)
		require.Equal(t, "bob", got[2].TargetName)

		none, err := s.Interests().ListInterestsByOwner(ctx, "nobody")
		require.NoError(t, err)
		require.NotNil(t, none)
		require.Empty(t, none)
	})

	t.Run("reciprocal", func(t *testing.T) {
		got, err := s.Interests().FindReciprocalInterest(ctx, alice.ID, "bob")
		require.NoError(t, err)
		require.Equal(t, back.ID, got.ID)

		_, err = s.Interests().FindReciprocalInterest(ctx, alice.ID, "zed")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("admirers", func(t *testing.T) {
		got, err := s.Interests().ListAdmirerUsernames(ctx, "alice")
		require.NoError(t, err)
		require.Equal(t, []string{"bob", "carol"}, got)

		got, err = s.Interests().ListAdmirerUsernames(ctx, "nobody")
		require.NoError(t, err)
		require.Empty(t, got)
	})
}
