package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection     = "users"
	interestsCollection = "interests"

	// indexTimeout bounds ApplyMigrations, which has no caller context.
	indexTimeout = 30 * time.Second
)

// Store is a MongoDB backed store.Store. Users and interests live in two
// collections; reciprocity is always computed at query time.
type Store struct {
	client    *mongo.Client
	db        *mongo.Database
	users     *mongo.Collection
	interests *mongo.Collection
}

// NewStore connects to uri and uses the named database.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client:    client,
		db:        db,
		users:     db.Collection(usersCollection),
		interests: db.Collection(interestsCollection),
	}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// ApplyMigrations creates the indexes the repositories rely on. The unique
// username index is what makes concurrent registrations safe.
func (s *Store) ApplyMigrations() error {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	if _, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_username_unique"),
	}); err != nil {
		return fmt.Errorf("mongo: users index: %w", err)
	}

	if _, err := s.interests.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName("interests_owner_id"),
		},
		{
			Keys:    bson.D{{Key: "targetName", Value: 1}},
			Options: options.Index().SetName("interests_target_name"),
		},
	}); err != nil {
		return fmt.Errorf("mongo: interests indexes: %w", err)
	}

	return nil
}

// WithTx runs fn against the store itself. Multi-document transactions need
// a replica set, and no operation here writes more than one document.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return fn(s)
}

func (s *Store) Users() store.Users         { return &usersRepo{c: s.users} }
func (s *Store) Interests() store.Interests { return &interestsRepo{c: s.interests, users: s.users} }

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func mapDuplicate(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}
