package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, mongo)
// implement this and hand out sub-repositories per entity.
type Store interface {
	Users() Users
	Interests() Interests

	// ApplyMigrations brings the schema (tables or indexes) up to date.
	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Drivers without
	// multi-document transactions run fn directly against the store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx exposes the repositories bound to a single transaction. It cannot start
// another transaction.
type Tx interface {
	Users() Users
	Interests() Interests
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID). Returns
	// ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername does an exact, case-sensitive lookup.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CountUsers returns the number of registered users.
	CountUsers(ctx context.Context) (int64, error)
}

type Interests interface {
	// CreateInterest appends an interest. Duplicates are allowed.
	CreateInterest(ctx context.Context, i domain.Interest) error

	// ListInterestsByOwner returns the owner's interests in insertion order.
	ListInterestsByOwner(ctx context.Context, ownerID string) ([]domain.Interest, error)

	// FindReciprocalInterest returns the earliest interest owned by the user
	// named targetName whose own target is the username of ownerID.
	FindReciprocalInterest(ctx context.Context, ownerID, targetName string) (domain.Interest, error)

	// ListAdmirerUsernames returns the distinct usernames of every user with
	// an interest whose target is username.
	ListAdmirerUsernames(ctx context.Context, username string) ([]string, error)
}
