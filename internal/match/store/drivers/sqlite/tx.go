package sqlite

import (
	"database/sql"

	"github.com/aussiebroadwan/mutual/internal/match/store"
	"github.com/aussiebroadwan/mutual/internal/match/store/drivers/sqlite/gen"
)

type txStore struct {
	q *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{q: gen.New(tx)}
}

func (t *txStore) Users() store.Users         { return &usersRepo{q: t.q} }
func (t *txStore) Interests() store.Interests { return &interestsRepo{q: t.q} }
