package app

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/store"
	"github.com/aussiebroadwan/mutual/internal/match/store/drivers/mongo"
	"github.com/aussiebroadwan/mutual/internal/match/store/drivers/sqlite"
)

// OpenStore connects the configured store driver and applies its migrations.
func OpenStore(ctx context.Context, cfg Config) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.StoreDriver {
	case StoreDriverSQLite, "":
		dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		st, err = sqlite.NewStore(dsn)
	case StoreDriverMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		st, err = mongo.NewStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply store migrations: %w", err)
	}
	return st, nil
}
