package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"MATCH_ISSUER", "MATCH_STORE_DRIVER", "MATCH_DATABASE_FILE", "MATCH_MONGO_URI",
		"MATCH_MONGO_DATABASE", "MATCH_PEPPER_FILE", "MATCH_SIGNING_KEY_FILE",
		"MATCH_TOKEN_TTL", "MATCH_CORS_ORIGINS", "ENV", "LOG_LEVEL", "LOG_FORMAT",
		"PORT", "SHUTDOWN_GRACE_PERIOD",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "mutual", cfg.Issuer)
	require.Equal(t, StoreDriverSQLite, cfg.StoreDriver)
	require.Equal(t, "mutual.db", cfg.DatabaseFile)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	require.Equal(t, "mutual", cfg.MongoDatabase)
	require.Equal(t, "pepper", cfg.PepperFile)
	require.Empty(t, cfg.SigningKeyFile)
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Empty(t, cfg.CORSOrigins)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MATCH_ISSUER", "https://mutual.example.com")
	t.Setenv("MATCH_STORE_DRIVER", "Mongo")
	t.Setenv("MATCH_MONGO_URI", "mongodb://db:27017")
	t.Setenv("MATCH_SIGNING_KEY_FILE", "/data/signing.pem")
	t.Setenv("MATCH_TOKEN_TTL", "30m")
	t.Setenv("MATCH_CORS_ORIGINS", "https://a.example.com/, https://b.example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "2")

	cfg := LoadConfig()
	require.Equal(t, "https://mutual.example.com", cfg.Issuer)
	require.Equal(t, StoreDriverMongo, cfg.StoreDriver)
	require.Equal(t, "mongodb://db:27017", cfg.MongoURI)
	require.Equal(t, "/data/signing.pem", cfg.SigningKeyFile)
	require.Equal(t, 30*time.Minute, cfg.TokenTTL)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 2*time.Minute, cfg.ShutdownGracePeriod)
}

func TestLoadConfigBadNumbersFallBack(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("MATCH_TOKEN_TTL", "soon")

	cfg := LoadConfig()
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, time.Hour, cfg.TokenTTL)
}
