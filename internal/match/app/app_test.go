package app

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/mutual/pkg/jwtx"
	"github.com/aussiebroadwan/mutual/pkg/matchsdk"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Issuer:              "https://mutual.test",
		StoreDriver:         StoreDriverSQLite,
		DatabaseFile:        filepath.Join(dir, "mutual.db"),
		PepperFile:          filepath.Join(dir, "pepper"),
		SigningKeyFile:      filepath.Join(dir, "keys", "signing.pem"),
		TokenTTL:            time.Hour,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "text",
		Port:                0,
		ShutdownGracePeriod: time.Second,
	}
}

func TestInitKeysPersistsSigningKey(t *testing.T) {
	cfg := testConfig(t)

	first, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)

	info, err := os.Stat(cfg.SigningKeyFile)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	require.Equal(t, first.GetSigner().KID(), second.GetSigner().KID())

	// A token from the first instance verifies against the second.
	claims := newClaimsFor(cfg.Issuer)
	tok, err := first.GetSigner().Sign(claims)
	require.NoError(t, err)
	_, err = second.Verifier.Verify(tok)
	require.NoError(t, err)
}

func TestInitKeysEphemeral(t *testing.T) {
	cfg := testConfig(t)
	cfg.SigningKeyFile = ""

	a, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	b, err := InitKeys(cfg, slogx.Discard())
	require.NoError(t, err)
	require.NotEqual(t, a.GetSigner().KID(), b.GetSigner().KID())
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "postgres"

	_, err := OpenStore(context.Background(), cfg)
	require.ErrorContains(t, err, "unknown store driver")
}

func TestApplicationServesAPI(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.db.Close() })

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	ctx := context.Background()
	client := matchsdk.NewSDKClient(srv.URL)

	_, err = client.Register(ctx, "alice", "pw1")
	require.NoError(t, err)
	_, err = client.Register(ctx, "bob", "pw2")
	require.NoError(t, err)

	alice, err := client.AuthenticateWithPassword(ctx, "alice", "pw1")
	require.NoError(t, err)
	bob, err := client.AuthenticateWithPassword(ctx, "bob", "pw2")
	require.NoError(t, err)

	_, err = alice.AddCrush(ctx, "bob")
	require.NoError(t, err)
	_, err = bob.AddCrush(ctx, "alice")
	require.NoError(t, err)

	matches, err := alice.GetMatches(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, matches)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
}

func TestApplicationRunStopsOnContextCancel(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func newClaimsFor(issuer string) jwtx.Claims {
	return jwtx.NewAccessClaims("01J9Z3QK7G2V8X4T6N0B5C1D2E", "sid", "alice", time.Hour, issuer, nil, time.Now())
}
