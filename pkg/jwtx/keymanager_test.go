package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/mutual/pkg/cryptox"
	"github.com/aussiebroadwan/mutual/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewEphemeralKeyManager(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager("test-issuer", []string{"test-audience"})
	require.NoError(t, err)
	require.NotNil(t, km.GetSigner())
	require.NotNil(t, km.Verifier)
	require.NotNil(t, km.KeySet)
	require.Equal(t, jwtx.AlgorithmEdDSA, km.Algorithm())
	require.True(t, km.IsReady())
	require.True(t, strings.HasPrefix(km.GetSigner().KID(), "mutual-"))
}

func TestKeyManager_SignAndVerifyRoundTrip(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager("test-issuer", []string{"test-audience"})
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("user-123", "session-abc", "testuser", 5*time.Minute, "test-issuer", []string{"test-audience"}, time.Now().UTC())

	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	parsedClaims, err := km.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsedClaims.Subject)
	require.Equal(t, claims.Issuer, parsedClaims.Issuer)
	require.Equal(t, claims.SID, parsedClaims.SID)
	require.Equal(t, claims.Username, parsedClaims.Username)
}

func TestKeyManager_ErrorCases(t *testing.T) {
	t.Run("missing issuer", func(t *testing.T) {
		_, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{})
		require.Error(t, err)
		require.Contains(t, err.Error(), "Issuer is required")
	})

	t.Run("bad PEM", func(t *testing.T) {
		_, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
			Issuer:        "test-issuer",
			PrivateKeyPEM: []byte("not a key"),
		})
		require.Error(t, err)
	})
}

func TestKeyManager_FromPEMKeepsKeyID(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	first, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "test-issuer", PrivateKeyPEM: pemKey})
	require.NoError(t, err)
	second, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "test-issuer", PrivateKeyPEM: pemKey})
	require.NoError(t, err)

	require.Equal(t, first.GetSigner().KID(), second.GetSigner().KID())

	// Tokens from one process verify in the next.
	claims := jwtx.NewAccessClaims("user-1", "sid-1", "carol", time.Minute, "test-issuer", nil, time.Now().UTC())
	token, err := first.GetSigner().Sign(claims)
	require.NoError(t, err)

	parsed, err := second.Verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", parsed.Subject)
}

func TestKeyManager_DifferentAudiences(t *testing.T) {
	km, err := jwtx.NewEphemeralKeyManager("test-issuer", []string{"api"})
	require.NoError(t, err)

	claims := jwtx.NewAccessClaims("user-1", "sid", "", time.Minute, "test-issuer", []string{"other"}, time.Now().UTC())
	token, err := km.GetSigner().Sign(claims)
	require.NoError(t, err)

	_, err = km.Verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrAudience)
}
