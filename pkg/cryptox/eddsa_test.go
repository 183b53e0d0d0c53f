package cryptox_test

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/mutual/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestGenerateEd25519Key(t *testing.T) {
	pemBytes, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	block, _ := pem.Decode(pemBytes)
	require.NotNil(t, block)
	require.Equal(t, "PRIVATE KEY", block.Type)

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	require.NoError(t, err)

	edKey, ok := key.(ed25519.PrivateKey)
	require.True(t, ok)
	require.Len(t, edKey, ed25519.PrivateKeySize)
}

func TestLoadOrCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "signing.pem")

	calls := 0
	gen := func() ([]byte, error) {
		calls++
		return cryptox.GenerateEd25519Key()
	}

	first, err := cryptox.LoadOrCreateFile(path, gen)
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	second, err := cryptox.LoadOrCreateFile(path, gen)
	require.NoError(t, err)
	require.Equal(t, 1, calls, "existing file must not be regenerated")
	require.Equal(t, first, second)
}
