package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/mutual/pkg/cryptox"
	"github.com/aussiebroadwan/mutual/pkg/jwtx"
)

// InitKeys creates the KeyManager that signs and verifies access tokens.
//
// With SigningKeyFile set the Ed25519 key is read from that file, or
// generated and written there on first start, so tokens survive restarts.
// Without it the key is ephemeral and every token dies with the process.
func InitKeys(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	if cfg.SigningKeyFile == "" {
		km, err := jwtx.NewEphemeralKeyManager(cfg.Issuer, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create ephemeral key manager: %w", err)
		}
		logger.Warn("using ephemeral signing key, tokens will not survive a restart",
			"algorithm", km.Algorithm(),
			"issuer", cfg.Issuer,
		)
		return km, nil
	}

	pemKey, err := cryptox.LoadOrCreateFile(cfg.SigningKeyFile, cryptox.GenerateEd25519Key)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key %s: %w", cfg.SigningKeyFile, err)
	}

	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{
		Issuer:        cfg.Issuer,
		PrivateKeyPEM: pemKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create key manager: %w", err)
	}

	logger.Info("signing key loaded",
		"algorithm", km.Algorithm(),
		"kid", km.GetSigner().KID(),
		"path", cfg.SigningKeyFile,
		"issuer", cfg.Issuer,
	)
	return km, nil
}
