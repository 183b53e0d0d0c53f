package jwtx

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/mutual/pkg/cryptox"
)

// AlgorithmEdDSA is the only signing algorithm issued by the service.
const AlgorithmEdDSA = "EdDSA"

// keyIDPrefix marks key IDs minted by this service in a JWKS.
const keyIDPrefix = "mutual-"

// KeyManager owns the signing key of an instance together with the
// verifier and KeySet built from it.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	signer Signer
}

// KeyManagerOptions configures the KeyManager.
type KeyManagerOptions struct {
	// Issuer is the issuer claim (iss) that will be validated in tokens.
	Issuer string

	// Audience is the list of audience values (aud) that will be validated.
	// Empty slice means no audience validation.
	Audience []string

	// PrivateKeyPEM is a PKCS8 Ed25519 private key. When empty a fresh key
	// is generated and every token dies with the process.
	PrivateKeyPEM []byte
}

// NewKeyManager creates a KeyManager from opts. A key loaded from PEM gets a
// key ID derived from its public key so restarts keep publishing the same
// kid; a generated key gets a random one.
func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: Issuer is required")
	}

	var (
		signer Signer
		err    error
	)
	if len(opts.PrivateKeyPEM) > 0 {
		signer, err = signerFromPEM(opts.PrivateKeyPEM)
	} else {
		signer, err = generateSigner()
	}
	if err != nil {
		return nil, err
	}

	keyset := NewKeySet()
	if err := keyset.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: failed to add signer to keyset: %w", err)
	}

	return &KeyManager{
		Verifier: NewCommonEdDSA(keyset, opts.Issuer, opts.Audience),
		KeySet:   keyset,
		signer:   signer,
	}, nil
}

// NewEphemeralKeyManager is NewKeyManager with a generated key.
func NewEphemeralKeyManager(issuer string, audience []string) (*KeyManager, error) {
	return NewKeyManager(KeyManagerOptions{Issuer: issuer, Audience: audience})
}

func signerFromPEM(pemKey []byte) (Signer, error) {
	// Parse once with a placeholder kid to get at the public key.
	probe, err := newEdDSASigner("", pemKey)
	if err != nil {
		return nil, err
	}
	s, err := newEdDSASigner(keyIDPrefix+Thumbprint(probe.pub)[:22], pemKey)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func generateSigner() (Signer, error) {
	keyID, err := generateRandomKeyID()
	if err != nil {
		return nil, err
	}

	pemBytes, err := cryptox.GenerateEd25519Key()
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to generate EdDSA key: %w", err)
	}
	return NewSignerEdDSA(keyID, pemBytes)
}

// Algorithm returns the signing algorithm being used.
func (km *KeyManager) Algorithm() string {
	return AlgorithmEdDSA
}

// IsReady returns true if the KeyManager has valid keys loaded.
func (km *KeyManager) IsReady() bool {
	return km.KeySet.IsReady()
}

// GetSigner returns the active signer.
func (km *KeyManager) GetSigner() Signer {
	return km.signer
}

// generateRandomKeyID creates a random key identifier of the form
// "mutual-{128-bit token}".
func generateRandomKeyID() (string, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to generate random key ID: %w", err)
	}
	return keyIDPrefix + token, nil
}
