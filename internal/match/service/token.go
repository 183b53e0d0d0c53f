package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
	"github.com/aussiebroadwan/mutual/pkg/jwtx"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
	"github.com/google/uuid"
)

type TokenService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
}

// Issue signs an access token for u. Every call starts a new login session
// with its own sid.
func (s *TokenService) Issue(ctx context.Context, u domain.User) (domain.AccessToken, error) {
	now := time.Now().UTC()

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	sessionID := uuid.NewString()
	claims := jwtx.NewAccessClaims(u.ID, sessionID, u.Username, ttl, s.Issuer, s.Audience, now)

	token, err := s.KeyManager.GetSigner().Sign(claims)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to sign access token", slog.Any("error", err))
		return domain.AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}

	return domain.AccessToken{
		Token:     token,
		UserID:    u.ID,
		SessionID: sessionID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
