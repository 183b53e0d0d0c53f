package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
	"github.com/aussiebroadwan/mutual/internal/match/store"
	"github.com/aussiebroadwan/mutual/pkg/idx"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
)

type InterestService struct {
	Store store.Store
}

// CountByTarget returns how many of ownerID's interests name targetName.
func (s *InterestService) CountByTarget(ctx context.Context, ownerID, targetName string) (int, error) {
	list, err := s.ListByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	targetName = strings.TrimSpace(targetName)
	n := 0
	for _, i := range list {
		if i.TargetName == targetName {
			n++
		}
	}
	return n, nil
}

// Add records that ownerID is interested in targetName. The name is trimmed
// but otherwise free text; it does not have to belong to anyone.
func (s *InterestService) Add(ctx context.Context, ownerID, targetName string) (domain.Interest, error) {
	targetName = strings.TrimSpace(targetName)
	if targetName == "" {
		return domain.Interest{}, ErrInvalidInput
	}

	if _, err := s.Store.Users().GetUserByID(ctx, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Interest{}, ErrUserNotFound
		}
		return domain.Interest{}, fmt.Errorf("lookup owner: %w", err)
	}

	i := domain.Interest{
		ID:         idx.New().String(),
		OwnerID:    ownerID,
		TargetName: targetName,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Store.Interests().CreateInterest(ctx, i); err != nil {
		return domain.Interest{}, fmt.Errorf("create interest: %w", err)
	}

	slogx.FromContext(ctx).Info("interest recorded",
		slog.String("interest_id", i.ID),
		slog.String("user_id", ownerID),
	)
	return i, nil
}

// ListByOwner returns ownerID's interests oldest first. It never returns a
// nil slice.
func (s *InterestService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Interest, error) {
	list, err := s.Store.Interests().ListInterestsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	if list == nil {
		list = []domain.Interest{}
	}
	return list, nil
}

// FindReciprocal returns the interest, if any, that the user called
// targetName holds in ownerID. It is a raw lookup: when targetName is the
// owner's own username it finds the owner's self-interest, which
// MatchService.ResolveMatches never reports as a match.
func (s *InterestService) FindReciprocal(ctx context.Context, ownerID, targetName string) (domain.Interest, bool, error) {
	i, err := s.Store.Interests().FindReciprocalInterest(ctx, ownerID, strings.TrimSpace(targetName))
	return found(i, err)
}
