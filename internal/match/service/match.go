package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/mutual/internal/match/store"
)

type MatchService struct {
	Store store.Store
}

// ResolveMatches returns the targets of userID's interests that are
// reciprocated: the named user exists and has an interest naming userID's
// username. Order follows the interests and duplicates are kept. A user
// naming themselves never matches.
//
// Admirers are loaded in one query and intersected locally, so the cost does
// not grow with one lookup per interest.
func (s *MatchService) ResolveMatches(ctx context.Context, userID string) ([]string, error) {
	owner, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	interests, err := s.Store.Interests().ListInterestsByOwner(ctx, owner.ID)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}

	admirers, err := s.Store.Interests().ListAdmirerUsernames(ctx, owner.Username)
	if err != nil {
		return nil, fmt.Errorf("list admirers: %w", err)
	}

	likedBack := make(map[string]struct{}, len(admirers))
	for _, name := range admirers {
		likedBack[name] = struct{}{}
	}

	matches := make([]string, 0, len(interests))
	for _, i := range interests {
		if i.TargetName == owner.Username {
			continue
		}
		if _, ok := likedBack[i.TargetName]; ok {
			matches = append(matches, i.TargetName)
		}
	}
	return matches, nil
}
