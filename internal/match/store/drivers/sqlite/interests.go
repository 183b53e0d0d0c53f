package sqlite

import (
	"context"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
	"github.com/aussiebroadwan/mutual/internal/match/store/drivers/sqlite/gen"
)

type interestsRepo struct {
	q *gen.Queries
}

func (r *interestsRepo) CreateInterest(ctx context.Context, i domain.Interest) error {
	return mapConstraint(r.q.CreateInterest(ctx, gen.CreateInterestParams{
		ID:         i.ID,
		OwnerID:    i.OwnerID,
		TargetName: i.TargetName,
		CreatedAt:  i.CreatedAt.UTC(),
	}))
}

func (r *interestsRepo) ListInterestsByOwner(ctx context.Context, ownerID string) ([]domain.Interest, error) {
	rows, err := r.q.ListInterestsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Interest, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapInterest(row))
	}
	return out, nil
}

func (r *interestsRepo) FindReciprocalInterest(ctx context.Context, ownerID, targetName string) (domain.Interest, error) {
	row, err := r.q.FindReciprocalInterest(ctx, gen.FindReciprocalInterestParams{
		OwnerID:    ownerID,
		TargetName: targetName,
	})
	if err != nil {
		return domain.Interest{}, mapNotFound(err)
	}
	return mapInterest(row), nil
}

func (r *interestsRepo) ListAdmirerUsernames(ctx context.Context, username string) ([]string, error) {
	names, err := r.q.ListAdmirerUsernames(ctx, username)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
