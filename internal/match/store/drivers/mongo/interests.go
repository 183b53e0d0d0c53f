package mongo

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/aussiebroadwan/mutual/internal/match/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type interestDoc struct {
	ID         string    `bson:"_id"`
	OwnerID    string    `bson:"ownerId"`
	TargetName string    `bson:"targetName"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func (d interestDoc) toDomain() domain.Interest {
	return domain.Interest{
		ID:         d.ID,
		OwnerID:    d.OwnerID,
		TargetName: d.TargetName,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

type interestsRepo struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func (r *interestsRepo) CreateInterest(ctx context.Context, i domain.Interest) error {
	_, err := r.c.InsertOne(ctx, interestDoc{
		ID:         i.ID,
		OwnerID:    i.OwnerID,
		TargetName: i.TargetName,
		CreatedAt:  i.CreatedAt.UTC(),
	})
	return mapDuplicate(err)
}

// ListInterestsByOwner sorts on _id; ids are ULIDs so that is insertion order.
func (r *interestsRepo) ListInterestsByOwner(ctx context.Context, ownerID string) ([]domain.Interest, error) {
	cur, err := r.c.Find(ctx,
		bson.D{{Key: "ownerId", Value: ownerID}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var docs []interestDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]domain.Interest, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *interestsRepo) FindReciprocalInterest(ctx context.Context, ownerID, targetName string) (domain.Interest, error) {
	users := &usersRepo{c: r.users}

	owner, err := users.GetUserByID(ctx, ownerID)
	if err != nil {
		return domain.Interest{}, err
	}
	target, err := users.GetUserByUsername(ctx, targetName)
	if err != nil {
		return domain.Interest{}, err
	}

	var doc interestDoc
	err = r.c.FindOne(ctx,
		bson.D{
			{Key: "ownerId", Value: target.ID},
			{Key: "targetName", Value: owner.Username},
		},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}),
	).Decode(&doc)
	if err != nil {
		return domain.Interest{}, mapNotFound(err)
	}
	return doc.toDomain(), nil
}

// ListAdmirerUsernames collects the distinct owners targeting username and
// resolves them to usernames in a second query.
func (r *interestsRepo) ListAdmirerUsernames(ctx context.Context, username string) ([]string, error) {
	raw, err := r.c.Distinct(ctx, "ownerId", bson.D{{Key: "targetName", Value: username}})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []string{}, nil
	}

	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		id, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("mongo: unexpected ownerId type %T", v)
		}
		ids = append(ids, id)
	}

	cur, err := r.users.Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}},
		options.Find().SetProjection(bson.D{{Key: "username", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Username)
	}
	slices.Sort(names)
	return names, nil
}
