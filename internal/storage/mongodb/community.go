package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
)

func (s *Storage) CreateCommunity(ctx context.Context, c domain.Community) (domain.Community, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if c.Id.IsZero() {
		c.Id = primitive.NewObjectID()
	}
	if c.Members == nil {
		c.Members = []primitive.ObjectID{}
	}
	if c.Threads == nil {
		c.Threads = []primitive.ObjectID{}
	}

	if _, err := s.communities.InsertOne(ctx, c); err != nil {
		return domain.Community{}, mapErr(err, "")
	}
	return c, nil
}

func (s *Storage) GetCommunityByExternalId(ctx context.Context, externalId domain.ExternalId) (domain.Community, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var c domain.Community
	if err := s.communities.FindOne(ctx, bson.M{"id": externalId}).Decode(&c); err != nil {
		return domain.Community{}, mapErr(err, "Community not found")
	}
	return c, nil
}

func (s *Storage) UpdateCommunityInfo(ctx context.Context, externalId domain.ExternalId, name, slug, image string) (domain.Community, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"name": name, "slug": slug, "image": image}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c domain.Community
	err := s.communities.FindOneAndUpdate(ctx, bson.M{"id": externalId}, update, opts).Decode(&c)
	if err != nil {
		return domain.Community{}, mapErr(err, "Community not found")
	}
	return c, nil
}

func (s *Storage) DeleteCommunity(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.communities.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapErr(err, "Community not found")
	}
	if res.DeletedCount == 0 {
		return internal_errors.NotFound("Community not found")
	}
	return nil
}

func (s *Storage) AddCommunityMember(ctx context.Context, communityId, userId primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.communities.UpdateOne(ctx,
		bson.M{"_id": communityId},
		bson.M{"$addToSet": bson.M{"members": userId}},
	)
	if err != nil {
		return mapErr(err, "Community not found")
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Community not found")
	}
	return nil
}

func (s *Storage) RemoveCommunityMember(ctx context.Context, communityId, userId primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.communities.UpdateOne(ctx,
		bson.M{"_id": communityId},
		bson.M{"$pull": bson.M{"members": userId}},
	)
	if err != nil {
		return mapErr(err, "Community not found")
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Community not found")
	}
	return nil
}

func (s *Storage) PushCommunityThread(ctx context.Context, communityId, threadId primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.communities.UpdateOne(ctx,
		bson.M{"_id": communityId},
		bson.M{"$push": bson.M{"threads": threadId}},
	)
	return mapErr(err, "Community not found")
}

// PullThreadsFromCommunities removes the given thread ids from the threads
// lists of the given communities only.
func (s *Storage) PullThreadsFromCommunities(ctx context.Context, communityIds, threadIds []primitive.ObjectID) (int64, error) {
	if len(communityIds) == 0 || len(threadIds) == 0 {
		return 0, nil
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.communities.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": communityIds}},
		bson.M{"$pull": bson.M{"threads": bson.M{"$in": threadIds}}},
	)
	if err != nil {
		return 0, mapErr(err, "")
	}
	return res.ModifiedCount, nil
}
