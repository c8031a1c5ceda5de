package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strand-dev/strand/internal/domain"
)

func (s *Storage) GetUserByExternalId(ctx context.Context, externalId domain.ExternalId) (domain.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var u domain.User
	if err := s.users.FindOne(ctx, bson.M{"id": externalId}).Decode(&u); err != nil {
		return domain.User{}, mapErr(err, "User not found")
	}
	return u, nil
}

// UpsertUser creates or updates the profile for an external identity.
// Reference lists are only seeded on insert so an onboarding re-run never
// clobbers an existing user's threads or memberships.
func (s *Storage) UpsertUser(ctx context.Context, externalId domain.ExternalId, profile domain.UserProfile) (domain.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"username":  profile.Username,
			"name":      profile.Name,
			"bio":       profile.Bio,
			"image":     profile.Image,
			"onboarded": true,
		},
		"$setOnInsert": bson.M{
			"id":          externalId,
			"threads":     []primitive.ObjectID{},
			"communities": []primitive.ObjectID{},
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var u domain.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"id": externalId}, update, opts).Decode(&u)
	if err != nil {
		return domain.User{}, mapErr(err, "User not found")
	}
	return u, nil
}

func (s *Storage) PushUserThread(ctx context.Context, userId, threadId primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userId},
		bson.M{"$push": bson.M{"threads": threadId}},
	)
	return mapErr(err, "User not found")
}

// PullThreadsFromUsers removes the given thread ids from the threads lists of
// the given users only, returning how many user documents were modified.
func (s *Storage) PullThreadsFromUsers(ctx context.Context, userIds, threadIds []primitive.ObjectID) (int64, error) {
	if len(userIds) == 0 || len(threadIds) == 0 {
		return 0, nil
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.users.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": userIds}},
		bson.M{"$pull": bson.M{"threads": bson.M{"$in": threadIds}}},
	)
	if err != nil {
		return 0, mapErr(err, "")
	}
	return res.ModifiedCount, nil
}

func (s *Storage) AddCommunityToUser(ctx context.Context, userId, communityId primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userId},
		bson.M{"$addToSet": bson.M{"communities": communityId}},
	)
	return mapErr(err, "User not found")
}

func (s *Storage) RemoveCommunityFromUser(ctx context.Context, userId, communityId primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	_, err := s.users.UpdateOne(ctx,
		bson.M{"_id": userId},
		bson.M{"$pull": bson.M{"communities": communityId}},
	)
	return mapErr(err, "User not found")
}

// PullCommunityFromUsers drops a deleted community from every member's list.
func (s *Storage) PullCommunityFromUsers(ctx context.Context, communityId primitive.ObjectID) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.users.UpdateMany(ctx,
		bson.M{"communities": communityId},
		bson.M{"$pull": bson.M{"communities": communityId}},
	)
	if err != nil {
		return 0, mapErr(err, "")
	}
	return res.ModifiedCount, nil
}
