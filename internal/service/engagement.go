package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
)

type EngagementService interface {
	ToggleLike(ctx context.Context, threadId string, userExternalId domain.ExternalId) (api.LikeState, error)
}

type Engagement struct {
	storage EngagementStorage
}

type EngagementStorage interface {
	GetThread(ctx context.Context, id primitive.ObjectID) (domain.Thread, error)
	GetUserByExternalId(ctx context.Context, externalId domain.ExternalId) (domain.User, error)
	AddLike(ctx context.Context, threadId, userId primitive.ObjectID) (domain.Thread, error)
	RemoveLike(ctx context.Context, threadId, userId primitive.ObjectID) (domain.Thread, error)
}

func NewEngagement(storage EngagementStorage) *Engagement {
	return &Engagement{storage: storage}
}

// ToggleLike flips the user's membership in the thread's likes set and
// returns the state read back from the just-persisted document. The set
// mutation itself is a single atomic document update, so repeated or
// concurrent toggles can never produce duplicate likes; two racing toggles
// by the same user resolve last-write-wins.
func (s *Engagement) ToggleLike(ctx context.Context, threadId string, userExternalId domain.ExternalId) (api.LikeState, error) {
	if userExternalId == "" {
		return api.LikeState{}, internal_errors.NotFound("User not found")
	}
	tid, err := parseThreadId(threadId)
	if err != nil {
		return api.LikeState{}, err
	}

	user, err := s.storage.GetUserByExternalId(ctx, userExternalId)
	if err != nil {
		return api.LikeState{}, err
	}

	t, err := s.storage.GetThread(ctx, tid)
	if err != nil {
		return api.LikeState{}, err
	}

	var updated domain.Thread
	liked := !t.LikedBy(user.Id)
	if liked {
		updated, err = s.storage.AddLike(ctx, tid, user.Id)
	} else {
		updated, err = s.storage.RemoveLike(ctx, tid, user.Id)
	}
	if err != nil {
		return api.LikeState{}, err
	}

	return api.LikeState{Liked: liked, LikeCount: updated.LikeCount()}, nil
}

var _ EngagementService = (*Engagement)(nil)
