package service

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
	"github.com/strand-dev/strand/internal/logger"
)

type CommunityService interface {
	Create(ctx context.Context, externalId domain.ExternalId, name, slug, image, bio string, createdByExternalId domain.ExternalId) error
	UpdateInfo(ctx context.Context, externalId domain.ExternalId, name, slug, image string) error
	Delete(ctx context.Context, externalId domain.ExternalId) error
	AddMember(ctx context.Context, communityExternalId, userExternalId domain.ExternalId) error
	RemoveMember(ctx context.Context, userExternalId, communityExternalId domain.ExternalId) error
	Get(ctx context.Context, externalId domain.ExternalId) (*api.CommunityProfile, error)
	Posts(ctx context.Context, externalId, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error)
}

type Community struct {
	storage CommunityStorage
}

type CommunityStorage interface {
	CreateCommunity(ctx context.Context, c domain.Community) (domain.Community, error)
	GetCommunityByExternalId(ctx context.Context, externalId domain.ExternalId) (domain.Community, error)
	UpdateCommunityInfo(ctx context.Context, externalId domain.ExternalId, name, slug, image string) (domain.Community, error)
	DeleteCommunity(ctx context.Context, id primitive.ObjectID) error
	AddCommunityMember(ctx context.Context, communityId, userId primitive.ObjectID) error
	RemoveCommunityMember(ctx context.Context, communityId, userId primitive.ObjectID) error
	FindThreadsByCommunity(ctx context.Context, communityId primitive.ObjectID) ([]domain.Thread, error)
	DeleteThreads(ctx context.Context, ids []primitive.ObjectID) (int64, error)
	AddCommunityToUser(ctx context.Context, userId, communityId primitive.ObjectID) error
	RemoveCommunityFromUser(ctx context.Context, userId, communityId primitive.ObjectID) error
	PullCommunityFromUsers(ctx context.Context, communityId primitive.ObjectID) (int64, error)
	PullThreadsFromUsers(ctx context.Context, userIds, threadIds []primitive.ObjectID) (int64, error)
	postAnnotatorStorage
}

func NewCommunity(storage CommunityStorage) *Community {
	return &Community{storage: storage}
}

// Create mirrors an identity-provider organization. The creator must already
// be known; they become the first member and the community is added to their
// membership list.
func (s *Community) Create(ctx context.Context, externalId domain.ExternalId, name, slug, image, bio string, createdByExternalId domain.ExternalId) error {
	if externalId == "" {
		return internal_errors.Validation("Community id is required")
	}

	creator, err := s.storage.GetUserByExternalId(ctx, createdByExternalId)
	if err != nil {
		return err
	}

	created, err := s.storage.CreateCommunity(ctx, domain.Community{
		ExternalId: externalId,
		Name:       name,
		Slug:       slug,
		Image:      image,
		Bio:        bio,
		CreatedBy:  creator.Id,
		Members:    []primitive.ObjectID{creator.Id},
	})
	if err != nil {
		return err
	}

	return s.storage.AddCommunityToUser(ctx, creator.Id, created.Id)
}

func (s *Community) UpdateInfo(ctx context.Context, externalId domain.ExternalId, name, slug, image string) error {
	_, err := s.storage.UpdateCommunityInfo(ctx, externalId, name, slug, image)
	return err
}

// Delete removes the community, every thread it owns, and all membership and
// thread back-references held by users. Ordered writes, same reasoning as the
// thread cascade: the community document goes last so a partial failure can
// be retried off the still-present document.
func (s *Community) Delete(ctx context.Context, externalId domain.ExternalId) error {
	community, err := s.storage.GetCommunityByExternalId(ctx, externalId)
	if err != nil {
		return err
	}

	threads, err := s.storage.FindThreadsByCommunity(ctx, community.Id)
	if err != nil {
		return err
	}

	if len(threads) > 0 {
		threadIds := make([]primitive.ObjectID, 0, len(threads))
		authorIds := make([]primitive.ObjectID, 0, len(threads))
		seen := make(map[primitive.ObjectID]bool)
		for _, t := range threads {
			threadIds = append(threadIds, t.Id)
			if !seen[t.Author] {
				seen[t.Author] = true
				authorIds = append(authorIds, t.Author)
			}
		}
		if _, err := s.storage.DeleteThreads(ctx, threadIds); err != nil {
			return err
		}
		if _, err := s.storage.PullThreadsFromUsers(ctx, authorIds, threadIds); err != nil {
			return err
		}
	}

	if _, err := s.storage.PullCommunityFromUsers(ctx, community.Id); err != nil {
		return err
	}

	if err := s.storage.DeleteCommunity(ctx, community.Id); err != nil {
		return err
	}
	logger.Log.Info("community deleted", "community", externalId, "threads_removed", len(threads))
	return nil
}

// AddMember joins both directions of the membership: the user onto the
// community's member set and the community onto the user's list. Both sides
// use set semantics, so a replayed event is a no-op.
func (s *Community) AddMember(ctx context.Context, communityExternalId, userExternalId domain.ExternalId) error {
	community, err := s.storage.GetCommunityByExternalId(ctx, communityExternalId)
	if err != nil {
		return err
	}
	user, err := s.storage.GetUserByExternalId(ctx, userExternalId)
	if err != nil {
		return err
	}

	if err := s.storage.AddCommunityMember(ctx, community.Id, user.Id); err != nil {
		return err
	}
	return s.storage.AddCommunityToUser(ctx, user.Id, community.Id)
}

func (s *Community) RemoveMember(ctx context.Context, userExternalId, communityExternalId domain.ExternalId) error {
	community, err := s.storage.GetCommunityByExternalId(ctx, communityExternalId)
	if err != nil {
		return err
	}
	user, err := s.storage.GetUserByExternalId(ctx, userExternalId)
	if err != nil {
		return err
	}

	if err := s.storage.RemoveCommunityMember(ctx, community.Id, user.Id); err != nil {
		return err
	}
	return s.storage.RemoveCommunityFromUser(ctx, user.Id, community.Id)
}

func (s *Community) Get(ctx context.Context, externalId domain.ExternalId) (*api.CommunityProfile, error) {
	community, err := s.storage.GetCommunityByExternalId(ctx, externalId)
	if err != nil {
		return nil, err
	}
	return toCommunityProfile(community), nil
}

func (s *Community) Posts(ctx context.Context, externalId, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error) {
	community, err := s.storage.GetCommunityByExternalId(ctx, externalId)
	if err != nil {
		return nil, err
	}

	threads, err := s.storage.FindThreadsByIds(ctx, community.Threads)
	if err != nil {
		return nil, err
	}
	sort.Slice(threads, func(i, j int) bool {
		return threads[i].CreatedAt.After(threads[j].CreatedAt)
	})

	return annotatePosts(ctx, s.storage, threads, viewerExternalId)
}

var _ CommunityService = (*Community)(nil)
