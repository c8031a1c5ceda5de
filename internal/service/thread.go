package service

import (
	"context"

	"github.com/microcosm-cc/bluemonday"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/domain"
	"github.com/strand-dev/strand/internal/logger"
)

type ThreadService interface {
	Create(ctx context.Context, authorExternalId domain.ExternalId, req api.CreateThreadRequest) (*api.ThreadNode, error)
	AddComment(ctx context.Context, threadId string, authorExternalId domain.ExternalId, text string) (*api.ThreadNode, error)
	GetTree(ctx context.Context, threadId string) (*api.ThreadNode, error)
	Delete(ctx context.Context, threadId string, callerExternalId domain.ExternalId) error
}

type Thread struct {
	storage   ThreadStorage
	validator TextValidator
	sanitizer *bluemonday.Policy
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, t domain.Thread) (domain.Thread, error)
	GetThread(ctx context.Context, id primitive.ObjectID) (domain.Thread, error)
	GetThreadWithRefs(ctx context.Context, id primitive.ObjectID) (domain.PopulatedThread, error)
	FindConnected(ctx context.Context, rootId primitive.ObjectID) ([]domain.PopulatedThread, error)
	AppendChild(ctx context.Context, parentId, childId primitive.ObjectID) error
	DeleteThreads(ctx context.Context, ids []primitive.ObjectID) (int64, error)

	GetUserByExternalId(ctx context.Context, externalId domain.ExternalId) (domain.User, error)
	GetCommunityByExternalId(ctx context.Context, externalId domain.ExternalId) (domain.Community, error)
	PushUserThread(ctx context.Context, userId, threadId primitive.ObjectID) error
	PushCommunityThread(ctx context.Context, communityId, threadId primitive.ObjectID) error
	PullThreadsFromUsers(ctx context.Context, userIds, threadIds []primitive.ObjectID) (int64, error)
	PullThreadsFromCommunities(ctx context.Context, communityIds, threadIds []primitive.ObjectID) (int64, error)
}

type TextValidator interface {
	Text(text string) error
}

func NewThread(storage ThreadStorage, validator TextValidator) *Thread {
	return &Thread{
		storage:   storage,
		validator: validator,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// cleanText strips markup from a user-supplied body, then validates it.
func (s *Thread) cleanText(text string) (string, error) {
	clean := s.sanitizer.Sanitize(text)
	if err := s.validator.Text(clean); err != nil {
		return "", err
	}
	return clean, nil
}

func (s *Thread) Create(ctx context.Context, authorExternalId domain.ExternalId, req api.CreateThreadRequest) (*api.ThreadNode, error) {
	text, err := s.cleanText(req.Text)
	if err != nil {
		return nil, err
	}

	author, err := s.storage.GetUserByExternalId(ctx, authorExternalId)
	if err != nil {
		return nil, err
	}

	t := domain.Thread{
		Text:   text,
		Author: author.Id,
	}

	var community *domain.Community
	if req.CommunityId != "" {
		c, err := s.storage.GetCommunityByExternalId(ctx, req.CommunityId)
		if err != nil {
			return nil, err
		}
		community = &c
		t.Community = &c.Id
	}

	created, err := s.storage.CreateThread(ctx, t)
	if err != nil {
		return nil, err
	}

	// Back-references are best-effort ordered writes, not a transaction.
	// The thread exists from here on; a failed push must surface loudly.
	if err := s.storage.PushUserThread(ctx, author.Id, created.Id); err != nil {
		return nil, err
	}
	if community != nil {
		if err := s.storage.PushCommunityThread(ctx, community.Id, created.Id); err != nil {
			return nil, err
		}
	}

	populated := domain.PopulatedThread{
		Thread: created,
		AuthorRef: &domain.AuthorRef{
			Id:         author.Id,
			ExternalId: author.ExternalId,
			Username:   author.Username,
			Name:       author.Name,
			Image:      author.Image,
		},
	}
	if community != nil {
		populated.CommunityRef = &domain.CommunityRef{
			Id:         community.Id,
			ExternalId: community.ExternalId,
			Name:       community.Name,
			Slug:       community.Slug,
			Image:      community.Image,
		}
	}
	return toNode(populated), nil
}

// AddComment creates a reply and appends its id to the parent's children
// list, keeping the parent/child links bidirectionally consistent.
func (s *Thread) AddComment(ctx context.Context, threadId string, authorExternalId domain.ExternalId, text string) (*api.ThreadNode, error) {
	parentId, err := parseThreadId(threadId)
	if err != nil {
		return nil, err
	}

	clean, err := s.cleanText(text)
	if err != nil {
		return nil, err
	}

	// Parent must exist before the child is created; this ordering is what
	// keeps the forest acyclic by construction.
	if _, err := s.storage.GetThread(ctx, parentId); err != nil {
		return nil, err
	}

	author, err := s.storage.GetUserByExternalId(ctx, authorExternalId)
	if err != nil {
		return nil, err
	}

	comment, err := s.storage.CreateThread(ctx, domain.Thread{
		Text:     clean,
		Author:   author.Id,
		ParentId: &parentId,
	})
	if err != nil {
		return nil, err
	}

	if err := s.storage.AppendChild(ctx, parentId, comment.Id); err != nil {
		return nil, err
	}
	if err := s.storage.PushUserThread(ctx, author.Id, comment.Id); err != nil {
		return nil, err
	}

	return toNode(domain.PopulatedThread{
		Thread: comment,
		AuthorRef: &domain.AuthorRef{
			Id:         author.Id,
			ExternalId: author.ExternalId,
			Username:   author.Username,
			Name:       author.Name,
			Image:      author.Image,
		},
	}), nil
}

// GetTree returns the root thread with the full nested reply tree at any depth.
func (s *Thread) GetTree(ctx context.Context, threadId string) (*api.ThreadNode, error) {
	rootId, err := parseThreadId(threadId)
	if err != nil {
		return nil, err
	}

	root, err := s.storage.GetThreadWithRefs(ctx, rootId)
	if err != nil {
		return nil, err
	}

	connected, err := s.storage.FindConnected(ctx, rootId)
	if err != nil {
		return nil, err
	}

	tree, err := materialize(root, connected)
	if err != nil {
		logger.Log.Error("thread tree materialization failed", "thread", threadId, "err", err)
		return nil, err
	}
	return tree, nil
}

var _ ThreadService = (*Thread)(nil)
