package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
)

type FeedService interface {
	Fetch(ctx context.Context, pageNumber, pageSize int, viewerExternalId domain.ExternalId) (*api.FeedPage, error)
}

type Feed struct {
	storage         FeedStorage
	defaultPageSize int
	maxPageSize     int
}

type FeedStorage interface {
	FindRootThreads(ctx context.Context, skip, limit int64) ([]domain.PopulatedThread, error)
	CountRootThreads(ctx context.Context) (int64, error)
	postAnnotatorStorage
}

func NewFeed(storage FeedStorage, defaultPageSize, maxPageSize int) *Feed {
	if defaultPageSize <= 0 {
		defaultPageSize = 20
	}
	if maxPageSize <= 0 {
		maxPageSize = 100
	}
	return &Feed{storage: storage, defaultPageSize: defaultPageSize, maxPageSize: maxPageSize}
}

// Fetch returns one page of root threads, newest first, annotated with the
// viewer's like state and one resolved level of children.
func (s *Feed) Fetch(ctx context.Context, pageNumber, pageSize int, viewerExternalId domain.ExternalId) (*api.FeedPage, error) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	skip := int64(pageNumber-1) * int64(pageSize)

	roots, err := s.storage.FindRootThreads(ctx, skip, int64(pageSize))
	if err != nil {
		return nil, err
	}
	total, err := s.storage.CountRootThreads(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := annotatePosts(ctx, s.storage, roots, viewerExternalId)
	if err != nil {
		return nil, err
	}

	return &api.FeedPage{
		Posts:   posts,
		HasNext: total > skip+int64(len(roots)),
	}, nil
}

// postAnnotatorStorage is the slice of the store shared by every read path
// that decorates root threads with viewer state and one level of replies.
type postAnnotatorStorage interface {
	FindThreadsByIds(ctx context.Context, ids []primitive.ObjectID) ([]domain.PopulatedThread, error)
	GetUserByExternalId(ctx context.Context, externalId domain.ExternalId) (domain.User, error)
}

// resolveViewer maps an optional viewer identity onto a store id. An unknown
// or absent viewer annotates as anonymous rather than failing the read.
func resolveViewer(ctx context.Context, storage postAnnotatorStorage, viewerExternalId domain.ExternalId) (primitive.ObjectID, error) {
	if viewerExternalId == "" {
		return primitive.NilObjectID, nil
	}
	viewer, err := storage.GetUserByExternalId(ctx, viewerExternalId)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return primitive.NilObjectID, nil
		}
		return primitive.NilObjectID, err
	}
	return viewer.Id, nil
}

// annotatePosts resolves one level of children for every thread in one bulk
// query and attaches like counts plus the viewer's membership test.
func annotatePosts(ctx context.Context, storage postAnnotatorStorage, threads []domain.PopulatedThread, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error) {
	viewerId, err := resolveViewer(ctx, storage, viewerExternalId)
	if err != nil {
		return nil, err
	}

	childIds := make([]primitive.ObjectID, 0)
	for _, t := range threads {
		childIds = append(childIds, t.Children...)
	}
	children, err := storage.FindThreadsByIds(ctx, childIds)
	if err != nil {
		return nil, err
	}
	byParent := buildAdjacency(children)

	posts := make([]*api.FeedPost, 0, len(threads))
	for _, t := range threads {
		post := &api.FeedPost{ThreadNode: *toNode(t)}
		for _, child := range byParent[t.Id.Hex()] {
			post.Children = append(post.Children, toNode(child))
		}
		post.ReplyCount = len(t.Children)
		if !viewerId.IsZero() {
			post.IsLikedByViewer = t.LikedBy(viewerId)
		}
		posts = append(posts, post)
	}
	return posts, nil
}

var _ FeedService = (*Feed)(nil)
