package service

import (
	"context"
	"sort"
	"strings"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
)

type UserService interface {
	Upsert(ctx context.Context, externalId domain.ExternalId, req api.UpdateUserRequest) (*api.UserView, error)
	Get(ctx context.Context, externalId domain.ExternalId) (*api.UserView, error)
	Posts(ctx context.Context, externalId, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error)
}

type User struct {
	storage   UserStorage
	validator UsernameValidator
}

type UserStorage interface {
	UpsertUser(ctx context.Context, externalId domain.ExternalId, profile domain.UserProfile) (domain.User, error)
	postAnnotatorStorage
}

type UsernameValidator interface {
	Username(name string) error
}

func NewUser(storage UserStorage, validator UsernameValidator) *User {
	return &User{storage: storage, validator: validator}
}

// Upsert creates or updates the profile for an identity-provider user and
// marks it onboarded. Usernames are stored lowercase.
func (s *User) Upsert(ctx context.Context, externalId domain.ExternalId, req api.UpdateUserRequest) (*api.UserView, error) {
	if strings.TrimSpace(externalId) == "" {
		return nil, internal_errors.Validation("User id is required")
	}
	if err := s.validator.Username(req.Username); err != nil {
		return nil, err
	}

	user, err := s.storage.UpsertUser(ctx, externalId, domain.UserProfile{
		Username: strings.ToLower(req.Username),
		Name:     req.Name,
		Bio:      req.Bio,
		Image:    req.Image,
	})
	if err != nil {
		return nil, err
	}
	return toUserView(user), nil
}

func (s *User) Get(ctx context.Context, externalId domain.ExternalId) (*api.UserView, error) {
	user, err := s.storage.GetUserByExternalId(ctx, externalId)
	if err != nil {
		return nil, err
	}
	return toUserView(user), nil
}

// Posts returns the user's threads, newest first, with one resolved level of
// children and like annotations for the viewer.
func (s *User) Posts(ctx context.Context, externalId, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error) {
	user, err := s.storage.GetUserByExternalId(ctx, externalId)
	if err != nil {
		return nil, err
	}

	threads, err := s.storage.FindThreadsByIds(ctx, user.Threads)
	if err != nil {
		return nil, err
	}
	sort.Slice(threads, func(i, j int) bool {
		return threads[i].CreatedAt.After(threads[j].CreatedAt)
	})

	return annotatePosts(ctx, s.storage, threads, viewerExternalId)
}

var _ UserService = (*User)(nil)
