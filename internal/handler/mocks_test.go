package handler

import (
	"context"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/domain"
)

// --- Service mocks, func-field style ---

type MockThreadService struct {
	MockCreate     func(authorExternalId domain.ExternalId, req api.CreateThreadRequest) (*api.ThreadNode, error)
	MockAddComment func(threadId string, authorExternalId domain.ExternalId, text string) (*api.ThreadNode, error)
	MockGetTree    func(threadId string) (*api.ThreadNode, error)
	MockDelete     func(threadId string, callerExternalId domain.ExternalId) error
}

func (m *MockThreadService) Create(_ context.Context, authorExternalId domain.ExternalId, req api.CreateThreadRequest) (*api.ThreadNode, error) {
	if m.MockCreate != nil {
		return m.MockCreate(authorExternalId, req)
	}
	return &api.ThreadNode{}, nil
}

func (m *MockThreadService) AddComment(_ context.Context, threadId string, authorExternalId domain.ExternalId, text string) (*api.ThreadNode, error) {
	if m.MockAddComment != nil {
		return m.MockAddComment(threadId, authorExternalId, text)
	}
	return &api.ThreadNode{}, nil
}

func (m *MockThreadService) GetTree(_ context.Context, threadId string) (*api.ThreadNode, error) {
	if m.MockGetTree != nil {
		return m.MockGetTree(threadId)
	}
	return &api.ThreadNode{}, nil
}

func (m *MockThreadService) Delete(_ context.Context, threadId string, callerExternalId domain.ExternalId) error {
	if m.MockDelete != nil {
		return m.MockDelete(threadId, callerExternalId)
	}
	return nil
}

type MockFeedService struct {
	MockFetch func(pageNumber, pageSize int, viewerExternalId domain.ExternalId) (*api.FeedPage, error)
}

func (m *MockFeedService) Fetch(_ context.Context, pageNumber, pageSize int, viewerExternalId domain.ExternalId) (*api.FeedPage, error) {
	if m.MockFetch != nil {
		return m.MockFetch(pageNumber, pageSize, viewerExternalId)
	}
	return &api.FeedPage{}, nil
}

type MockEngagementService struct {
	MockToggleLike func(threadId string, userExternalId domain.ExternalId) (api.LikeState, error)
}

func (m *MockEngagementService) ToggleLike(_ context.Context, threadId string, userExternalId domain.ExternalId) (api.LikeState, error) {
	if m.MockToggleLike != nil {
		return m.MockToggleLike(threadId, userExternalId)
	}
	return api.LikeState{}, nil
}

type MockUserService struct {
	MockUpsert func(externalId domain.ExternalId, req api.UpdateUserRequest) (*api.UserView, error)
	MockGet    func(externalId domain.ExternalId) (*api.UserView, error)
	MockPosts  func(externalId, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error)
}

func (m *MockUserService) Upsert(_ context.Context, externalId domain.ExternalId, req api.UpdateUserRequest) (*api.UserView, error) {
	if m.MockUpsert != nil {
		return m.MockUpsert(externalId, req)
	}
	return &api.UserView{}, nil
}

func (m *MockUserService) Get(_ context.Context, externalId domain.ExternalId) (*api.UserView, error) {
	if m.MockGet != nil {
		return m.MockGet(externalId)
	}
	return &api.UserView{}, nil
}

func (m *MockUserService) Posts(_ context.Context, externalId, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error) {
	if m.MockPosts != nil {
		return m.MockPosts(externalId, viewerExternalId)
	}
	return nil, nil
}

type MockCommunityService struct {
	MockCreate       func(externalId domain.ExternalId, name, slug, image, bio string, createdByExternalId domain.ExternalId) error
	MockUpdateInfo   func(externalId domain.ExternalId, name, slug, image string) error
	MockDelete       func(externalId domain.ExternalId) error
	MockAddMember    func(communityExternalId, userExternalId domain.ExternalId) error
	MockRemoveMember func(userExternalId, communityExternalId domain.ExternalId) error
	MockGet          func(externalId domain.ExternalId) (*api.CommunityProfile, error)
	MockPosts        func(externalId, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error)

	CreateCalled       bool
	UpdateInfoCalled   bool
	DeleteCalled       bool
	AddMemberCalled    bool
	RemoveMemberCalled bool
}

func (m *MockCommunityService) Create(_ context.Context, externalId domain.ExternalId, name, slug, image, bio string, createdByExternalId domain.ExternalId) error {
	m.CreateCalled = true
	if m.MockCreate != nil {
		return m.MockCreate(externalId, name, slug, image, bio, createdByExternalId)
	}
	return nil
}

func (m *MockCommunityService) UpdateInfo(_ context.Context, externalId domain.ExternalId, name, slug, image string) error {
	m.UpdateInfoCalled = true
	if m.MockUpdateInfo != nil {
		return m.MockUpdateInfo(externalId, name, slug, image)
	}
	return nil
}

func (m *MockCommunityService) Delete(_ context.Context, externalId domain.ExternalId) error {
	m.DeleteCalled = true
	if m.MockDelete != nil {
		return m.MockDelete(externalId)
	}
	return nil
}

func (m *MockCommunityService) AddMember(_ context.Context, communityExternalId, userExternalId domain.ExternalId) error {
	m.AddMemberCalled = true
	if m.MockAddMember != nil {
		return m.MockAddMember(communityExternalId, userExternalId)
	}
	return nil
}

func (m *MockCommunityService) RemoveMember(_ context.Context, userExternalId, communityExternalId domain.ExternalId) error {
	m.RemoveMemberCalled = true
	if m.MockRemoveMember != nil {
		return m.MockRemoveMember(userExternalId, communityExternalId)
	}
	return nil
}

func (m *MockCommunityService) Get(_ context.Context, externalId domain.ExternalId) (*api.CommunityProfile, error) {
	if m.MockGet != nil {
		return m.MockGet(externalId)
	}
	return &api.CommunityProfile{}, nil
}

func (m *MockCommunityService) Posts(_ context.Context, externalId, viewerExternalId domain.ExternalId) ([]*api.FeedPost, error) {
	if m.MockPosts != nil {
		return m.MockPosts(externalId, viewerExternalId)
	}
	return nil, nil
}
