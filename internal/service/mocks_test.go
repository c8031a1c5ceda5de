package service

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strand-dev/strand/internal/domain"
)

// --- Mocks ---

// MockStorage mocks every storage interface the services consume. Tests set
// only the func fields they care about; unset fields default to a benign
// success so a test never trips over a path it does not exercise.
type MockStorage struct {
	createThreadFunc        func(t domain.Thread) (domain.Thread, error)
	getThreadFunc           func(id primitive.ObjectID) (domain.Thread, error)
	getThreadWithRefsFunc   func(id primitive.ObjectID) (domain.PopulatedThread, error)
	findConnectedFunc       func(rootId primitive.ObjectID) ([]domain.PopulatedThread, error)
	findRootThreadsFunc     func(skip, limit int64) ([]domain.PopulatedThread, error)
	countRootThreadsFunc    func() (int64, error)
	findThreadsByIdsFunc    func(ids []primitive.ObjectID) ([]domain.PopulatedThread, error)
	findThreadsByCommFunc   func(communityId primitive.ObjectID) ([]domain.Thread, error)
	appendChildFunc         func(parentId, childId primitive.ObjectID) error
	deleteThreadsFunc       func(ids []primitive.ObjectID) (int64, error)
	addLikeFunc             func(threadId, userId primitive.ObjectID) (domain.Thread, error)
	removeLikeFunc          func(threadId, userId primitive.ObjectID) (domain.Thread, error)
	getUserFunc             func(externalId domain.ExternalId) (domain.User, error)
	upsertUserFunc          func(externalId domain.ExternalId, profile domain.UserProfile) (domain.User, error)
	pushUserThreadFunc      func(userId, threadId primitive.ObjectID) error
	pullThreadsUsersFunc    func(userIds, threadIds []primitive.ObjectID) (int64, error)
	getCommunityFunc        func(externalId domain.ExternalId) (domain.Community, error)
	createCommunityFunc     func(c domain.Community) (domain.Community, error)
	updateCommunityFunc     func(externalId domain.ExternalId, name, slug, image string) (domain.Community, error)
	deleteCommunityFunc     func(id primitive.ObjectID) error
	addCommMemberFunc       func(communityId, userId primitive.ObjectID) error
	removeCommMemberFunc    func(communityId, userId primitive.ObjectID) error
	addCommToUserFunc       func(userId, communityId primitive.ObjectID) error
	removeCommFromUserFunc  func(userId, communityId primitive.ObjectID) error
	pullCommFromUsersFunc   func(communityId primitive.ObjectID) (int64, error)
	pushCommunityThreadFunc func(communityId, threadId primitive.ObjectID) error
	pullThreadsCommsFunc    func(communityIds, threadIds []primitive.ObjectID) (int64, error)

	mu                   sync.Mutex
	deleteThreadsCalled  bool
	deletedIds           []primitive.ObjectID
	pulledUserIds        []primitive.ObjectID
	pulledUserThreadIds  []primitive.ObjectID
	pushUserThreadCalled bool
	appendChildCalled    bool
}

func (m *MockStorage) CreateThread(_ context.Context, t domain.Thread) (domain.Thread, error) {
	if m.createThreadFunc != nil {
		return m.createThreadFunc(t)
	}
	if t.Id.IsZero() {
		t.Id = primitive.NewObjectID()
	}
	return t, nil
}

func (m *MockStorage) GetThread(_ context.Context, id primitive.ObjectID) (domain.Thread, error) {
	if m.getThreadFunc != nil {
		return m.getThreadFunc(id)
	}
	return domain.Thread{Id: id}, nil
}

func (m *MockStorage) GetThreadWithRefs(_ context.Context, id primitive.ObjectID) (domain.PopulatedThread, error) {
	if m.getThreadWithRefsFunc != nil {
		return m.getThreadWithRefsFunc(id)
	}
	return domain.PopulatedThread{Thread: domain.Thread{Id: id}}, nil
}

func (m *MockStorage) FindConnected(_ context.Context, rootId primitive.ObjectID) ([]domain.PopulatedThread, error) {
	if m.findConnectedFunc != nil {
		return m.findConnectedFunc(rootId)
	}
	return nil, nil
}

func (m *MockStorage) FindRootThreads(_ context.Context, skip, limit int64) ([]domain.PopulatedThread, error) {
	if m.findRootThreadsFunc != nil {
		return m.findRootThreadsFunc(skip, limit)
	}
	return nil, nil
}

func (m *MockStorage) CountRootThreads(_ context.Context) (int64, error) {
	if m.countRootThreadsFunc != nil {
		return m.countRootThreadsFunc()
	}
	return 0, nil
}

func (m *MockStorage) FindThreadsByIds(_ context.Context, ids []primitive.ObjectID) ([]domain.PopulatedThread, error) {
	if m.findThreadsByIdsFunc != nil {
		return m.findThreadsByIdsFunc(ids)
	}
	return nil, nil
}

func (m *MockStorage) FindThreadsByCommunity(_ context.Context, communityId primitive.ObjectID) ([]domain.Thread, error) {
	if m.findThreadsByCommFunc != nil {
		return m.findThreadsByCommFunc(communityId)
	}
	return nil, nil
}

func (m *MockStorage) AppendChild(_ context.Context, parentId, childId primitive.ObjectID) error {
	m.mu.Lock()
	m.appendChildCalled = true
	m.mu.Unlock()
	if m.appendChildFunc != nil {
		return m.appendChildFunc(parentId, childId)
	}
	return nil
}

func (m *MockStorage) DeleteThreads(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	m.deleteThreadsCalled = true
	m.deletedIds = ids
	m.mu.Unlock()
	if m.deleteThreadsFunc != nil {
		return m.deleteThreadsFunc(ids)
	}
	return int64(len(ids)), nil
}

func (m *MockStorage) AddLike(_ context.Context, threadId, userId primitive.ObjectID) (domain.Thread, error) {
	if m.addLikeFunc != nil {
		return m.addLikeFunc(threadId, userId)
	}
	return domain.Thread{Id: threadId, Likes: []primitive.ObjectID{userId}}, nil
}

func (m *MockStorage) RemoveLike(_ context.Context, threadId, userId primitive.ObjectID) (domain.Thread, error) {
	if m.removeLikeFunc != nil {
		return m.removeLikeFunc(threadId, userId)
	}
	return domain.Thread{Id: threadId}, nil
}

func (m *MockStorage) GetUserByExternalId(_ context.Context, externalId domain.ExternalId) (domain.User, error) {
	if m.getUserFunc != nil {
		return m.getUserFunc(externalId)
	}
	return domain.User{Id: primitive.NewObjectID(), ExternalId: externalId}, nil
}

func (m *MockStorage) UpsertUser(_ context.Context, externalId domain.ExternalId, profile domain.UserProfile) (domain.User, error) {
	if m.upsertUserFunc != nil {
		return m.upsertUserFunc(externalId, profile)
	}
	return domain.User{
		Id:         primitive.NewObjectID(),
		ExternalId: externalId,
		Username:   profile.Username,
		Name:       profile.Name,
		Bio:        profile.Bio,
		Image:      profile.Image,
		Onboarded:  true,
	}, nil
}

func (m *MockStorage) PushUserThread(_ context.Context, userId, threadId primitive.ObjectID) error {
	m.mu.Lock()
	m.pushUserThreadCalled = true
	m.mu.Unlock()
	if m.pushUserThreadFunc != nil {
		return m.pushUserThreadFunc(userId, threadId)
	}
	return nil
}

func (m *MockStorage) PullThreadsFromUsers(_ context.Context, userIds, threadIds []primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	m.pulledUserIds = userIds
	m.pulledUserThreadIds = threadIds
	m.mu.Unlock()
	if m.pullThreadsUsersFunc != nil {
		return m.pullThreadsUsersFunc(userIds, threadIds)
	}
	return int64(len(userIds)), nil
}

func (m *MockStorage) GetCommunityByExternalId(_ context.Context, externalId domain.ExternalId) (domain.Community, error) {
	if m.getCommunityFunc != nil {
		return m.getCommunityFunc(externalId)
	}
	return domain.Community{Id: primitive.NewObjectID(), ExternalId: externalId}, nil
}

func (m *MockStorage) CreateCommunity(_ context.Context, c domain.Community) (domain.Community, error) {
	if m.createCommunityFunc != nil {
		return m.createCommunityFunc(c)
	}
	if c.Id.IsZero() {
		c.Id = primitive.NewObjectID()
	}
	return c, nil
}

func (m *MockStorage) UpdateCommunityInfo(_ context.Context, externalId domain.ExternalId, name, slug, image string) (domain.Community, error) {
	if m.updateCommunityFunc != nil {
		return m.updateCommunityFunc(externalId, name, slug, image)
	}
	return domain.Community{ExternalId: externalId, Name: name, Slug: slug, Image: image}, nil
}

func (m *MockStorage) DeleteCommunity(_ context.Context, id primitive.ObjectID) error {
	if m.deleteCommunityFunc != nil {
		return m.deleteCommunityFunc(id)
	}
	return nil
}

func (m *MockStorage) AddCommunityMember(_ context.Context, communityId, userId primitive.ObjectID) error {
	if m.addCommMemberFunc != nil {
		return m.addCommMemberFunc(communityId, userId)
	}
	return nil
}

func (m *MockStorage) RemoveCommunityMember(_ context.Context, communityId, userId primitive.ObjectID) error {
	if m.removeCommMemberFunc != nil {
		return m.removeCommMemberFunc(communityId, userId)
	}
	return nil
}

func (m *MockStorage) AddCommunityToUser(_ context.Context, userId, communityId primitive.ObjectID) error {
	if m.addCommToUserFunc != nil {
		return m.addCommToUserFunc(userId, communityId)
	}
	return nil
}

func (m *MockStorage) RemoveCommunityFromUser(_ context.Context, userId, communityId primitive.ObjectID) error {
	if m.removeCommFromUserFunc != nil {
		return m.removeCommFromUserFunc(userId, communityId)
	}
	return nil
}

func (m *MockStorage) PullCommunityFromUsers(_ context.Context, communityId primitive.ObjectID) (int64, error) {
	if m.pullCommFromUsersFunc != nil {
		return m.pullCommFromUsersFunc(communityId)
	}
	return 0, nil
}

func (m *MockStorage) PushCommunityThread(_ context.Context, communityId, threadId primitive.ObjectID) error {
	if m.pushCommunityThreadFunc != nil {
		return m.pushCommunityThreadFunc(communityId, threadId)
	}
	return nil
}

func (m *MockStorage) PullThreadsFromCommunities(_ context.Context, communityIds, threadIds []primitive.ObjectID) (int64, error) {
	if m.pullThreadsCommsFunc != nil {
		return m.pullThreadsCommsFunc(communityIds, threadIds)
	}
	return int64(len(communityIds)), nil
}

// MockTextValidator mocks the TextValidator interface.
type MockTextValidator struct {
	textFunc func(text string) error
}

func (m *MockTextValidator) Text(text string) error {
	if m.textFunc != nil {
		return m.textFunc(text)
	}
	return nil
}

// MockUsernameValidator mocks the UsernameValidator interface.
type MockUsernameValidator struct {
	usernameFunc func(name string) error
}

func (m *MockUsernameValidator) Username(name string) error {
	if m.usernameFunc != nil {
		return m.usernameFunc(name)
	}
	return nil
}
