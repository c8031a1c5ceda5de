package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
)

func (s *Storage) CreateThread(ctx context.Context, t domain.Thread) (domain.Thread, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	if t.Id.IsZero() {
		t.Id = primitive.NewObjectID()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.Children == nil {
		t.Children = []primitive.ObjectID{}
	}
	if t.Likes == nil {
		t.Likes = []primitive.ObjectID{}
	}

	if _, err := s.threads.InsertOne(ctx, t); err != nil {
		return domain.Thread{}, mapErr(err, "Thread not found")
	}
	return t, nil
}

func (s *Storage) GetThread(ctx context.Context, id primitive.ObjectID) (domain.Thread, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var t domain.Thread
	if err := s.threads.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return domain.Thread{}, mapErr(err, "Thread not found")
	}
	return t, nil
}

func (s *Storage) GetThreadWithRefs(ctx context.Context, id primitive.ObjectID) (domain.PopulatedThread, error) {
	t, err := s.GetThread(ctx, id)
	if err != nil {
		return domain.PopulatedThread{}, err
	}
	populated, err := s.populateThreads(ctx, []domain.Thread{t})
	if err != nil {
		return domain.PopulatedThread{}, err
	}
	return populated[0], nil
}

// FindConnected is the materializer's bulk fetch: one query for every thread
// whose parent is the root or whose id differs from it. The over-read is
// deliberate; callers scope the result to the actual subtree via the
// adjacency walk, so unrelated threads are never acted on.
func (s *Storage) FindConnected(ctx context.Context, rootId primitive.ObjectID) ([]domain.PopulatedThread, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"parentId": rootId},
		{"_id": bson.M{"$ne": rootId}},
	}}
	cur, err := s.threads.Find(ctx, filter)
	if err != nil {
		return nil, mapErr(err, "Thread not found")
	}
	var threads []domain.Thread
	if err := cur.All(ctx, &threads); err != nil {
		return nil, mapErr(err, "Thread not found")
	}
	return s.populateThreads(ctx, threads)
}

func (s *Storage) FindRootThreads(ctx context.Context, skip, limit int64) ([]domain.PopulatedThread, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.threads.Find(ctx, bson.M{"parentId": nil}, opts)
	if err != nil {
		return nil, mapErr(err, "")
	}
	var threads []domain.Thread
	if err := cur.All(ctx, &threads); err != nil {
		return nil, mapErr(err, "")
	}
	return s.populateThreads(ctx, threads)
}

func (s *Storage) CountRootThreads(ctx context.Context) (int64, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	count, err := s.threads.CountDocuments(ctx, bson.M{"parentId": nil})
	if err != nil {
		return 0, mapErr(err, "")
	}
	return count, nil
}

func (s *Storage) FindThreadsByIds(ctx context.Context, ids []primitive.ObjectID) ([]domain.PopulatedThread, error) {
	if len(ids) == 0 {
		return []domain.PopulatedThread{}, nil
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	cur, err := s.threads.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, mapErr(err, "")
	}
	var threads []domain.Thread
	if err := cur.All(ctx, &threads); err != nil {
		return nil, mapErr(err, "")
	}
	return s.populateThreads(ctx, threads)
}

func (s *Storage) FindThreadsByCommunity(ctx context.Context, communityId primitive.ObjectID) ([]domain.Thread, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	cur, err := s.threads.Find(ctx, bson.M{"community": communityId})
	if err != nil {
		return nil, mapErr(err, "")
	}
	var threads []domain.Thread
	if err := cur.All(ctx, &threads); err != nil {
		return nil, mapErr(err, "")
	}
	return threads, nil
}

// AppendChild records the bidirectional half of a reply: the new comment id
// is pushed onto the parent's children list.
func (s *Storage) AppendChild(ctx context.Context, parentId, childId primitive.ObjectID) error {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.threads.UpdateOne(ctx,
		bson.M{"_id": parentId},
		bson.M{"$push": bson.M{"children": childId}},
	)
	if err != nil {
		return mapErr(err, "Thread not found")
	}
	if res.MatchedCount == 0 {
		return internal_errors.NotFound("Thread not found")
	}
	return nil
}

func (s *Storage) DeleteThreads(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	res, err := s.threads.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, mapErr(err, "")
	}
	return res.DeletedCount, nil
}

// AddLike adds userId to the thread's likes set. $addToSet is atomic on the
// document, so concurrent toggles by the same user cannot duplicate an entry.
// The updated document is returned so the caller reports persisted state.
func (s *Storage) AddLike(ctx context.Context, threadId, userId primitive.ObjectID) (domain.Thread, error) {
	return s.updateLikes(ctx, threadId, bson.M{"$addToSet": bson.M{"likes": userId}})
}

// RemoveLike removes userId from the likes set; a no-op if absent.
func (s *Storage) RemoveLike(ctx context.Context, threadId, userId primitive.ObjectID) (domain.Thread, error) {
	return s.updateLikes(ctx, threadId, bson.M{"$pull": bson.M{"likes": userId}})
}

func (s *Storage) updateLikes(ctx context.Context, threadId primitive.ObjectID, update bson.M) (domain.Thread, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var t domain.Thread
	err := s.threads.FindOneAndUpdate(ctx, bson.M{"_id": threadId}, update, opts).Decode(&t)
	if err != nil {
		return domain.Thread{}, mapErr(err, "Thread not found")
	}
	return t, nil
}

// populateThreads resolves author and community references with one $in
// query per collection. Ids without a live target resolve to nil refs;
// readers tolerate the gap instead of failing the whole batch.
func (s *Storage) populateThreads(ctx context.Context, threads []domain.Thread) ([]domain.PopulatedThread, error) {
	populated := make([]domain.PopulatedThread, 0, len(threads))
	if len(threads) == 0 {
		return populated, nil
	}

	authorIds := make([]primitive.ObjectID, 0, len(threads))
	communityIds := make([]primitive.ObjectID, 0)
	seenAuthors := make(map[primitive.ObjectID]bool)
	seenCommunities := make(map[primitive.ObjectID]bool)
	for _, t := range threads {
		if !seenAuthors[t.Author] {
			seenAuthors[t.Author] = true
			authorIds = append(authorIds, t.Author)
		}
		if t.Community != nil && !seenCommunities[*t.Community] {
			seenCommunities[*t.Community] = true
			communityIds = append(communityIds, *t.Community)
		}
	}

	authors, err := s.findAuthorRefs(ctx, authorIds)
	if err != nil {
		return nil, err
	}
	communities, err := s.findCommunityRefs(ctx, communityIds)
	if err != nil {
		return nil, err
	}

	for _, t := range threads {
		pt := domain.PopulatedThread{Thread: t}
		if ref, ok := authors[t.Author]; ok {
			pt.AuthorRef = ref
		}
		if t.Community != nil {
			if ref, ok := communities[*t.Community]; ok {
				pt.CommunityRef = ref
			}
		}
		populated = append(populated, pt)
	}
	return populated, nil
}

func (s *Storage) findAuthorRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.AuthorRef, error) {
	refs := make(map[primitive.ObjectID]*domain.AuthorRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1, "username": 1, "name": 1, "image": 1})
	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, mapErr(err, "")
	}
	var found []domain.AuthorRef
	if err := cur.All(ctx, &found); err != nil {
		return nil, mapErr(err, "")
	}
	for i := range found {
		refs[found[i].Id] = &found[i]
	}
	return refs, nil
}

func (s *Storage) findCommunityRefs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*domain.CommunityRef, error) {
	refs := make(map[primitive.ObjectID]*domain.CommunityRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1, "name": 1, "slug": 1, "image": 1})
	cur, err := s.communities.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, mapErr(err, "")
	}
	var found []domain.CommunityRef
	if err := cur.All(ctx, &found); err != nil {
		return nil, mapErr(err, "")
	}
	for i := range found {
		refs[found[i].Id] = &found[i]
	}
	return refs, nil
}
