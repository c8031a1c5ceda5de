package service

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/strand-dev/strand/internal/api"
	"github.com/strand-dev/strand/internal/domain"
	internal_errors "github.com/strand-dev/strand/internal/errors"
)

// parseThreadId turns a caller-supplied id into a store key. An empty id is
// "not found" (nothing can ever match it); a malformed one is a validation error.
func parseThreadId(id string) (primitive.ObjectID, error) {
	if strings.TrimSpace(id) == "" {
		return primitive.NilObjectID, internal_errors.NotFound("Thread not found")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, internal_errors.Validation("Invalid thread id")
	}
	return oid, nil
}

func toAuthorView(ref *domain.AuthorRef) *api.AuthorView {
	if ref == nil {
		return nil
	}
	return &api.AuthorView{
		Id:         ref.Id.Hex(),
		ExternalId: ref.ExternalId,
		Username:   ref.Username,
		Name:       ref.Name,
		Image:      ref.Image,
	}
}

func toCommunityView(ref *domain.CommunityRef) *api.CommunityView {
	if ref == nil {
		return nil
	}
	return &api.CommunityView{
		Id:         ref.Id.Hex(),
		ExternalId: ref.ExternalId,
		Name:       ref.Name,
		Slug:       ref.Slug,
		Image:      ref.Image,
	}
}

// toNode converts a populated thread into its wire shape with every id in
// canonical string form. Children start empty; tree walks fill them in.
func toNode(t domain.PopulatedThread) *api.ThreadNode {
	node := &api.ThreadNode{
		Id:        t.Id.Hex(),
		Text:      t.Text,
		Author:    toAuthorView(t.AuthorRef),
		Community: toCommunityView(t.CommunityRef),
		CreatedAt: t.CreatedAt,
		LikeCount: t.LikeCount(),
		Children:  []*api.ThreadNode{},
	}
	if t.ParentId != nil {
		parent := t.ParentId.Hex()
		node.ParentId = &parent
	}
	return node
}

func toUserView(u domain.User) *api.UserView {
	return &api.UserView{
		Id:         u.Id.Hex(),
		ExternalId: u.ExternalId,
		Username:   u.Username,
		Name:       u.Name,
		Bio:        u.Bio,
		Image:      u.Image,
		Onboarded:  u.Onboarded,
	}
}

func toCommunityProfile(c domain.Community) *api.CommunityProfile {
	return &api.CommunityProfile{
		Id:          c.Id.Hex(),
		ExternalId:  c.ExternalId,
		Name:        c.Name,
		Slug:        c.Slug,
		Image:       c.Image,
		Bio:         c.Bio,
		MemberCount: len(c.Members),
		ThreadCount: len(c.Threads),
	}
}
