package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Thread is a single post. A nil ParentId means a root thread; otherwise it
// is a reply to the referenced thread. Children must always hold exactly the
// ids of threads whose ParentId points back here.
type Thread struct {
	Id        primitive.ObjectID   `bson:"_id,omitempty"`
	Text      ThreadText           `bson:"text"`
	Author    primitive.ObjectID   `bson:"author"`
	Community *primitive.ObjectID  `bson:"community,omitempty"`
	ParentId  *primitive.ObjectID  `bson:"parentId,omitempty"`
	Children  []primitive.ObjectID `bson:"children"`
	Likes     []primitive.ObjectID `bson:"likes"`
	CreatedAt time.Time            `bson:"createdAt"`
}

func (t *Thread) IsRoot() bool {
	return t.ParentId == nil
}

// LikeCount is always the cardinality of the likes set, never a separate counter.
func (t *Thread) LikeCount() int {
	return len(t.Likes)
}

func (t *Thread) LikedBy(userId primitive.ObjectID) bool {
	for _, id := range t.Likes {
		if id == userId {
			return true
		}
	}
	return false
}

// AuthorRef is the denormalized author projection attached to populated threads.
type AuthorRef struct {
	Id         primitive.ObjectID `bson:"_id"`
	ExternalId ExternalId         `bson:"id"`
	Username   string             `bson:"username"`
	Name       string             `bson:"name"`
	Image      string             `bson:"image"`
}

// CommunityRef is the denormalized community projection attached to populated threads.
type CommunityRef struct {
	Id         primitive.ObjectID `bson:"_id"`
	ExternalId ExternalId         `bson:"id"`
	Name       string             `bson:"name"`
	Slug       string             `bson:"slug"`
	Image      string             `bson:"image"`
}

// PopulatedThread is a Thread with its author/community references resolved.
// Author may be nil if the referenced user no longer exists; readers must
// tolerate that rather than fail.
type PopulatedThread struct {
	Thread
	AuthorRef    *AuthorRef
	CommunityRef *CommunityRef
}
