package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community mirrors an identity-provider organization. Its lifecycle is driven
// entirely by provider webhook events; nothing in the app creates one directly.
type Community struct {
	Id         primitive.ObjectID   `bson:"_id,omitempty"`
	ExternalId ExternalId           `bson:"id"`
	Name       string               `bson:"name"`
	Slug       string               `bson:"slug"`
	Image      string               `bson:"image"`
	Bio        string               `bson:"bio"`
	CreatedBy  primitive.ObjectID   `bson:"createdBy"`
	Members    []primitive.ObjectID `bson:"members"`
	Threads    []primitive.ObjectID `bson:"threads"`
}

func (c *Community) HasMember(userId primitive.ObjectID) bool {
	for _, id := range c.Members {
		if id == userId {
			return true
		}
	}
	return false
}
