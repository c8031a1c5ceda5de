package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id          primitive.ObjectID   `bson:"_id,omitempty"`
	ExternalId  ExternalId           `bson:"id"`
	Username    string               `bson:"username"`
	Name        string               `bson:"name"`
	Image       string               `bson:"image"`
	Bio         string               `bson:"bio"`
	Onboarded   bool                 `bson:"onboarded"`
	Threads     []primitive.ObjectID `bson:"threads"`
	Communities []primitive.ObjectID `bson:"communities"`
}

// UserProfile is the mutable part of a User, written on onboarding
// or profile edit. Everything else is owned by the store.
type UserProfile struct {
	Username string `bson:"username"`
	Name     string `bson:"name"`
	Bio      string `bson:"bio"`
	Image    string `bson:"image"`
}
