package api

// Request DTOs

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Bio      string `json:"bio,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Response DTOs

type UserView struct {
	Id         string `json:"id"`
	ExternalId string `json:"external_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Bio        string `json:"bio"`
	Image      string `json:"image"`
	Onboarded  bool   `json:"onboarded"`
}

// UserPostsResponse contains a user's root threads with one level of replies.
type UserPostsResponse struct {
	Posts []*FeedPost `json:"posts"`
}
