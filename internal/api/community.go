package api

// Response DTOs

type CommunityProfile struct {
	Id          string `json:"id"`
	ExternalId  string `json:"external_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Image       string `json:"image"`
	Bio         string `json:"bio"`
	MemberCount int    `json:"member_count"`
	ThreadCount int    `json:"thread_count"`
}

type CommunityPostsResponse struct {
	Posts []*FeedPost `json:"posts"`
}
