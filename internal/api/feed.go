package api

// FeedPost is a root thread annotated for the requesting viewer.
// Children carries one resolved level for reply-count display only.
type FeedPost struct {
	ThreadNode
	IsLikedByViewer bool `json:"is_liked_by_viewer"`
	ReplyCount      int  `json:"reply_count"`
}

type FeedPage struct {
	Posts   []*FeedPost `json:"posts"`
	HasNext bool        `json:"has_next"`
}
