package api

import (
	"time"
)

// Request DTOs

type CreateThreadRequest struct {
	Text        string `json:"text" validate:"required"`
	CommunityId string `json:"community_id,omitempty"`
}

type CreateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// Response DTOs

// AuthorView is the denormalized author shape attached to thread nodes.
// All ids are canonical strings; store reference types never cross this boundary.
type AuthorView struct {
	Id         string `json:"id"`
	ExternalId string `json:"external_id"`
	Username   string `json:"username"`
	Name       string `json:"name"`
	Image      string `json:"image"`
}

type CommunityView struct {
	Id         string `json:"id"`
	ExternalId string `json:"external_id"`
	Name       string `json:"name"`
	Slug       string `json:"slug,omitempty"`
	Image      string `json:"image"`
}

// ThreadNode is one thread plus its nested replies. Children is the full
// subtree for the thread-detail read and at most one level elsewhere.
type ThreadNode struct {
	Id        string         `json:"id"`
	ParentId  *string        `json:"parent_id"`
	Text      string         `json:"text"`
	Author    *AuthorView    `json:"author"`
	Community *CommunityView `json:"community,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	LikeCount int            `json:"like_count"`
	Children  []*ThreadNode  `json:"children"`
}

// LikeState is the Engagement Tracker's answer after a toggle.
type LikeState struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
