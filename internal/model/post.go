package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	PrivacyPublicValue  = "public"
	PrivacyFriendsValue = "friends"
	PrivacyPrivateValue = "private"
)

type Post struct {
	Id             uuid.UUID
	AuthorId       uuid.UUID
	Content        *string
	Tags           []string
	Location       *string
	Feeling        *string
	Privacy        string
	SharesCount    int
	CreateDatetime time.Time
	UpdateDatetime time.Time
}

type PostImage struct {
	Id        uuid.UUID
	PostId    uuid.UUID
	ObjectKey string
	Alt       *string
	Position  int
}

type PostLike struct {
	PostId         uuid.UUID
	UserId         uuid.UUID
	CreateDatetime time.Time
}

type PostComment struct {
	Id             uuid.UUID
	PostId         uuid.UUID
	AuthorId       uuid.UUID
	Content        string
	CreateDatetime time.Time
}

type CommentCreateRequest struct {
	Content string `json:"content"`
}

type PostImageResponse struct {
	Url string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type CommentResponse struct {
	Id        string        `json:"_id"`
	User      *UserResponse `json:"user"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"createdAt"`
}

type PostResponse struct {
	Id            string              `json:"_id"`
	Author        *UserResponse       `json:"author"`
	Content       string              `json:"content,omitempty"`
	Images        []PostImageResponse `json:"images"`
	Tags          []string            `json:"tags"`
	Location      string              `json:"location,omitempty"`
	Feeling       string              `json:"feeling,omitempty"`
	Privacy       string              `json:"privacy"`
	LikesCount    int                 `json:"likesCount"`
	CommentsCount int                 `json:"commentsCount"`
	SharesCount   int                 `json:"sharesCount"`
	IsLiked       bool                `json:"isLiked"`
	Comments      []CommentResponse   `json:"comments"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type PostListData struct {
	Posts      []PostResponse `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}

type PostListResponse struct {
	Success bool         `json:"success"`
	Data    PostListData `json:"data"`
}

type LikeData struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likesCount"`
}

type LikeResponse struct {
	Success bool     `json:"success"`
	Data    LikeData `json:"data"`
}

type CommentCreateData struct {
	Comment       CommentResponse `json:"comment"`
	CommentsCount int             `json:"commentsCount"`
}

type CommentCreateResponse struct {
	Success bool              `json:"success"`
	Data    CommentCreateData `json:"data"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}
