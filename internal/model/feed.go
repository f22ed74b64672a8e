package model

import (
	"strings"
	"time"
	"unicode"
)

// FeedUser is a user as the feed client sees it, after normalization.
type FeedUser struct {
	Id             string
	FirstName      string
	LastName       string
	ProfilePicture string
	Premium        bool
}

func (u FeedUser) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Initial is the avatar fallback: the upper-cased first letter of the first name, or "U".
func (u FeedUser) Initial() string {
	for _, r := range u.FirstName {
		return string(unicode.ToUpper(r))
	}
	return "U"
}

type FeedImage struct {
	Url string
	Alt string
}

type FeedComment struct {
	Id        string
	User      *FeedUser
	Content   string
	CreatedAt time.Time
}

type FeedPost struct {
	Id            string
	Author        *FeedUser
	Content       string
	Images        []FeedImage
	Tags          []string
	Location      string
	Feeling       string
	Privacy       Privacy
	LikesCount    int
	CommentsCount int
	SharesCount   int
	IsLiked       bool
	Comments      []FeedComment
	CreatedAt     time.Time
}

// Privacy is the closed set of post visibilities.
type Privacy int

const (
	PrivacyPublic Privacy = iota
	PrivacyFriends
	PrivacyPrivate
)

// ParsePrivacy maps a wire value onto Privacy. Anything unrecognized, including the
// empty string, is Public.
func ParsePrivacy(value string) Privacy {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case PrivacyFriendsValue:
		return PrivacyFriends
	case PrivacyPrivateValue:
		return PrivacyPrivate
	default:
		return PrivacyPublic
	}
}

func (p Privacy) String() string {
	switch p {
	case PrivacyFriends:
		return PrivacyFriendsValue
	case PrivacyPrivate:
		return PrivacyPrivateValue
	default:
		return PrivacyPublicValue
	}
}

// FeedPage is one page of posts from the listing or search endpoint.
type FeedPage struct {
	Posts       []FeedPost
	Page        int
	HasNextPage bool
}

type LikeResult struct {
	IsLiked    bool
	LikesCount int
}

type CommentResult struct {
	Comment       FeedComment
	CommentsCount int
}
