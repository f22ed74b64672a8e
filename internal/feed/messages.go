package feed

import "github.com/ferdian3456/virdanfeed/internal/model"

type postsLoadedMsg struct {
	seq    uint64
	page   int
	append bool
	result model.FeedPage
}

type postsFailedMsg struct {
	seq  uint64
	page int
	err  error
}

type searchDebouncedMsg struct {
	seq uint64
}

type searchResultMsg struct {
	seq   uint64
	query string
	posts []model.FeedPost
	err   error
}

type likeResultMsg struct {
	postId string
	result model.LikeResult
	err    error
}

type commentResultMsg struct {
	postId string
	result model.CommentResult
	err    error
}

type deleteResultMsg struct {
	postId string
	err    error
}
