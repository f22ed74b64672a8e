package client

import "github.com/ferdian3456/virdanfeed/internal/model"

// normalizeUser folds the two premium signals into one flag. It is the only
// place either wire field is read.
func normalizeUser(user *model.UserResponse) *model.FeedUser {
	if user == nil {
		return nil
	}

	normalized := &model.FeedUser{
		Id:        user.Id,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Premium:   user.IsPremium || user.SubscriptionType == model.SubscriptionPremium,
	}
	if user.ProfilePicture != nil {
		normalized.ProfilePicture = *user.ProfilePicture
	}

	return normalized
}

func normalizeComment(comment model.CommentResponse) model.FeedComment {
	return model.FeedComment{
		Id:        comment.Id,
		User:      normalizeUser(comment.User),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

func normalizePost(post model.PostResponse) model.FeedPost {
	images := make([]model.FeedImage, 0, len(post.Images))
	for _, image := range post.Images {
		images = append(images, model.FeedImage{Url: image.Url, Alt: image.Alt})
	}

	comments := make([]model.FeedComment, 0, len(post.Comments))
	for _, comment := range post.Comments {
		comments = append(comments, normalizeComment(comment))
	}

	return model.FeedPost{
		Id:            post.Id,
		Author:        normalizeUser(post.Author),
		Content:       post.Content,
		Images:        images,
		Tags:          post.Tags,
		Location:      post.Location,
		Feeling:       post.Feeling,
		Privacy:       model.ParsePrivacy(post.Privacy),
		LikesCount:    max(post.LikesCount, 0),
		CommentsCount: max(post.CommentsCount, 0),
		SharesCount:   max(post.SharesCount, 0),
		IsLiked:       post.IsLiked,
		Comments:      comments,
		CreatedAt:     post.CreatedAt,
	}
}

func normalizePage(data model.PostListData) model.FeedPage {
	posts := make([]model.FeedPost, 0, len(data.Posts))
	for _, post := range data.Posts {
		posts = append(posts, normalizePost(post))
	}

	return model.FeedPage{
		Posts:       posts,
		Page:        data.Pagination.Page,
		HasNextPage: data.Pagination.HasNextPage,
	}
}
