package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const postSelect = `
	SELECT p.id, p.content, p.tags, p.location, p.feeling, p.privacy, p.shares_count, p.create_datetime,
	       u.id, u.first_name, u.last_name, u.profile_picture, u.is_premium, u.subscription_type,
	       COALESCE(like_counts.like_count, 0) AS like_count,
	       COALESCE(comment_counts.comment_count, 0) AS comment_count,
	       EXISTS (SELECT 1 FROM post_likes pl WHERE pl.post_id = p.id AND pl.user_id = $1) AS is_liked
	FROM posts p
	INNER JOIN users u ON u.id = p.author_id
	LEFT JOIN (
		SELECT post_id, COUNT(*) AS like_count
		FROM post_likes
		GROUP BY post_id
	) like_counts ON p.id = like_counts.post_id
	LEFT JOIN (
		SELECT post_id, COUNT(*) AS comment_count
		FROM post_comments
		GROUP BY post_id
	) comment_counts ON p.id = comment_counts.post_id
	WHERE (p.privacy <> 'private' OR p.author_id = $1)
`

type PostRepository struct {
	Log      *zap.Logger
	DB       *pgxpool.Pool
	DBObject *minio.Client
}

func NewPostRepository(zap *zap.Logger, db *pgxpool.Pool, minio *minio.Client) *PostRepository {
	return &PostRepository{
		Log:      zap,
		DB:       db,
		DBObject: minio,
	}
}

// GetFeedPosts returns up to limit posts visible to viewerId, newest first.
func (repository *PostRepository) GetFeedPosts(ctx context.Context, viewerId uuid.UUID, limit int, offset int) ([]model.PostResponse, error) {
	query := postSelect + `
	ORDER BY p.create_datetime DESC, p.id DESC
	LIMIT $2 OFFSET $3
	`

	rows, err := repository.DB.Query(ctx, query, viewerId, limit, offset)
	if err != nil {
		return nil, err
	}

	return scanPosts(rows)
}

// SearchPosts matches pattern (an ILIKE pattern) against content, location and tags.
func (repository *PostRepository) SearchPosts(ctx context.Context, viewerId uuid.UUID, pattern string, limit int, offset int) ([]model.PostResponse, error) {
	query := postSelect + `
	AND (p.content ILIKE $2 OR p.location ILIKE $2 OR array_to_string(p.tags, ' ') ILIKE $2)
	ORDER BY p.create_datetime DESC, p.id DESC
	LIMIT $3 OFFSET $4
	`

	rows, err := repository.DB.Query(ctx, query, viewerId, pattern, limit, offset)
	if err != nil {
		return nil, err
	}

	return scanPosts(rows)
}

func scanPosts(rows pgx.Rows) ([]model.PostResponse, error) {
	defer rows.Close()

	posts := []model.PostResponse{}

	for rows.Next() {
		var (
			postId, authorId             uuid.UUID
			content, location, feeling   *string
			firstName, lastName, subType string
			profilePicture               *string
			isPremium                    bool
			post                         model.PostResponse
		)

		err := rows.Scan(
			&postId, &content, &post.Tags, &location, &feeling, &post.Privacy, &post.SharesCount, &post.CreatedAt,
			&authorId, &firstName, &lastName, &profilePicture, &isPremium, &subType,
			&post.LikesCount, &post.CommentsCount, &post.IsLiked,
		)
		if err != nil {
			return nil, err
		}

		post.Id = postId.String()
		post.Content = deref(content)
		post.Location = deref(location)
		post.Feeling = deref(feeling)
		post.Author = &model.UserResponse{
			Id:               authorId.String(),
			FirstName:        firstName,
			LastName:         lastName,
			ProfilePicture:   profilePicture,
			IsPremium:        isPremium,
			SubscriptionType: subType,
		}
		post.Images = []model.PostImageResponse{}
		post.Comments = []model.CommentResponse{}
		if post.Tags == nil {
			post.Tags = []string{}
		}

		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

// GetPostImages groups the images of postIds by post id, in display order.
func (repository *PostRepository) GetPostImages(ctx context.Context, postIds []string) (map[string][]model.PostImage, error) {
	query := `
		SELECT id, post_id, object_key, alt, position
		FROM post_images
		WHERE post_id = ANY($1::uuid[])
		ORDER BY post_id, position ASC
	`

	rows, err := repository.DB.Query(ctx, query, postIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make(map[string][]model.PostImage)

	for rows.Next() {
		var image model.PostImage
		err := rows.Scan(&image.Id, &image.PostId, &image.ObjectKey, &image.Alt, &image.Position)
		if err != nil {
			return nil, err
		}

		key := image.PostId.String()
		images[key] = append(images[key], image)
	}

	return images, rows.Err()
}

// GetPostComments groups the comments of postIds by post id, oldest first.
func (repository *PostRepository) GetPostComments(ctx context.Context, postIds []string) (map[string][]model.CommentResponse, error) {
	query := `
		SELECT c.id, c.post_id, c.content, c.create_datetime,
		       u.id, u.first_name, u.last_name, u.profile_picture, u.is_premium, u.subscription_type
		FROM post_comments c
		INNER JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ANY($1::uuid[])
		ORDER BY c.create_datetime ASC, c.id ASC
	`

	rows, err := repository.DB.Query(ctx, query, postIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make(map[string][]model.CommentResponse)

	for rows.Next() {
		var (
			commentId, postId, userId uuid.UUID
			comment                   model.CommentResponse
			user                      model.UserResponse
		)

		err := rows.Scan(&commentId, &postId, &comment.Content, &comment.CreatedAt,
			&userId, &user.FirstName, &user.LastName, &user.ProfilePicture, &user.IsPremium, &user.SubscriptionType)
		if err != nil {
			return nil, err
		}

		comment.Id = commentId.String()
		user.Id = userId.String()
		comment.User = &user

		key := postId.String()
		comments[key] = append(comments[key], comment)
	}

	return comments, rows.Err()
}

func (repository *PostRepository) CheckPostVisible(ctx context.Context, postId uuid.UUID, viewerId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM posts WHERE id = $1 AND (privacy <> 'private' OR author_id = $2)"

	var exists int
	err := repository.DB.QueryRow(ctx, query, postId, viewerId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

func (repository *PostRepository) CheckPostOwnership(ctx context.Context, postId uuid.UUID, userId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM posts WHERE id = $1 AND author_id = $2"

	var exists int
	err := repository.DB.QueryRow(ctx, query, postId, userId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

func (repository *PostRepository) CheckPostLike(ctx context.Context, tx pgx.Tx, postId uuid.UUID, userId uuid.UUID) (int, error) {
	query := "SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2 FOR UPDATE"

	var exists int
	err := tx.QueryRow(ctx, query, postId, userId).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return exists, nil
		}

		return exists, err
	}

	return exists, nil
}

func (repository *PostRepository) CreatePostLike(ctx context.Context, tx pgx.Tx, postLike model.PostLike) error {
	query := "INSERT INTO post_likes (post_id, user_id, create_datetime) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING"

	_, err := tx.Exec(ctx, query, postLike.PostId, postLike.UserId, postLike.CreateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostRepository) DeletePostLike(ctx context.Context, tx pgx.Tx, postId uuid.UUID, userId uuid.UUID) error {
	query := "DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2"

	_, err := tx.Exec(ctx, query, postId, userId)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostRepository) CountPostLikes(ctx context.Context, tx pgx.Tx, postId uuid.UUID) (int, error) {
	query := "SELECT COUNT(*) FROM post_likes WHERE post_id = $1"

	var count int
	err := tx.QueryRow(ctx, query, postId).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (repository *PostRepository) CreateComment(ctx context.Context, tx pgx.Tx, comment model.PostComment) error {
	query := "INSERT INTO post_comments (id, post_id, author_id, content, create_datetime) VALUES ($1, $2, $3, $4, $5)"

	_, err := tx.Exec(ctx, query, comment.Id, comment.PostId, comment.AuthorId, comment.Content, comment.CreateDatetime)
	if err != nil {
		return err
	}

	return nil
}

func (repository *PostRepository) CountPostComments(ctx context.Context, tx pgx.Tx, postId uuid.UUID) (int, error) {
	query := "SELECT COUNT(*) FROM post_comments WHERE post_id = $1"

	var count int
	err := tx.QueryRow(ctx, query, postId).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (repository *PostRepository) GetPostImageKeys(ctx context.Context, tx pgx.Tx, postId uuid.UUID) ([]string, error) {
	query := "SELECT object_key FROM post_images WHERE post_id = $1"

	rows, err := tx.Query(ctx, query, postId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

func (repository *PostRepository) DeletePost(ctx context.Context, tx pgx.Tx, postId uuid.UUID) error {
	query := "DELETE FROM posts WHERE id = $1"

	_, err := tx.Exec(ctx, query, postId)
	if err != nil {
		return err
	}

	return nil
}

// MinIO - Object storage
func (repository *PostRepository) PresignPostImage(ctx context.Context, bucketName string, objectKey string, ttl time.Duration) (string, error) {
	url, err := repository.DBObject.PresignedGetObject(ctx, bucketName, objectKey, ttl, nil)
	if err != nil {
		return "", err
	}

	return url.String(), nil
}

func (repository *PostRepository) DeletePostObject(ctx context.Context, bucketName string, objectKey string) error {
	err := repository.DBObject.RemoveObject(ctx, bucketName, objectKey, minio.RemoveObjectOptions{})
	if err != nil {
		return err
	}

	return nil
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
