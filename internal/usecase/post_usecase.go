package usecase

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/ferdian3456/virdanfeed/internal/repository"
	"github.com/ferdian3456/virdanfeed/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const defaultPresignTTL = time.Hour

type PostUsecase struct {
	PostRepository *repository.PostRepository
	UserRepository *repository.UserRepository
	DB             *pgxpool.Pool
	Log            *zap.Logger
	Config         *koanf.Koanf
}

func NewPostUsecase(postRepository *repository.PostRepository, userRepository *repository.UserRepository, db *pgxpool.Pool, zap *zap.Logger, koanf *koanf.Koanf) *PostUsecase {
	return &PostUsecase{
		PostRepository: postRepository,
		UserRepository: userRepository,
		DB:             db,
		Log:            zap,
		Config:         koanf,
	}
}

// ParsePagination reads page and limit query values, falling back to defaults
// and clamping limit to MAX_LIMIT.
func ParsePagination(pageParam string, limitParam string) (int, int, error) {
	page := constant.DEFAULT_PAGE
	limit := constant.DEFAULT_LIMIT

	if pageParam != "" {
		parsed, err := strconv.Atoi(pageParam)
		if err != nil || parsed < 1 {
			return 0, 0, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Page must be a positive number",
				Param:   "page",
			}
		}
		page = parsed
	}

	if limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 1 {
			return 0, 0, &model.ValidationError{
				Code:    constant.ERR_VALIDATION_CODE,
				Message: "Limit must be a positive number",
				Param:   "limit",
			}
		}
		limit = min(parsed, constant.MAX_LIMIT)
	}

	return page, limit, nil
}

func (usecase *PostUsecase) GetFeed(ctx *fiber.Ctx, pageParam string, limitParam string, userId uuid.UUID) (model.PostListData, error) {
	result := model.PostListData{}

	page, limit, err := ParsePagination(pageParam, limitParam)
	if err != nil {
		return result, err
	}

	// One extra row tells us whether another page exists.
	posts, err := usecase.PostRepository.GetFeedPosts(ctx.Context(), userId, limit+1, (page-1)*limit)
	if err != nil {
		return result, err
	}

	return usecase.buildPage(ctx, posts, page, limit)
}

func (usecase *PostUsecase) SearchPosts(ctx *fiber.Ctx, query string, pageParam string, limitParam string, userId uuid.UUID) (model.PostListData, error) {
	result := model.PostListData{}

	query = strings.TrimSpace(query)
	if query == "" {
		return result, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Search query is required to not be empty",
			Param:   "q",
		}
	} else if utf8.RuneCountInString(query) > constant.MAX_SEARCH_LENGTH {
		return result, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Search query must be at most 100 characters",
			Param:   "q",
		}
	}

	page, limit, err := ParsePagination(pageParam, limitParam)
	if err != nil {
		return result, err
	}

	posts, err := usecase.PostRepository.SearchPosts(ctx.Context(), userId, util.LikePattern(query), limit+1, (page-1)*limit)
	if err != nil {
		return result, err
	}

	return usecase.buildPage(ctx, posts, page, limit)
}

func (usecase *PostUsecase) buildPage(ctx *fiber.Ctx, posts []model.PostResponse, page int, limit int) (model.PostListData, error) {
	hasNextPage := len(posts) > limit
	if hasNextPage {
		posts = posts[:limit]
	}

	err := usecase.hydratePosts(ctx, posts)
	if err != nil {
		return model.PostListData{}, err
	}

	return model.PostListData{
		Posts: posts,
		Pagination: model.Pagination{
			Page:        page,
			Limit:       limit,
			HasNextPage: hasNextPage,
			HasPrevPage: page > 1,
		},
	}, nil
}

// hydratePosts attaches presigned image urls and comment threads in place.
func (usecase *PostUsecase) hydratePosts(ctx *fiber.Ctx, posts []model.PostResponse) error {
	if len(posts) == 0 {
		return nil
	}

	ctxContext := ctx.Context()

	postIds := make([]string, 0, len(posts))
	for _, post := range posts {
		postIds = append(postIds, post.Id)
	}

	images, err := usecase.PostRepository.GetPostImages(ctxContext, postIds)
	if err != nil {
		return err
	}

	comments, err := usecase.PostRepository.GetPostComments(ctxContext, postIds)
	if err != nil {
		return err
	}

	bucketName := usecase.Config.String("MINIO_BUCKET_NAME")
	ttl := usecase.Config.Duration("MINIO_PRESIGN_TTL")
	if ttl <= 0 {
		ttl = defaultPresignTTL
	}

	for i := range posts {
		for _, image := range images[posts[i].Id] {
			url, err := usecase.PostRepository.PresignPostImage(ctxContext, bucketName, image.ObjectKey, ttl)
			if err != nil {
				usecase.Log.Warn("failed to presign post image", zap.String("postId", posts[i].Id), zap.String("objectKey", image.ObjectKey), zap.Error(err))
				continue
			}

			alt := ""
			if image.Alt != nil {
				alt = *image.Alt
			}
			posts[i].Images = append(posts[i].Images, model.PostImageResponse{Url: url, Alt: alt})
		}

		if thread, ok := comments[posts[i].Id]; ok {
			posts[i].Comments = thread
		}
	}

	return nil
}

func (usecase *PostUsecase) parsePostId(postIdParam string) (uuid.UUID, error) {
	postId, err := uuid.Parse(postIdParam)
	if err != nil {
		return postId, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Invalid post id",
			Param:   "postId",
		}
	}

	return postId, nil
}

func (usecase *PostUsecase) requireVisible(ctx *fiber.Ctx, postId uuid.UUID, userId uuid.UUID) error {
	exists, err := usecase.PostRepository.CheckPostVisible(ctx.Context(), postId, userId)
	if err != nil {
		return err
	}

	if exists != 1 {
		return &model.ValidationError{
			Code:    constant.ERR_NOT_FOUND_ERROR,
			Message: "Post not found",
			Param:   "postId",
		}
	}

	return nil
}

// ToggleLike flips the caller's like on a post and returns the new state.
func (usecase *PostUsecase) ToggleLike(ctx *fiber.Ctx, postIdParam string, userId uuid.UUID) (model.LikeData, error) {
	result := model.LikeData{}

	postId, err := usecase.parsePostId(postIdParam)
	if err != nil {
		return result, err
	}

	err = usecase.requireVisible(ctx, postId, userId)
	if err != nil {
		return result, err
	}

	ctxContext := ctx.Context()

	tx, err := usecase.DB.Begin(ctxContext)
	if err != nil {
		return result, err
	}

	defer tx.Rollback(ctxContext)

	liked, err := usecase.PostRepository.CheckPostLike(ctxContext, tx, postId, userId)
	if err != nil {
		return result, err
	}

	if liked == 1 {
		err = usecase.PostRepository.DeletePostLike(ctxContext, tx, postId, userId)
	} else {
		err = usecase.PostRepository.CreatePostLike(ctxContext, tx, model.PostLike{
			PostId:         postId,
			UserId:         userId,
			CreateDatetime: time.Now(),
		})
	}
	if err != nil {
		return result, err
	}

	count, err := usecase.PostRepository.CountPostLikes(ctxContext, tx, postId)
	if err != nil {
		return result, err
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return result, err
	}

	result.IsLiked = liked != 1
	result.LikesCount = count

	return result, nil
}

func (usecase *PostUsecase) CreateComment(ctx *fiber.Ctx, postIdParam string, userId uuid.UUID, payload model.CommentCreateRequest) (model.CommentCreateData, error) {
	result := model.CommentCreateData{}

	postId, err := usecase.parsePostId(postIdParam)
	if err != nil {
		return result, err
	}

	if strings.TrimSpace(payload.Content) == "" {
		return result, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Comment is required to not be empty",
			Param:   "content",
		}
	} else if utf8.RuneCountInString(payload.Content) > constant.MAX_COMMENT_LENGTH {
		return result, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Comment must be at most 1000 characters",
			Param:   "content",
		}
	}

	err = usecase.requireVisible(ctx, postId, userId)
	if err != nil {
		return result, err
	}

	ctxContext := ctx.Context()

	author, err := usecase.UserRepository.GetUserInfo(ctxContext, userId)
	if err != nil {
		return result, err
	}

	comment := model.PostComment{
		Id:             uuid.New(),
		PostId:         postId,
		AuthorId:       userId,
		Content:        payload.Content,
		CreateDatetime: time.Now(),
	}

	tx, err := usecase.DB.Begin(ctxContext)
	if err != nil {
		return result, err
	}

	defer tx.Rollback(ctxContext)

	err = usecase.PostRepository.CreateComment(ctxContext, tx, comment)
	if err != nil {
		return result, err
	}

	count, err := usecase.PostRepository.CountPostComments(ctxContext, tx, postId)
	if err != nil {
		return result, err
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return result, err
	}

	author.Username = ""

	result.Comment = model.CommentResponse{
		Id:        comment.Id.String(),
		User:      &author,
		Content:   comment.Content,
		CreatedAt: comment.CreateDatetime,
	}
	result.CommentsCount = count

	return result, nil
}

func (usecase *PostUsecase) DeletePost(ctx *fiber.Ctx, postIdParam string, userId uuid.UUID) error {
	postId, err := usecase.parsePostId(postIdParam)
	if err != nil {
		return err
	}

	ctxContext := ctx.Context()

	// Check if user is the author of the post
	postOwnerExists, err := usecase.PostRepository.CheckPostOwnership(ctxContext, postId, userId)
	if err != nil {
		return err
	}

	if postOwnerExists != 1 {
		return &model.ValidationError{
			Code:    constant.ERR_FORBIDDEN_ERROR,
			Message: "You are not the author of this post",
			Param:   "postId",
		}
	}

	commited := false

	tx, err := usecase.DB.Begin(ctxContext)
	if err != nil {
		return err
	}

	defer func() {
		if !commited {
			_ = tx.Rollback(ctxContext)
		}
	}()

	objectKeys, err := usecase.PostRepository.GetPostImageKeys(ctxContext, tx, postId)
	if err != nil {
		return err
	}

	err = usecase.PostRepository.DeletePost(ctxContext, tx, postId)
	if err != nil {
		return err
	}

	err = tx.Commit(ctxContext)
	if err != nil {
		return err
	}

	commited = true

	// Delete from MinIO after successful commit
	bucketName := usecase.Config.String("MINIO_BUCKET_NAME")
	for _, objectKey := range objectKeys {
		err = usecase.PostRepository.DeletePostObject(ctxContext, bucketName, objectKey)
		if err != nil {
			usecase.Log.Warn("failed to remove post image object", zap.String("postId", postId.String()), zap.String("objectKey", objectKey), zap.Error(err))
		}
	}

	return nil
}
