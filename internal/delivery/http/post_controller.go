package http

import (
	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/ferdian3456/virdanfeed/internal/usecase"
	"github.com/ferdian3456/virdanfeed/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type PostController struct {
	PostUsecase *usecase.PostUsecase
	Log         *zap.Logger
	Config      *koanf.Koanf
}

func NewPostController(postUsecase *usecase.PostUsecase, zap *zap.Logger, koanf *koanf.Koanf) *PostController {
	return &PostController{
		PostUsecase: postUsecase,
		Log:         zap,
		Config:      koanf,
	}
}

func (controller *PostController) GetFeed(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	response, err := controller.PostUsecase.GetFeed(ctx, ctx.Query("page"), ctx.Query("limit"), userId)
	if err != nil {
		return util.SendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, model.PostListResponse{Success: true, Data: response})
}

func (controller *PostController) SearchPosts(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	response, err := controller.PostUsecase.SearchPosts(ctx, ctx.Query("q"), ctx.Query("page"), ctx.Query("limit"), userId)
	if err != nil {
		return util.SendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, model.PostListResponse{Success: true, Data: response})
}

func (controller *PostController) ToggleLike(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	response, err := controller.PostUsecase.ToggleLike(ctx, ctx.Params("postId"), userId)
	if err != nil {
		return util.SendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, model.LikeResponse{Success: true, Data: response})
}

func (controller *PostController) CreateComment(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	var payload model.CommentCreateRequest
	err := util.ReadRequestBody(ctx, &payload)
	if err != nil {
		return util.SendErrorResponse(ctx, &model.ValidationError{
			Code:    constant.ERR_INVALID_REQUEST_BODY_ERROR_CODE,
			Message: constant.ERR_INVALID_REQUEST_BODY_MESSAGE,
		})
	}

	response, err := controller.PostUsecase.CreateComment(ctx, ctx.Params("postId"), userId, payload)
	if err != nil {
		return util.SendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseWithData(ctx, model.CommentCreateResponse{Success: true, Data: response})
}

func (controller *PostController) DeletePost(ctx *fiber.Ctx) error {
	userId := ctx.Locals("userId").(uuid.UUID)

	err := controller.PostUsecase.DeletePost(ctx, ctx.Params("postId"), userId)
	if err != nil {
		return util.SendError(ctx, controller.Log, err)
	}

	return util.SendSuccessResponseNoData(ctx)
}
