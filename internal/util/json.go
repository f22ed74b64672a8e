package util

import (
	"errors"

	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ReadRequestBody(ctx *fiber.Ctx, result interface{}) error {
	err := ctx.BodyParser(result)
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseNoData(ctx *fiber.Ctx) error {
	err := ctx.Status(fiber.StatusOK).JSON(model.SuccessResponse{Success: true})
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	err := ctx.Status(fiber.StatusOK).JSON(data)
	if err != nil {
		return err
	}

	return nil
}

// SendErrorResponse writes a validation error with the status its code maps to.
func SendErrorResponse(ctx *fiber.Ctx, err error) error {
	var validationErr *model.ValidationError
	if !errors.As(err, &validationErr) {
		validationErr = &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: err.Error(),
		}
	}

	return ctx.Status(StatusForCode(validationErr.Code)).JSON(model.ErrorResponse{
		Success: false,
		Error:   *validationErr,
	})
}

func SendErrorResponseInternalServer(ctx *fiber.Ctx, log *zap.Logger, error error) error {
	log.Error("internal server error occured", zap.Error(error))
	err := ctx.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
		Success: false,
		Error: model.ValidationError{
			Code:    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
			Message: constant.ERR_INTERNAL_SERVER_ERROR_MESSAGE,
		},
	})
	if err != nil {
		return err
	}

	return nil
}

// SendError routes validation errors to SendErrorResponse and everything else to a 500.
func SendError(ctx *fiber.Ctx, log *zap.Logger, err error) error {
	var validationErr *model.ValidationError
	if errors.As(err, &validationErr) {
		return SendErrorResponse(ctx, err)
	}

	return SendErrorResponseInternalServer(ctx, log, err)
}

func StatusForCode(code string) int {
	switch code {
	case constant.ERR_NOT_FOUND_ERROR:
		return fiber.StatusNotFound
	case constant.ERR_UNAUTHORIZED_ERROR:
		return fiber.StatusUnauthorized
	case constant.ERR_FORBIDDEN_ERROR:
		return fiber.StatusForbidden
	case constant.ERR_INTERNAL_SERVER_ERROR_CODE:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}
