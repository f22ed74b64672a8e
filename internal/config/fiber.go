package config

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/gofiber/fiber/v2"
)

func NewFiber(appName string) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               false,
		AppName:               appName,
		BodyLimit:             1 * 1024 * 1024,
		ReadBufferSize:        4096,
		WriteBufferSize:       4096,
		Concurrency:           256 * 1024,
		IdleTimeout:           30 * time.Second,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		DisableKeepalive:      false,
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          ErrorHandler,
	})

	return app
}

// ErrorHandler renders errors that escape handlers (unknown routes, bad
// methods) in the same envelope the controllers use.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	errorCode := constant.ERR_INTERNAL_SERVER_ERROR_CODE
	message := constant.ERR_INTERNAL_SERVER_ERROR_MESSAGE

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
		if code == fiber.StatusNotFound {
			errorCode = constant.ERR_NOT_FOUND_ERROR
		} else if code < fiber.StatusInternalServerError {
			errorCode = constant.ERR_VALIDATION_CODE
		}
	}

	return ctx.Status(code).JSON(model.ErrorResponse{
		Success: false,
		Error: model.ValidationError{
			Code:    errorCode,
			Message: message,
		},
	})
}
