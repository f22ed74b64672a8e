package exception

import (
	"fmt"

	"github.com/ferdian3456/virdanfeed/internal/constant"
	"github.com/ferdian3456/virdanfeed/internal/model"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Recovery turns a panic in any later handler into a 500 error envelope.
func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			var errMsg string
			switch v := r.(type) {
			case error:
				errMsg = v.Error()
			case string:
				errMsg = v
			default:
				errMsg = fmt.Sprintf("%v", v)
			}

			log.Error("panic occurred and recovered", zap.String("error", errMsg), zap.String("path", c.Path()))

			err = c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{
				Success: false,
				Error: model.ValidationError{
					Code:    constant.ERR_INTERNAL_SERVER_ERROR_CODE,
					Message: constant.ERR_INTERNAL_SERVER_ERROR_MESSAGE,
				},
			})
		}()

		return c.Next()
	}
}
