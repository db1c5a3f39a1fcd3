package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/dealerhub/dealership-service/internal/observability"
	apperrors "github.com/dealerhub/dealership-service/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware maps DomainError to the {success:false, message}
// wire shape and turns panics into generic 500s.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				var status int
				var message string
				if fiberErr, ok := err.(*fiber.Error); ok {
					status = fiberErr.Code
					message = fiberErr.Message
					if metrics != nil {
						metrics.RecordError(c.Path(), c.Method(), "HTTP_ERROR")
					}
				} else {
					domainErr := apperrors.ToDomainError(err)
					status = domainErr.HTTPStatus
					message = domainErr.Message
					if metrics != nil {
						metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
					}
					if status >= 500 {
						logger.Error("request failed", zap.Error(domainErr))
					}
				}
				c.Status(status)
				_ = c.JSON(fiber.Map{"success": false, "message": message})
				err = nil
			}
		}()
		return c.Next()
	}
}
